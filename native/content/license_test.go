package content

import (
	"errors"
	"math/big"
	"testing"

	"connectsphere/native/common"
	"connectsphere/native/token"
)

func TestSplitPaymentReconciles(t *testing.T) {
	fee, rest := splitPayment(big.NewInt(1_000_000), DefaultFeeBps)
	if fee.Int64() != 25_000 || rest.Int64() != 975_000 {
		t.Fatalf("unexpected split: fee=%s rest=%s", fee, rest)
	}
	for _, payment := range []int64{1, 3, 39, 41, 399, 401, 9_999, 123_457} {
		for _, bps := range []uint32{0, 1, 250, 333, 999, MaxFeeBps} {
			fee, rest := splitPayment(big.NewInt(payment), bps)
			if new(big.Int).Add(fee, rest).Int64() != payment {
				t.Fatalf("split of %d at %d bps does not reconcile", payment, bps)
			}
			if fee.Sign() < 0 || rest.Sign() <= 0 {
				t.Fatalf("split of %d at %d bps produced invalid parts", payment, bps)
			}
		}
	}
	if got := applyPenalty(5, 10); got != 0 {
		t.Fatalf("penalty must clamp to zero, got %d", got)
	}
}

func (f *fixture) fund(t *testing.T, account [20]byte, amount int64) {
	t.Helper()
	if err := f.ledger.Mint(account, big.NewInt(amount)); err != nil {
		t.Fatalf("mint: %v", err)
	}
}

func (f *fixture) balance(t *testing.T, account [20]byte) int64 {
	t.Helper()
	bal, err := f.ledger.BalanceOf(account)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return bal.Int64()
}

func TestCreateLicenseSplitsPayment(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, creator)
	if err := f.engine.SetFeeRecipient(treasury, admin); err != nil {
		t.Fatalf("set fee recipient: %v", err)
	}
	f.fund(t, escrow, 1_000_000)

	license, err := f.engine.CreateLicense(item.ID, viewer, 100, true, big.NewInt(1_000_000), creator)
	if err != nil {
		t.Fatalf("create license: %v", err)
	}
	if license.ID != 0 || license.Price.Int64() != 1_000_000 || !license.IsActive || !license.IsExclusive {
		t.Fatalf("unexpected license: %+v", license)
	}
	if f.balance(t, treasury) != 25_000 || f.balance(t, creator) != 975_000 || f.balance(t, escrow) != 0 {
		t.Fatalf("unexpected settlement balances")
	}
	ids, err := f.engine.ContentLicenses(item.ID)
	if err != nil || len(ids) != 1 || ids[0] != 0 {
		t.Fatalf("unexpected license index %v err=%v", ids, err)
	}
}

func TestCreateLicenseRejections(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, creator)
	f.fund(t, escrow, 100)

	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(50), viewer); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected not owner, got %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, [20]byte{}, 10, false, big.NewInt(50), creator); !errors.Is(err, ErrInvalidLicensee) {
		t.Fatalf("expected invalid licensee, got %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(0), creator); !errors.Is(err, ErrNoPayment) {
		t.Fatalf("expected no payment, got %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(50), creator); !errors.Is(err, ErrFeeRecipientNotSet) {
		t.Fatalf("expected fee recipient not set, got %v", err)
	}
	if err := f.engine.SetFeeRecipient(treasury, admin); err != nil {
		t.Fatalf("set fee recipient: %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(101), creator); !errors.Is(err, ErrInsufficientEscrow) {
		t.Fatalf("expected insufficient escrow, got %v", err)
	}
	if f.balance(t, escrow) != 100 || f.balance(t, treasury) != 0 {
		t.Fatalf("failed license must not move funds")
	}
	if _, err := f.engine.RemoveContent(item.ID, moderator); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(50), creator); !errors.Is(err, ErrContentInactive) {
		t.Fatalf("expected inactive, got %v", err)
	}
	if ids, _ := f.engine.ContentLicenses(item.ID); len(ids) != 0 {
		t.Fatalf("no license should have been recorded")
	}
}

func TestCreateLicenseSurfacesLedgerPause(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, creator)
	f.fund(t, escrow, 100)
	if err := f.engine.SetFeeRecipient(treasury, admin); err != nil {
		t.Fatalf("set fee recipient: %v", err)
	}
	if err := f.state.SetPaused(common.ModuleToken, true); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(100), creator); !errors.Is(err, common.ErrModulePaused) {
		t.Fatalf("expected ledger pause to surface, got %v", err)
	}
}

func TestLicenseValidityBoundary(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, creator)
	f.fund(t, escrow, 10)
	if err := f.engine.SetFeeRecipient(treasury, admin); err != nil {
		t.Fatalf("set fee recipient: %v", err)
	}
	t0 := f.now
	license, err := f.engine.CreateLicense(item.ID, viewer, 100, false, big.NewInt(10), creator)
	if err != nil {
		t.Fatalf("create license: %v", err)
	}

	f.now = t0 + 100
	valid, err := f.engine.IsLicenseValid(license.ID)
	if err != nil || !valid {
		t.Fatalf("license must be valid at t0+duration: %v", err)
	}
	f.now = t0 + 101
	valid, err = f.engine.IsLicenseValid(license.ID)
	if err != nil || valid {
		t.Fatalf("license must be invalid after expiry: %v", err)
	}
	valid, err = f.engine.IsLicenseValid(99)
	if err != nil || valid {
		t.Fatalf("unknown license must be invalid: %v", err)
	}
	if _, err := f.engine.License(99); !errors.Is(err, ErrLicenseNotFound) {
		t.Fatalf("expected license not found, got %v", err)
	}
}

type failingLedger struct {
	calls int
	inner *token.Engine
}

func (l *failingLedger) Transfer(from [20]byte, to [20]byte, amount *big.Int) error {
	l.calls++
	if l.calls == 2 {
		return token.ErrInsufficientBalance
	}
	return l.inner.Transfer(from, to, amount)
}

func (l *failingLedger) BalanceOf(addr [20]byte) (*big.Int, error) { return l.inner.BalanceOf(addr) }

func TestCreateLicenseReportsSecondLegFailure(t *testing.T) {
	f := newFixture(t)
	item := f.create(t, creator)
	f.fund(t, escrow, 1_000)
	if err := f.engine.SetFeeRecipient(treasury, admin); err != nil {
		t.Fatalf("set fee recipient: %v", err)
	}
	ledger := &failingLedger{inner: f.ledger}
	f.engine.SetLedger(ledger)
	if _, err := f.engine.CreateLicense(item.ID, viewer, 10, false, big.NewInt(1_000), creator); !errors.Is(err, token.ErrInsufficientBalance) {
		t.Fatalf("expected ledger failure to surface, got %v", err)
	}
	if ledger.calls != 2 {
		t.Fatalf("expected fee leg before creator leg, got %d calls", ledger.calls)
	}
	if ids, _ := f.engine.ContentLicenses(item.ID); len(ids) != 0 {
		t.Fatalf("license must not be recorded when settlement fails")
	}
}

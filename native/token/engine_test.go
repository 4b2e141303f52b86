package token

import (
	"errors"
	"math/big"
	"testing"

	"connectsphere/core/events"
	"connectsphere/core/state"
	"connectsphere/native/common"
	"connectsphere/storage"
)

func addr(last byte) [20]byte {
	var out [20]byte
	out[19] = last
	return out
}

var (
	admin   = addr(0xA0)
	holding = addr(0xF0)
)

type fixture struct {
	engine *Engine
	state  *state.Manager
	events *events.Buffer
	now    int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{state: state.NewManager(storage.NewMemDB()), events: events.NewBuffer()}
	if err := f.state.SetRole(common.RoleAdministrator, admin[:]); err != nil {
		t.Fatalf("grant admin: %v", err)
	}
	f.engine = NewEngine()
	f.engine.SetState(f.state)
	f.engine.SetEmitter(f.events)
	f.engine.SetNowFunc(func() int64 { return f.now })
	f.engine.SetHoldingAccount(holding)
	return f
}

func (f *fixture) balance(t *testing.T, a [20]byte) int64 {
	t.Helper()
	bal, err := f.engine.BalanceOf(a)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	return bal.Int64()
}

func (f *fixture) supply(t *testing.T) *big.Int {
	t.Helper()
	total, err := f.engine.TotalSupply()
	if err != nil {
		t.Fatalf("supply: %v", err)
	}
	return total
}

func TestMintRespectsMaxSupply(t *testing.T) {
	f := newFixture(t)
	f.engine.SetMaxSupply(big.NewInt(1_000))

	if err := f.engine.Mint(addr(1), big.NewInt(600)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := f.engine.Mint(addr(2), big.NewInt(400)); err != nil {
		t.Fatalf("mint up to cap: %v", err)
	}
	if err := f.engine.Mint(addr(2), big.NewInt(1)); !errors.Is(err, ErrSupplyExceeded) {
		t.Fatalf("expected supply exceeded, got %v", err)
	}
	if got := f.supply(t); got.Cmp(big.NewInt(1_000)) != 0 {
		t.Fatalf("supply changed on rejected mint: %s", got)
	}
	if f.balance(t, addr(2)) != 400 {
		t.Fatalf("balance changed on rejected mint")
	}
	if f.events.Len() != 2 {
		t.Fatalf("expected one event per successful mint, got %d", f.events.Len())
	}
}

func TestSetMaxSupplyNeverRaisesCap(t *testing.T) {
	f := newFixture(t)
	f.engine.SetMaxSupply(new(big.Int).Add(DefaultMaxSupply, big.NewInt(1)))
	if f.engine.MaxSupply().Cmp(DefaultMaxSupply) != 0 {
		t.Fatalf("cap must not exceed default")
	}
	if err := f.engine.Mint(addr(1), DefaultMaxSupply); err != nil {
		t.Fatalf("mint full supply: %v", err)
	}
	if err := f.engine.Mint(addr(1), big.NewInt(1)); !errors.Is(err, ErrSupplyExceeded) {
		t.Fatalf("expected supply exceeded, got %v", err)
	}
}

func TestMintRejectsInvalidInput(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.Mint(addr(1), big.NewInt(0)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if err := f.engine.Mint([20]byte{}, big.NewInt(1)); !errors.Is(err, ErrInvalidAccount) {
		t.Fatalf("expected invalid account, got %v", err)
	}
}

func TestBurn(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.Mint(addr(1), big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := f.engine.Burn(addr(1), big.NewInt(101)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if err := f.engine.Burn(addr(1), big.NewInt(40)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if f.balance(t, addr(1)) != 60 || f.supply(t).Int64() != 60 {
		t.Fatalf("unexpected post-burn state")
	}
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.Mint(addr(1), big.NewInt(100)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	f.events.Reset()

	if err := f.engine.Transfer(addr(1), addr(2), big.NewInt(150)); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got %v", err)
	}
	if f.events.Len() != 0 {
		t.Fatalf("failed transfer must not emit")
	}
	if err := f.engine.Transfer(addr(1), addr(2), big.NewInt(30)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if f.balance(t, addr(1)) != 70 || f.balance(t, addr(2)) != 30 {
		t.Fatalf("unexpected balances after transfer")
	}
	if err := f.engine.Transfer(addr(2), addr(2), big.NewInt(30)); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if f.balance(t, addr(2)) != 30 {
		t.Fatalf("self transfer must keep balance, got %d", f.balance(t, addr(2)))
	}
	if f.supply(t).Int64() != 100 {
		t.Fatalf("transfers must not change supply")
	}
}

func TestTokenModulePause(t *testing.T) {
	f := newFixture(t)
	if err := f.state.SetPaused(common.ModuleToken, true); err != nil {
		t.Fatalf("pause: %v", err)
	}
	if err := f.engine.Mint(addr(1), big.NewInt(1)); !errors.Is(err, common.ErrModulePaused) {
		t.Fatalf("expected paused, got %v", err)
	}
	if _, err := f.engine.TotalSupply(); err != nil {
		t.Fatalf("reads must stay available: %v", err)
	}
}

func TestNilStateRejected(t *testing.T) {
	engine := NewEngine()
	if err := engine.Mint(addr(1), big.NewInt(1)); !errors.Is(err, errNilState) {
		t.Fatalf("expected nil state error, got %v", err)
	}
}

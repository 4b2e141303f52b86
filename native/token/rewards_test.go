package token

import (
	"errors"
	"math/big"
	"testing"

	"connectsphere/native/common"
)

func TestDistributeRewards(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.Mint(holding, big.NewInt(100)); err != nil {
		t.Fatalf("fund: %v", err)
	}
	f.events.Reset()

	recipients := [][20]byte{addr(1), addr(2)}
	amounts := []*big.Int{big.NewInt(10), big.NewInt(20)}
	if err := f.engine.DistributeRewards(addr(9), recipients, amounts, "weekly"); !errors.Is(err, common.ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := f.engine.DistributeRewards(admin, recipients, amounts[:1], "weekly"); !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected length mismatch, got %v", err)
	}
	if err := f.engine.DistributeRewards(admin, recipients, amounts, "weekly"); err != nil {
		t.Fatalf("distribute: %v", err)
	}
	if f.balance(t, addr(1)) != 10 || f.balance(t, addr(2)) != 20 || f.balance(t, holding) != 70 {
		t.Fatalf("unexpected balances after distribution")
	}
	if f.events.Len() != 2 {
		t.Fatalf("expected one event per recipient, got %d", f.events.Len())
	}
}

func TestDistributeRewardsStopsWithoutRollingBack(t *testing.T) {
	f := newFixture(t)
	if err := f.engine.Mint(holding, big.NewInt(25)); err != nil {
		t.Fatalf("fund: %v", err)
	}
	recipients := [][20]byte{addr(1), addr(2), addr(3)}
	amounts := []*big.Int{big.NewInt(10), big.NewInt(20), big.NewInt(1)}
	err := f.engine.DistributeRewards(admin, recipients, amounts, "")
	var distErr *DistributionError
	if !errors.As(err, &distErr) {
		t.Fatalf("expected distribution error, got %v", err)
	}
	if distErr.Applied != 1 || distErr.Index != 1 || distErr.Recipient != addr(2) {
		t.Fatalf("unexpected distribution error: %+v", distErr)
	}
	if !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("expected wrapped insufficient balance, got %v", err)
	}
	if f.balance(t, addr(1)) != 10 || f.balance(t, addr(2)) != 0 || f.balance(t, addr(3)) != 0 {
		t.Fatalf("earlier transfers must stay applied and later ones skipped")
	}
}

package core

import (
	"math/big"

	"connectsphere/native/common"
	"connectsphere/native/token"
)

func (n *Node) Mint(to [20]byte, amount *big.Int) error {
	return n.apply(common.ModuleToken, "mint", to, func(tx *txn) error {
		return tx.ledger.Mint(to, amount)
	})
}

func (n *Node) Burn(from [20]byte, amount *big.Int) error {
	return n.apply(common.ModuleToken, "burn", from, func(tx *txn) error {
		return tx.ledger.Burn(from, amount)
	})
}

func (n *Node) Transfer(from, to [20]byte, amount *big.Int) error {
	return n.apply(common.ModuleToken, "transfer", from, func(tx *txn) error {
		return tx.ledger.Transfer(from, to, amount)
	})
}

// CreateVestingSchedule registers a linear schedule funded from the holding
// balance. Administrator only.
func (n *Node) CreateVestingSchedule(caller, beneficiary [20]byte, totalAmount *big.Int, startTime, duration, cliffDuration uint64) (*token.VestingSchedule, error) {
	var schedule *token.VestingSchedule
	err := n.apply(common.ModuleToken, "createVestingSchedule", caller, func(tx *txn) error {
		var err error
		schedule, err = tx.ledger.CreateVestingSchedule(caller, beneficiary, totalAmount, startTime, duration, cliffDuration)
		return err
	})
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ReleaseVestedTokens pays the caller's releasable amount and returns it.
func (n *Node) ReleaseVestedTokens(caller [20]byte) (*big.Int, error) {
	var released *big.Int
	err := n.apply(common.ModuleToken, "releaseVestedTokens", caller, func(tx *txn) error {
		var err error
		released, err = tx.ledger.ReleaseVestedTokens(caller)
		return err
	})
	if err != nil {
		return nil, err
	}
	return released, nil
}

// DistributeRewards pays each recipient from the holding balance. On a
// *token.DistributionError the transfers before the failing index have been
// committed.
func (n *Node) DistributeRewards(caller [20]byte, recipients [][20]byte, amounts []*big.Int, reason string) error {
	return n.apply(common.ModuleToken, "distributeRewards", caller, func(tx *txn) error {
		return tx.ledger.DistributeRewards(caller, recipients, amounts, reason)
	})
}

func (n *Node) BalanceOf(addr [20]byte) (*big.Int, error) {
	var balance *big.Int
	err := n.view(func(tx *txn) error {
		var err error
		balance, err = tx.ledger.BalanceOf(addr)
		return err
	})
	return balance, err
}

func (n *Node) TotalSupply() (*big.Int, error) {
	var total *big.Int
	err := n.view(func(tx *txn) error {
		var err error
		total, err = tx.ledger.TotalSupply()
		return err
	})
	return total, err
}

// MaxSupply returns the effective supply cap.
func (n *Node) MaxSupply() *big.Int {
	engine := token.NewEngine()
	engine.SetMaxSupply(n.maxSupply)
	return engine.MaxSupply()
}

// VestingSchedule returns the beneficiary's schedule, or nil when none exists.
func (n *Node) VestingSchedule(beneficiary [20]byte) (*token.VestingSchedule, error) {
	var schedule *token.VestingSchedule
	err := n.view(func(tx *txn) error {
		s, ok, err := tx.ledger.VestingSchedule(beneficiary)
		if err != nil || !ok {
			return err
		}
		schedule = s
		return nil
	})
	return schedule, err
}

func (n *Node) VestedAmount(beneficiary [20]byte) (*big.Int, error) {
	var vested *big.Int
	err := n.view(func(tx *txn) error {
		var err error
		vested, err = tx.ledger.VestedAmount(beneficiary)
		return err
	})
	return vested, err
}

func (n *Node) Releasable(beneficiary [20]byte) (*big.Int, error) {
	var amount *big.Int
	err := n.view(func(tx *txn) error {
		var err error
		amount, err = tx.ledger.Releasable(beneficiary)
		return err
	})
	return amount, err
}

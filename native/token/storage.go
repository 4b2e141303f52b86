package token

import (
	"fmt"
	"math/big"
)

// engineState is the subset of the state manager the ledger relies on.
type engineState interface {
	KVGet(key []byte, out interface{}) (bool, error)
	KVPut(key []byte, value interface{}) error
	HasRole(role string, addr []byte) bool
	IsPaused(module string) bool
}

var (
	supplyKey     = []byte("token/supply")
	balancePrefix = "token/balance/"
	vestingPrefix = "token/vesting/"
)

func balanceKey(addr [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", balancePrefix, addr))
}

func vestingKey(beneficiary [20]byte) []byte {
	return []byte(fmt.Sprintf("%s%x", vestingPrefix, beneficiary))
}

func (e *Engine) loadBalance(addr [20]byte) (*big.Int, error) {
	balance := new(big.Int)
	ok, err := e.state.KVGet(balanceKey(addr), balance)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return balance, nil
}

func (e *Engine) storeBalance(addr [20]byte, amount *big.Int) error {
	return e.state.KVPut(balanceKey(addr), newBigInt(amount))
}

func (e *Engine) loadSupply() (*big.Int, error) {
	total := new(big.Int)
	ok, err := e.state.KVGet(supplyKey, total)
	if err != nil {
		return nil, err
	}
	if !ok {
		return big.NewInt(0), nil
	}
	return total, nil
}

func (e *Engine) storeSupply(total *big.Int) error {
	return e.state.KVPut(supplyKey, newBigInt(total))
}

func (e *Engine) loadSchedule(beneficiary [20]byte) (*VestingSchedule, bool, error) {
	schedule := new(VestingSchedule)
	ok, err := e.state.KVGet(vestingKey(beneficiary), schedule)
	if err != nil || !ok {
		return nil, false, err
	}
	schedule.TotalAmount = newBigInt(schedule.TotalAmount)
	schedule.ReleasedAmount = newBigInt(schedule.ReleasedAmount)
	return schedule, true, nil
}

func (e *Engine) storeSchedule(schedule *VestingSchedule) error {
	return e.state.KVPut(vestingKey(schedule.Beneficiary), schedule)
}

package token

import (
	"math/big"
	"time"

	"connectsphere/core/events"
	"connectsphere/native/common"
)

// Engine implements the capped-supply ledger: balances, mint/burn/transfer,
// vesting schedules and reward disbursement from the holding balance.
type Engine struct {
	state     engineState
	emitter   events.Emitter
	nowFn     func() int64
	holding   [20]byte
	maxSupply *big.Int
}

// NewEngine constructs a ledger engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter:   events.NoopEmitter{},
		nowFn:     func() int64 { return time.Now().Unix() },
		maxSupply: new(big.Int).Set(DefaultMaxSupply),
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetEmitter configures the event emitter used by the engine.
func (e *Engine) SetEmitter(emitter events.Emitter) {
	if emitter == nil {
		e.emitter = events.NoopEmitter{}
		return
	}
	e.emitter = emitter
}

// SetNowFunc overrides the time source used for deterministic testing.
func (e *Engine) SetNowFunc(now func() int64) {
	if now == nil {
		e.nowFn = func() int64 { return time.Now().Unix() }
		return
	}
	e.nowFn = now
}

// SetHoldingAccount configures the system account that backs vesting
// releases and reward distributions.
func (e *Engine) SetHoldingAccount(addr [20]byte) { e.holding = addr }

// HoldingAccount returns the configured holding account.
func (e *Engine) HoldingAccount() [20]byte { return e.holding }

// SetMaxSupply lowers the supply cap. Values above DefaultMaxSupply or
// non-positive values are ignored.
func (e *Engine) SetMaxSupply(limit *big.Int) {
	if limit == nil || limit.Sign() <= 0 || limit.Cmp(DefaultMaxSupply) > 0 {
		return
	}
	e.maxSupply = new(big.Int).Set(limit)
}

// MaxSupply returns the supply cap.
func (e *Engine) MaxSupply() *big.Int { return newBigInt(e.maxSupply) }

func (e *Engine) emit(evt events.Event) {
	if e == nil || evt == nil || e.emitter == nil {
		return
	}
	e.emitter.Emit(evt)
}

func (e *Engine) now() int64 {
	if e == nil || e.nowFn == nil {
		return time.Now().Unix()
	}
	return e.nowFn()
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errNilState
	}
	return nil
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

func validAmount(amount *big.Int) bool {
	return amount != nil && amount.Sign() > 0
}

// Mint credits amount to the account and grows the total supply. The cap is
// checked against the post-mint supply.
func (e *Engine) Mint(to [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return err
	}
	if isZeroAddress(to) {
		return ErrInvalidAccount
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	supply, err := e.loadSupply()
	if err != nil {
		return err
	}
	updated := new(big.Int).Add(supply, amount)
	if updated.Cmp(e.maxSupply) > 0 {
		return ErrSupplyExceeded
	}
	balance, err := e.loadBalance(to)
	if err != nil {
		return err
	}
	if err := e.storeBalance(to, new(big.Int).Add(balance, amount)); err != nil {
		return err
	}
	if err := e.storeSupply(updated); err != nil {
		return err
	}
	e.emit(events.TokenSupply{
		Token:     Symbol,
		Account:   to,
		Total:     updated,
		Delta:     newBigInt(amount),
		Reason:    events.SupplyReasonMint,
		Timestamp: e.now(),
	})
	return nil
}

// Burn destroys amount from the account and shrinks the total supply.
func (e *Engine) Burn(from [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return err
	}
	if isZeroAddress(from) {
		return ErrInvalidAccount
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	balance, err := e.loadBalance(from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	supply, err := e.loadSupply()
	if err != nil {
		return err
	}
	if supply.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	updated := new(big.Int).Sub(supply, amount)
	if err := e.storeBalance(from, new(big.Int).Sub(balance, amount)); err != nil {
		return err
	}
	if err := e.storeSupply(updated); err != nil {
		return err
	}
	e.emit(events.TokenSupply{
		Token:     Symbol,
		Account:   from,
		Total:     updated,
		Delta:     new(big.Int).Neg(amount),
		Reason:    events.SupplyReasonBurn,
		Timestamp: e.now(),
	})
	return nil
}

// Transfer debits from and credits to in one step.
func (e *Engine) Transfer(from [20]byte, to [20]byte, amount *big.Int) error {
	if err := e.ready(); err != nil {
		return err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return err
	}
	if err := e.move(from, to, amount); err != nil {
		return err
	}
	e.emit(events.TokenTransfer{
		Token:     Symbol,
		From:      from,
		To:        to,
		Amount:    newBigInt(amount),
		Timestamp: e.now(),
	})
	return nil
}

// move validates and applies a balance movement. Nothing is written unless
// every check passes.
func (e *Engine) move(from [20]byte, to [20]byte, amount *big.Int) error {
	if isZeroAddress(from) || isZeroAddress(to) {
		return ErrInvalidAccount
	}
	if !validAmount(amount) {
		return ErrInvalidAmount
	}
	fromBalance, err := e.loadBalance(from)
	if err != nil {
		return err
	}
	if fromBalance.Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	if err := e.storeBalance(from, new(big.Int).Sub(fromBalance, amount)); err != nil {
		return err
	}
	toBalance, err := e.loadBalance(to)
	if err != nil {
		return err
	}
	return e.storeBalance(to, new(big.Int).Add(toBalance, amount))
}

// BalanceOf returns the balance held by the account.
func (e *Engine) BalanceOf(addr [20]byte) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadBalance(addr)
}

// TotalSupply returns the number of tokens in existence.
func (e *Engine) TotalSupply() (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	return e.loadSupply()
}

package content

import (
	"math/big"
	"time"

	"connectsphere/core/events"
	"connectsphere/native/common"
)

// Ledger is the fund-movement surface the registry needs from the token
// ledger. License payments are settled exclusively through it.
type Ledger interface {
	Transfer(from [20]byte, to [20]byte, amount *big.Int) error
	BalanceOf(addr [20]byte) (*big.Int, error)
}

// Engine wires the content registry business logic with persistence, the
// token ledger and event emission.
type Engine struct {
	state   engineState
	ledger  Ledger
	emitter events.Emitter
	nowFn   func() int64
	escrow  [20]byte
}

// NewEngine constructs a registry engine with default dependencies.
func NewEngine() *Engine {
	return &Engine{
		emitter: events.NoopEmitter{},
		nowFn: func() int64 {
			return time.Now().Unix()
		},
	}
}

// SetState configures the state backend used by the engine.
func (e *Engine) SetState(state engineState) { e.state = state }

// SetLedger injects the ledger used to settle license payments.
func (e *Engine) SetLedger(ledger Ledger) { e.ledger = ledger }

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

// SetEscrowAccount configures the ledger account license payments are drawn
// from.
func (e *Engine) SetEscrowAccount(addr [20]byte) { e.escrow = addr }

// EscrowAccount returns the configured license escrow account.
func (e *Engine) EscrowAccount() [20]byte { return e.escrow }

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

func (e *Engine) nowUnsigned() uint64 {
	now := e.now()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

func (e *Engine) ready() error {
	if e == nil || e.state == nil {
		return errNilState
	}
	return nil
}

// mutable checks the preconditions shared by every content-mutating entry
// point.
func (e *Engine) mutable() error {
	if err := e.ready(); err != nil {
		return err
	}
	return common.Guard(e.state, common.ModuleContent)
}

func isZeroAddress(addr [20]byte) bool {
	var zero [20]byte
	return addr == zero
}

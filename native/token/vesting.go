package token

import (
	"math/big"

	"github.com/holiman/uint256"

	"connectsphere/core/events"
	"connectsphere/native/common"
)

// vestedAmount returns the portion of the schedule unlocked at now. The
// schedule is fully vested once duration has elapsed; up to and including the
// cliff boundary nothing is vested; in between the amount grows linearly and
// is truncated toward zero.
func vestedAmount(s *VestingSchedule, now uint64) *big.Int {
	if s == nil || s.TotalAmount == nil || s.Duration == 0 {
		return big.NewInt(0)
	}
	if now < s.StartTime {
		return big.NewInt(0)
	}
	elapsed := now - s.StartTime
	if elapsed >= s.Duration {
		return new(big.Int).Set(s.TotalAmount)
	}
	if elapsed <= s.CliffDuration {
		return big.NewInt(0)
	}
	total, overflow := uint256.FromBig(s.TotalAmount)
	if overflow {
		// Amounts are bounded by the supply cap; fall back to big.Int anyway.
		vested := new(big.Int).Mul(s.TotalAmount, new(big.Int).SetUint64(elapsed))
		return vested.Quo(vested, new(big.Int).SetUint64(s.Duration))
	}
	vested, overflow := new(uint256.Int).MulDivOverflow(total, uint256.NewInt(elapsed), uint256.NewInt(s.Duration))
	if overflow {
		return new(big.Int).Set(s.TotalAmount)
	}
	return vested.ToBig()
}

func releasable(s *VestingSchedule, now uint64) *big.Int {
	vested := vestedAmount(s, now)
	released := newBigInt(s.ReleasedAmount)
	if vested.Cmp(released) <= 0 {
		return big.NewInt(0)
	}
	return vested.Sub(vested, released)
}

func (e *Engine) nowUnsigned() uint64 {
	now := e.now()
	if now < 0 {
		return 0
	}
	return uint64(now)
}

// CreateVestingSchedule registers a schedule for beneficiary. Funds are not
// moved; they are expected to sit in the holding balance already.
func (e *Engine) CreateVestingSchedule(caller [20]byte, beneficiary [20]byte, totalAmount *big.Int, startTime, duration, cliffDuration uint64) (*VestingSchedule, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return nil, err
	}
	if err := common.RequireRole(e.state, common.RoleAdministrator, caller); err != nil {
		return nil, err
	}
	if isZeroAddress(beneficiary) {
		return nil, ErrInvalidBeneficiary
	}
	if !validAmount(totalAmount) {
		return nil, ErrInvalidAmount
	}
	if duration == 0 || cliffDuration > duration {
		return nil, ErrInvalidDuration
	}
	if _, exists, err := e.loadSchedule(beneficiary); err != nil {
		return nil, err
	} else if exists {
		return nil, ErrScheduleExists
	}
	schedule := &VestingSchedule{
		Beneficiary:    beneficiary,
		TotalAmount:    newBigInt(totalAmount),
		ReleasedAmount: big.NewInt(0),
		StartTime:      startTime,
		Duration:       duration,
		CliffDuration:  cliffDuration,
	}
	if err := e.storeSchedule(schedule); err != nil {
		return nil, err
	}
	e.emit(events.VestingCreated{
		Beneficiary:   beneficiary,
		TotalAmount:   newBigInt(totalAmount),
		StartTime:     startTime,
		Duration:      duration,
		CliffDuration: cliffDuration,
		Timestamp:     e.now(),
	})
	return schedule.Clone(), nil
}

// ReleaseVestedTokens pays the caller everything vested but not yet released
// and returns the amount paid.
func (e *Engine) ReleaseVestedTokens(caller [20]byte) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	if err := common.Guard(e.state, common.ModuleToken); err != nil {
		return nil, err
	}
	schedule, ok, err := e.loadSchedule(caller)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSchedule
	}
	amount := releasable(schedule, e.nowUnsigned())
	if amount.Sign() == 0 {
		return nil, ErrNothingToRelease
	}
	if isZeroAddress(e.holding) {
		return nil, ErrHoldingNotSet
	}
	if err := e.move(e.holding, caller, amount); err != nil {
		return nil, err
	}
	schedule.ReleasedAmount = new(big.Int).Add(schedule.ReleasedAmount, amount)
	if err := e.storeSchedule(schedule); err != nil {
		return nil, err
	}
	e.emit(events.VestingReleased{
		Beneficiary:   caller,
		Amount:        newBigInt(amount),
		TotalReleased: newBigInt(schedule.ReleasedAmount),
		Timestamp:     e.now(),
	})
	return amount, nil
}

// VestingSchedule returns the stored schedule for beneficiary.
func (e *Engine) VestingSchedule(beneficiary [20]byte) (*VestingSchedule, bool, error) {
	if err := e.ready(); err != nil {
		return nil, false, err
	}
	return e.loadSchedule(beneficiary)
}

// VestedAmount returns the amount unlocked so far for beneficiary.
func (e *Engine) VestedAmount(beneficiary [20]byte) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	schedule, ok, err := e.loadSchedule(beneficiary)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSchedule
	}
	return vestedAmount(schedule, e.nowUnsigned()), nil
}

// Releasable returns what ReleaseVestedTokens would pay right now.
func (e *Engine) Releasable(beneficiary [20]byte) (*big.Int, error) {
	if err := e.ready(); err != nil {
		return nil, err
	}
	schedule, ok, err := e.loadSchedule(beneficiary)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSchedule
	}
	return releasable(schedule, e.nowUnsigned()), nil
}

package token

import (
	"errors"
	"fmt"
)

var (
	errNilState = errors.New("token engine: state not configured")

	ErrSupplyExceeded      = errors.New("token: supply exceeded")
	ErrInsufficientBalance = errors.New("token: insufficient balance")
	ErrInvalidAmount       = errors.New("token: amount must be positive")
	ErrInvalidAccount      = errors.New("token: account must not be zero")
	ErrInvalidBeneficiary  = errors.New("token: invalid beneficiary")
	ErrInvalidDuration     = errors.New("token: invalid vesting duration")
	ErrScheduleExists      = errors.New("token: vesting schedule already exists")
	ErrNoSchedule          = errors.New("token: no vesting schedule")
	ErrNothingToRelease    = errors.New("token: nothing to release")
	ErrLengthMismatch      = errors.New("token: recipients and amounts length mismatch")
	ErrHoldingNotSet       = errors.New("token: holding account not configured")
)

// DistributionError reports a reward batch that stopped part way. Transfers
// before Index were applied and stay applied.
type DistributionError struct {
	Applied   int
	Index     int
	Recipient [20]byte
	Err       error
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("token: reward distribution stopped at index %d after %d transfers: %v", e.Index, e.Applied, e.Err)
}

func (e *DistributionError) Unwrap() error { return e.Err }

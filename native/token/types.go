package token

import "math/big"

const (
	// Symbol is the ticker of the platform reward token.
	Symbol = "CSP"
	// Decimals is the number of fractional digits of one whole token.
	Decimals = 18
)

// DefaultMaxSupply caps the token at one billion whole tokens.
var DefaultMaxSupply = new(big.Int).Mul(big.NewInt(1_000_000_000), new(big.Int).Exp(big.NewInt(10), big.NewInt(Decimals), nil))

// VestingSchedule releases TotalAmount linearly over Duration seconds from
// StartTime, with nothing releasable until the cliff has passed.
type VestingSchedule struct {
	Beneficiary    [20]byte `json:"beneficiary"`
	TotalAmount    *big.Int `json:"totalAmount"`
	ReleasedAmount *big.Int `json:"releasedAmount"`
	StartTime      uint64   `json:"startTime"`
	Duration       uint64   `json:"duration"`
	CliffDuration  uint64   `json:"cliffDuration"`
}

// Clone returns a deep copy of the schedule.
func (s *VestingSchedule) Clone() *VestingSchedule {
	if s == nil {
		return nil
	}
	clone := *s
	clone.TotalAmount = newBigInt(s.TotalAmount)
	clone.ReleasedAmount = newBigInt(s.ReleasedAmount)
	return &clone
}

func newBigInt(v *big.Int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	return new(big.Int).Set(v)
}

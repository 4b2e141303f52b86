package content

import "math/big"

const (
	// ReportThreshold is the report count at which content is deactivated
	// automatically.
	ReportThreshold = 10

	DefaultFeeBps  = 250
	MaxFeeBps      = 1_000
	BpsDenominator = 10_000

	likeReputation         = 1
	shareReputation        = 2
	verificationReputation = 50
	removalPenalty         = 10
)

// Content is a registered piece of media. IsActive only ever moves from true
// to false.
type Content struct {
	ID          uint64   `json:"id"`
	Creator     [20]byte `json:"creator"`
	ContentRef  string   `json:"contentRef"`
	ContentType string   `json:"contentType"`
	Timestamp   uint64   `json:"timestamp"`
	IsActive    bool     `json:"isActive"`
	Likes       uint64   `json:"likes"`
	Shares      uint64   `json:"shares"`
	Reports     uint64   `json:"reports"`
}

// Creator aggregates engagement and standing for a wallet.
type Creator struct {
	Wallet       [20]byte `json:"wallet"`
	Reputation   uint64   `json:"reputation"`
	TotalContent uint64   `json:"totalContent"`
	TotalLikes   uint64   `json:"totalLikes"`
	TotalShares  uint64   `json:"totalShares"`
	IsVerified   bool     `json:"isVerified"`
	IsBanned     bool     `json:"isBanned"`
}

// License grants a licensee use of a content item for Duration seconds from
// StartTime.
type License struct {
	ID          uint64   `json:"id"`
	ContentID   uint64   `json:"contentId"`
	Licensee    [20]byte `json:"licensee"`
	Price       *big.Int `json:"price"`
	Duration    uint64   `json:"duration"`
	StartTime   uint64   `json:"startTime"`
	IsExclusive bool     `json:"isExclusive"`
	IsActive    bool     `json:"isActive"`
}

// ValidAt reports whether the license is usable at the supplied time. The
// expiry boundary is inclusive.
func (l *License) ValidAt(now uint64) bool {
	if l == nil || !l.IsActive {
		return false
	}
	if now < l.StartTime {
		return true
	}
	return now-l.StartTime <= l.Duration
}

// Clone returns a deep copy of the license.
func (l *License) Clone() *License {
	if l == nil {
		return nil
	}
	clone := *l
	if l.Price != nil {
		clone.Price = new(big.Int).Set(l.Price)
	}
	return &clone
}

// Params holds the mutable fee configuration of the registry.
type Params struct {
	FeeBps       uint32   `json:"feeBps"`
	FeeRecipient [20]byte `json:"feeRecipient"`
}

// DefaultParams returns the fee configuration used before any update.
func DefaultParams() Params {
	return Params{FeeBps: DefaultFeeBps}
}

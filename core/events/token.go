package events

import (
	"math/big"
	"strings"

	"connectsphere/core/types"
)

const (
	// TypeTokenSupply is emitted whenever the token supply changes.
	TypeTokenSupply = "token.supply"
	// TypeTokenTransfer is emitted for every balance movement between accounts.
	TypeTokenTransfer = "token.transfer"
	// TypeVestingCreated is emitted when an administrator registers a schedule.
	TypeVestingCreated = "token.vesting.created"
	// TypeVestingReleased is emitted when a beneficiary releases vested tokens.
	TypeVestingReleased = "token.vesting.released"
	// TypeRewardDistributed is emitted once per recipient of a reward batch.
	TypeRewardDistributed = "token.reward.distributed"

	// SupplyReasonMint identifies mint driven supply increases.
	SupplyReasonMint = "mint"
	// SupplyReasonBurn identifies burn driven supply decreases.
	SupplyReasonBurn = "burn"
)

// TokenSupply captures a supply delta for the reward token.
type TokenSupply struct {
	Token     string
	Account   [20]byte
	Total     *big.Int
	Delta     *big.Int
	Reason    string
	Timestamp int64
}

func (TokenSupply) EventType() string { return TypeTokenSupply }

// Event renders the structured supply change event for downstream consumers.
func (e TokenSupply) Event() *types.Event {
	attrs := map[string]string{
		"token":     normalizeAsset(e.Token),
		"account":   addr(e.Account),
		"total":     formatAmount(e.Total),
		"timestamp": intToString(e.Timestamp),
	}
	if e.Delta != nil {
		attrs["delta"] = e.Delta.String()
	}
	if reason := strings.TrimSpace(e.Reason); reason != "" {
		attrs["reason"] = reason
	}
	return &types.Event{Type: TypeTokenSupply, Attributes: attrs}
}

// TokenTransfer records a debit/credit pair.
type TokenTransfer struct {
	Token     string
	From      [20]byte
	To        [20]byte
	Amount    *big.Int
	Timestamp int64
}

func (TokenTransfer) EventType() string { return TypeTokenTransfer }

func (e TokenTransfer) Event() *types.Event {
	return &types.Event{
		Type: TypeTokenTransfer,
		Attributes: map[string]string{
			"token":     normalizeAsset(e.Token),
			"from":      addr(e.From),
			"to":        addr(e.To),
			"amount":    formatAmount(e.Amount),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

// VestingCreated announces a new vesting schedule.
type VestingCreated struct {
	Beneficiary   [20]byte
	TotalAmount   *big.Int
	StartTime     uint64
	Duration      uint64
	CliffDuration uint64
	Timestamp     int64
}

func (VestingCreated) EventType() string { return TypeVestingCreated }

func (e VestingCreated) Event() *types.Event {
	return &types.Event{
		Type: TypeVestingCreated,
		Attributes: map[string]string{
			"beneficiary":   addr(e.Beneficiary),
			"totalAmount":   formatAmount(e.TotalAmount),
			"startTime":     uintToString(e.StartTime),
			"duration":      uintToString(e.Duration),
			"cliffDuration": uintToString(e.CliffDuration),
			"timestamp":     intToString(e.Timestamp),
		},
	}
}

// VestingReleased records a release from a vesting schedule.
type VestingReleased struct {
	Beneficiary   [20]byte
	Amount        *big.Int
	TotalReleased *big.Int
	Timestamp     int64
}

func (VestingReleased) EventType() string { return TypeVestingReleased }

func (e VestingReleased) Event() *types.Event {
	return &types.Event{
		Type: TypeVestingReleased,
		Attributes: map[string]string{
			"beneficiary":   addr(e.Beneficiary),
			"amount":        formatAmount(e.Amount),
			"totalReleased": formatAmount(e.TotalReleased),
			"timestamp":     intToString(e.Timestamp),
		},
	}
}

// RewardDistributed records one transfer out of the holding balance.
type RewardDistributed struct {
	Recipient [20]byte
	Amount    *big.Int
	Reason    string
	Timestamp int64
}

func (RewardDistributed) EventType() string { return TypeRewardDistributed }

func (e RewardDistributed) Event() *types.Event {
	return &types.Event{
		Type: TypeRewardDistributed,
		Attributes: map[string]string{
			"recipient": addr(e.Recipient),
			"amount":    formatAmount(e.Amount),
			"reason":    strings.TrimSpace(e.Reason),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

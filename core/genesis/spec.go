// core/genesis/spec.go
package genesis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"sort"
	"strings"
	"time"

	"connectsphere/crypto"
	"connectsphere/native/common"
	"connectsphere/native/content"
)

type GenesisSpec struct {
	GenesisTime    string              `json:"genesisTime"`
	Roles          map[string][]string `json:"roles"`           // role -> []account
	Alloc          map[string]string   `json:"alloc,omitempty"` // account -> amount
	HoldingReserve string              `json:"holdingReserve,omitempty"`
	Vesting        []VestingSpec       `json:"vesting,omitempty"`
	Registry       *RegistrySpec       `json:"registry,omitempty"`
	Paused         []string            `json:"paused,omitempty"`

	genesisTimestamp time.Time
	roles            map[string][][20]byte
	alloc            map[[20]byte]*big.Int
	holdingReserve   *big.Int
}

type VestingSpec struct {
	Beneficiary   string  `json:"beneficiary"`
	Amount        string  `json:"amount"`
	StartTime     *uint64 `json:"startTime,omitempty"`
	Duration      uint64  `json:"duration"`
	CliffDuration uint64  `json:"cliffDuration"`

	beneficiary [20]byte
	amount      *big.Int
}

type RegistrySpec struct {
	FeeBps       *uint32 `json:"feeBps,omitempty"`
	FeeRecipient string  `json:"feeRecipient,omitempty"`

	feeRecipient [20]byte
}

func LoadGenesisSpec(path string) (*GenesisSpec, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("genesis spec path must be provided")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read genesis spec %q: %w", path, err)
	}
	spec, err := ParseGenesisSpec(raw)
	if err != nil {
		return nil, fmt.Errorf("genesis spec %q: %w", path, err)
	}
	return spec, nil
}

// ParseGenesisSpec decodes and validates a JSON genesis document. Unknown
// fields are rejected.
func ParseGenesisSpec(raw []byte) (*GenesisSpec, error) {
	var spec GenesisSpec
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return &spec, nil
}

func (s *GenesisSpec) GenesisTimestamp() time.Time { return s.genesisTimestamp }

// unixTime returns the genesis time in seconds, or zero when unset.
func (s *GenesisSpec) unixTime() uint64 {
	if s.genesisTimestamp.IsZero() || s.genesisTimestamp.Unix() < 0 {
		return 0
	}
	return uint64(s.genesisTimestamp.Unix())
}

func (s *GenesisSpec) validate() error {
	parsedTime, err := parseGenesisTime(s.GenesisTime)
	if err != nil {
		return err
	}
	s.genesisTimestamp = parsedTime

	// roles
	s.roles = make(map[string][][20]byte, len(s.Roles))
	for _, role := range sortedKeys(s.Roles) {
		if !common.KnownRole(role) {
			return fmt.Errorf("roles[%q]: %w", role, common.ErrUnknownRole)
		}
		seen := make(map[[20]byte]struct{}, len(s.Roles[role]))
		for i, account := range s.Roles[role] {
			addr, err := crypto.ParseAccount(account)
			if err != nil {
				return fmt.Errorf("roles[%q][%d]: %w", role, i, err)
			}
			if _, dup := seen[addr]; dup {
				return fmt.Errorf("roles[%q]: duplicate account %q", role, account)
			}
			seen[addr] = struct{}{}
			s.roles[role] = append(s.roles[role], addr)
		}
	}
	if len(s.roles[common.RoleAdministrator]) == 0 {
		return fmt.Errorf("roles: at least one %s is required", common.RoleAdministrator)
	}

	// alloc
	s.alloc = make(map[[20]byte]*big.Int, len(s.Alloc))
	for _, account := range sortedKeys(s.Alloc) {
		addr, err := crypto.ParseAccount(account)
		if err != nil {
			return fmt.Errorf("alloc[%q]: %w", account, err)
		}
		if _, dup := s.alloc[addr]; dup {
			return fmt.Errorf("alloc[%q]: duplicate account", account)
		}
		amount, err := parseAmountString(s.Alloc[account])
		if err != nil {
			return fmt.Errorf("alloc[%q]: %w", account, err)
		}
		s.alloc[addr] = amount
	}

	s.holdingReserve = nil
	if strings.TrimSpace(s.HoldingReserve) != "" {
		reserve, err := parseAmountString(s.HoldingReserve)
		if err != nil {
			return fmt.Errorf("holdingReserve: %w", err)
		}
		s.holdingReserve = reserve
	}

	// vesting
	beneficiaries := make(map[[20]byte]struct{}, len(s.Vesting))
	for i := range s.Vesting {
		v := &s.Vesting[i]
		if err := v.validate(); err != nil {
			return fmt.Errorf("vesting[%d]: %w", i, err)
		}
		if _, dup := beneficiaries[v.beneficiary]; dup {
			return fmt.Errorf("vesting[%d]: duplicate beneficiary %q", i, v.Beneficiary)
		}
		beneficiaries[v.beneficiary] = struct{}{}
		if v.StartTime == nil && s.genesisTimestamp.IsZero() {
			return fmt.Errorf("vesting[%d]: startTime required when genesisTime is unset", i)
		}
	}

	if s.Registry != nil {
		if err := s.Registry.validate(); err != nil {
			return fmt.Errorf("registry: %w", err)
		}
	}

	for i, module := range s.Paused {
		if !common.KnownModule(strings.TrimSpace(module)) {
			return fmt.Errorf("paused[%d]: %w: %q", i, common.ErrUnknownModule, module)
		}
	}
	return nil
}

func (v *VestingSpec) validate() error {
	addr, err := crypto.ParseAccount(v.Beneficiary)
	if err != nil {
		return fmt.Errorf("beneficiary: %w", err)
	}
	amount, err := parseAmountString(v.Amount)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if v.Duration == 0 {
		return fmt.Errorf("duration must be greater than zero")
	}
	if v.CliffDuration > v.Duration {
		return fmt.Errorf("cliffDuration must not exceed duration")
	}
	v.beneficiary = addr
	v.amount = amount
	return nil
}

// DefaultRegistry fills in the registry section when the genesis file leaves
// it out, so the fee parameters commit together with the rest of genesis.
// A registry section already present is kept as is.
func (s *GenesisSpec) DefaultRegistry(feeBps uint32, feeRecipient string) error {
	if s.Registry != nil {
		return nil
	}
	registry := &RegistrySpec{FeeBps: &feeBps, FeeRecipient: feeRecipient}
	if err := registry.validate(); err != nil {
		return fmt.Errorf("registry: %w", err)
	}
	s.Registry = registry
	return nil
}

func (r *RegistrySpec) validate() error {
	if r.FeeBps != nil && *r.FeeBps > content.MaxFeeBps {
		return fmt.Errorf("feeBps must be <= %d", content.MaxFeeBps)
	}
	if strings.TrimSpace(r.FeeRecipient) != "" {
		addr, err := crypto.ParseAccount(r.FeeRecipient)
		if err != nil {
			return fmt.Errorf("feeRecipient: %w", err)
		}
		r.feeRecipient = addr
	}
	return nil
}

func parseAmountString(value string) (*big.Int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, fmt.Errorf("amount must be provided")
	}
	amount, ok := new(big.Int).SetString(trimmed, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", value)
	}
	if amount.Sign() <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}
	return amount, nil
}

func parseGenesisTime(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid genesisTime: %w", err)
	}
	return parsed.UTC(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

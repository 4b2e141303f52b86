// core/genesis/loader.go
package genesis

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"strings"

	"connectsphere/native/common"
	"connectsphere/native/token"
)

var appliedKey = []byte("genesis/applied")

// ErrAlreadyApplied is returned when state already carries a genesis.
var ErrAlreadyApplied = errors.New("genesis: already applied")

// Store is the raw state surface genesis seeds directly.
type Store interface {
	SetRole(role string, addr []byte) error
	SetPaused(module string, paused bool) error
	KVPut(key []byte, value interface{}) error
	KVGet(key []byte, out interface{}) (bool, error)
}

type Ledger interface {
	Mint(to [20]byte, amount *big.Int) error
	BalanceOf(addr [20]byte) (*big.Int, error)
	HoldingAccount() [20]byte
	CreateVestingSchedule(caller [20]byte, beneficiary [20]byte, totalAmount *big.Int, startTime, duration, cliffDuration uint64) (*token.VestingSchedule, error)
}

type Registry interface {
	UpdatePlatformFee(newFeeBps uint32, caller [20]byte) error
	SetFeeRecipient(recipient [20]byte, caller [20]byte) error
}

// Applied reports whether store already carries a genesis.
func Applied(store Store) (bool, error) {
	var ts uint64
	return store.KVGet(appliedKey, &ts)
}

// Apply seeds roles, registry params, balances and vesting schedules in a
// fixed order. Callers are expected to run it inside a single overlay and
// commit only on success.
func Apply(spec *GenesisSpec, store Store, ledger Ledger, registry Registry) error {
	if spec == nil {
		return fmt.Errorf("genesis spec must not be nil")
	}
	if store == nil || ledger == nil || registry == nil {
		return fmt.Errorf("genesis: state, ledger and registry are required")
	}
	applied, err := Applied(store)
	if err != nil {
		return err
	}
	if applied {
		return ErrAlreadyApplied
	}

	// 1) Roles (sorted by role name, accounts in listed order)
	roleNames := make([]string, 0, len(spec.roles))
	for role := range spec.roles {
		roleNames = append(roleNames, role)
	}
	sort.Strings(roleNames)
	for _, role := range roleNames {
		for _, addr := range spec.roles[role] {
			if err := store.SetRole(role, addr[:]); err != nil {
				return fmt.Errorf("grant %s: %w", role, err)
			}
		}
	}
	admin := spec.roles[common.RoleAdministrator][0]

	// 2) Registry params
	if spec.Registry != nil {
		if spec.Registry.FeeBps != nil {
			if err := registry.UpdatePlatformFee(*spec.Registry.FeeBps, admin); err != nil {
				return fmt.Errorf("registry feeBps: %w", err)
			}
		}
		if spec.Registry.feeRecipient != ([20]byte{}) {
			if err := registry.SetFeeRecipient(spec.Registry.feeRecipient, admin); err != nil {
				return fmt.Errorf("registry feeRecipient: %w", err)
			}
		}
	}

	// 3) Allocations (sorted by account bytes)
	accounts := make([][20]byte, 0, len(spec.alloc))
	for addr := range spec.alloc {
		accounts = append(accounts, addr)
	}
	sort.Slice(accounts, func(i, j int) bool {
		return strings.Compare(string(accounts[i][:]), string(accounts[j][:])) < 0
	})
	for _, addr := range accounts {
		if err := ledger.Mint(addr, spec.alloc[addr]); err != nil {
			return fmt.Errorf("alloc %x: %w", addr, err)
		}
	}

	// 4) Holding reserve backs vesting and rewards
	if spec.holdingReserve != nil {
		if err := ledger.Mint(ledger.HoldingAccount(), spec.holdingReserve); err != nil {
			return fmt.Errorf("holdingReserve: %w", err)
		}
	}

	// 5) Vesting
	if len(spec.Vesting) > 0 {
		committed := big.NewInt(0)
		for i := range spec.Vesting {
			committed.Add(committed, spec.Vesting[i].amount)
		}
		held, err := ledger.BalanceOf(ledger.HoldingAccount())
		if err != nil {
			return err
		}
		if held.Cmp(committed) < 0 {
			return fmt.Errorf("vesting: holding balance %s does not cover %s", held, committed)
		}
		genesisUnix := spec.unixTime()
		for i := range spec.Vesting {
			v := &spec.Vesting[i]
			start := genesisUnix
			if v.StartTime != nil {
				start = *v.StartTime
			}
			if _, err := ledger.CreateVestingSchedule(admin, v.beneficiary, v.amount, start, v.Duration, v.CliffDuration); err != nil {
				return fmt.Errorf("vesting[%d]: %w", i, err)
			}
		}
	}

	// 6) Pause flags last so seeding is never blocked by them
	for _, module := range spec.Paused {
		if err := store.SetPaused(strings.TrimSpace(module), true); err != nil {
			return fmt.Errorf("pause %s: %w", module, err)
		}
	}

	return store.KVPut(appliedKey, spec.unixTime())
}

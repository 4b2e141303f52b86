package core

import (
	"bytes"
	"fmt"
	"strings"

	"connectsphere/core/events"
	"connectsphere/native/common"
	"connectsphere/observability"
)

const moduleSystem = "system"

// GrantRole adds account to role. Administrator only; granting a role the
// account already holds is a no-op without an event.
func (n *Node) GrantRole(role string, account, caller [20]byte) error {
	role = strings.TrimSpace(role)
	return n.apply(moduleSystem, "grantRole", caller, func(tx *txn) error {
		if err := common.RequireRole(tx.state, common.RoleAdministrator, caller); err != nil {
			return err
		}
		if !common.KnownRole(role) {
			return fmt.Errorf("%w: %q", common.ErrUnknownRole, role)
		}
		if account == ([20]byte{}) {
			return common.ErrInvalidAccount
		}
		if tx.state.HasRole(role, account[:]) {
			return nil
		}
		if err := tx.state.SetRole(role, account[:]); err != nil {
			return err
		}
		tx.emit(events.RoleChanged{Role: role, Account: account, Admin: caller, Granted: true, Timestamp: tx.now})
		return nil
	})
}

// RevokeRole removes account from role. The last administrator cannot be
// revoked.
func (n *Node) RevokeRole(role string, account, caller [20]byte) error {
	role = strings.TrimSpace(role)
	return n.apply(moduleSystem, "revokeRole", caller, func(tx *txn) error {
		if err := common.RequireRole(tx.state, common.RoleAdministrator, caller); err != nil {
			return err
		}
		if !common.KnownRole(role) {
			return fmt.Errorf("%w: %q", common.ErrUnknownRole, role)
		}
		members, err := tx.state.RoleMembers(role)
		if err != nil {
			return err
		}
		held := false
		for _, member := range members {
			if bytes.Equal(member, account[:]) {
				held = true
				break
			}
		}
		if !held {
			return nil
		}
		if role == common.RoleAdministrator && len(members) == 1 {
			return common.ErrLastAdministrator
		}
		if err := tx.state.RevokeRole(role, account[:]); err != nil {
			return err
		}
		tx.emit(events.RoleChanged{Role: role, Account: account, Admin: caller, Granted: false, Timestamp: tx.now})
		return nil
	})
}

func (n *Node) HasRole(role string, account [20]byte) bool {
	var held bool
	_ = n.view(func(tx *txn) error {
		held = tx.state.HasRole(strings.TrimSpace(role), account[:])
		return nil
	})
	return held
}

// RoleMembers lists the accounts holding role in byte order.
func (n *Node) RoleMembers(role string) ([][20]byte, error) {
	var out [][20]byte
	err := n.view(func(tx *txn) error {
		members, err := tx.state.RoleMembers(strings.TrimSpace(role))
		if err != nil {
			return err
		}
		out = make([][20]byte, 0, len(members))
		for _, member := range members {
			var addr [20]byte
			copy(addr[:], member)
			out = append(out, addr)
		}
		return nil
	})
	return out, err
}

// Pause freezes every mutating entry point of module. Reads stay available.
func (n *Node) Pause(module string, caller [20]byte) error {
	return n.setPaused(module, true, caller)
}

func (n *Node) Unpause(module string, caller [20]byte) error {
	return n.setPaused(module, false, caller)
}

func (n *Node) setPaused(module string, paused bool, caller [20]byte) error {
	module = strings.TrimSpace(module)
	op := "unpause"
	if paused {
		op = "pause"
	}
	err := n.apply(moduleSystem, op, caller, func(tx *txn) error {
		if err := common.RequireRole(tx.state, common.RoleAdministrator, caller); err != nil {
			return err
		}
		if !common.KnownModule(module) {
			return fmt.Errorf("%w: %q", common.ErrUnknownModule, module)
		}
		if tx.state.IsPaused(module) == paused {
			return nil
		}
		if err := tx.state.SetPaused(module, paused); err != nil {
			return err
		}
		tx.emit(events.PauseChanged{Module: module, Paused: paused, Admin: caller, Timestamp: tx.now})
		return nil
	})
	if err == nil {
		observability.Operations().SetPause(module, paused)
	}
	return err
}

func (n *Node) IsPaused(module string) bool {
	paused := true
	_ = n.view(func(tx *txn) error {
		paused = tx.state.IsPaused(strings.TrimSpace(module))
		return nil
	})
	return paused
}

package events

import "connectsphere/core/types"

const (
	TypeRoleGranted   = "system.role.granted"
	TypeRoleRevoked   = "system.role.revoked"
	TypeModulePaused  = "system.module.paused"
	TypeModuleResumed = "system.module.resumed"
)

// RoleChanged records a role grant or revocation.
type RoleChanged struct {
	Role      string
	Account   [20]byte
	Admin     [20]byte
	Granted   bool
	Timestamp int64
}

func (e RoleChanged) EventType() string {
	if e.Granted {
		return TypeRoleGranted
	}
	return TypeRoleRevoked
}

func (e RoleChanged) Event() *types.Event {
	return &types.Event{
		Type: e.EventType(),
		Attributes: map[string]string{
			"role":      e.Role,
			"account":   addr(e.Account),
			"admin":     addr(e.Admin),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

// PauseChanged records a module pause toggle.
type PauseChanged struct {
	Module    string
	Paused    bool
	Admin     [20]byte
	Timestamp int64
}

func (e PauseChanged) EventType() string {
	if e.Paused {
		return TypeModulePaused
	}
	return TypeModuleResumed
}

func (e PauseChanged) Event() *types.Event {
	return &types.Event{
		Type: e.EventType(),
		Attributes: map[string]string{
			"module":    e.Module,
			"admin":     addr(e.Admin),
			"timestamp": intToString(e.Timestamp),
		},
	}
}

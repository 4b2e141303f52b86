package common

import (
	"errors"
	"fmt"
)

// Capabilities are independent; an account may hold any subset.
const (
	RoleAdministrator = "administrator"
	RoleModerator     = "moderator"
	RoleValidator     = "validator"
)

var (
	ErrUnauthorized      = errors.New("caller lacks required role")
	ErrUnknownRole       = errors.New("unknown role")
	ErrLastAdministrator = errors.New("cannot revoke the last administrator")
	ErrInvalidAccount    = errors.New("account must not be zero")
)

type RoleView interface {
	HasRole(role string, addr []byte) bool
}

// RequireRole fails unless caller holds role.
func RequireRole(v RoleView, role string, caller [20]byte) error {
	if v == nil || !v.HasRole(role, caller[:]) {
		return fmt.Errorf("%w: %s", ErrUnauthorized, role)
	}
	return nil
}

func KnownRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleModerator, RoleValidator:
		return true
	default:
		return false
	}
}

package common

import (
	"errors"
	"testing"
)

type pauseStub map[string]bool

func (p pauseStub) IsPaused(module string) bool { return p[module] }

type roleStub map[string][20]byte

func (r roleStub) HasRole(role string, addr []byte) bool {
	member, ok := r[role]
	return ok && string(member[:]) == string(addr)
}

func TestGuard(t *testing.T) {
	view := pauseStub{ModuleContent: true}
	if err := Guard(view, ModuleContent); !errors.Is(err, ErrModulePaused) {
		t.Fatalf("expected paused error, got %v", err)
	}
	if err := Guard(view, ModuleToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Guard(nil, ModuleContent); err != nil {
		t.Fatalf("nil view must not block: %v", err)
	}
}

func TestRequireRole(t *testing.T) {
	var admin, other [20]byte
	admin[19] = 1
	other[19] = 2
	view := roleStub{RoleAdministrator: admin}

	if err := RequireRole(view, RoleAdministrator, admin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RequireRole(view, RoleAdministrator, other); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := RequireRole(view, RoleModerator, admin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("roles must not be hierarchical, got %v", err)
	}
	if err := RequireRole(nil, RoleModerator, admin); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("nil view must fail closed, got %v", err)
	}
	if KnownRole("owner") || !KnownRole(RoleValidator) {
		t.Fatalf("unexpected role classification")
	}
}

package common

import "errors"

var (
	ErrModulePaused  = errors.New("module paused")
	ErrUnknownModule = errors.New("unknown module")
)

const (
	ModuleToken   = "token"
	ModuleContent = "content"
)

type PauseView interface {
	IsPaused(module string) bool
}

func Guard(p PauseView, module string) error {
	if p == nil || module == "" {
		return nil
	}
	if p.IsPaused(module) {
		return ErrModulePaused
	}
	return nil
}

// KnownModule reports whether the module name can be paused.
func KnownModule(module string) bool {
	switch module {
	case ModuleToken, ModuleContent:
		return true
	default:
		return false
	}
}

package hotkey

import (
	"github.com/pkg/errors"
)

// Registrar binds key combinations to callbacks with the OS
type Registrar interface {
	// Register binds combo to fn. fn runs on a goroutine owned by the
	// registrar each time the combination is pressed.
	Register(combo string, fn func()) error

	// UnregisterAll releases every binding. It does not wait for running
	// callbacks or for key events.
	UnregisterAll() error
}

// ErrUnsupported is returned when the platform has no global hotkey support
var ErrUnsupported = errors.New("global hotkeys are not supported on this platform")

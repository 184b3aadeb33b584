//go:build windows

package detector

import (
	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/integrations/win32"
	"github.com/quickshot/quickshot/pkg/window"
)

// New returns the user32 locator
func New() (window.Locator, error) {
	l := win32.NewLocator()
	if !l.IsAvailable() {
		return nil, errors.New("user32 window functions unavailable")
	}
	return l, nil
}

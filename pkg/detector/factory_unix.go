//go:build !windows

package detector

import (
	"github.com/quickshot/quickshot/pkg/integrations/hybrid"
	"github.com/quickshot/quickshot/pkg/window"
)

// New returns the Wayland/X11 locator chain for the current session
func New() (window.Locator, error) {
	return hybrid.NewLocator()
}

//go:build darwin

package global

import qhotkey "github.com/quickshot/quickshot/internal/hotkey"

// Registrar reports every registration as unsupported; captures on macOS
// go through the tray menu.
type Registrar struct{}

func NewRegistrar() *Registrar {
	return &Registrar{}
}

func (r *Registrar) Register(string, func()) error {
	return qhotkey.ErrUnsupported
}

func (r *Registrar) UnregisterAll() error {
	return nil
}

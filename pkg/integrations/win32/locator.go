//go:build windows

// Package win32 locates and copies the foreground window through user32 and
// gdi32.
package win32

import (
	"log"
	"sync"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/window"
)

// Locator implements window.Locator for Windows
type Locator struct {
	dpiOnce sync.Once
}

// NewLocator creates a new Win32 locator
func NewLocator() *Locator {
	return &Locator{}
}

// IsAvailable reports whether user32 exports the calls the locator needs
func (l *Locator) IsAvailable() bool {
	return procGetForegroundWindow.Find() == nil && procGetWindowRect.Find() == nil
}

// GetDisplayServer returns "win32"
func (l *Locator) GetDisplayServer() string {
	return "win32"
}

// ActiveWindow returns the foreground window. The process is declared
// DPI-aware before the first query so the rectangle is in physical pixels
// and matches the bitmap sizes produced by GDI.
func (l *Locator) ActiveWindow() (*window.WindowInfo, error) {
	l.dpiOnce.Do(func() {
		if err := setProcessDPIAware(); err != nil {
			log.Printf("SetProcessDPIAware failed: %v", err)
		}
	})

	hwnd := getForegroundWindow()
	if hwnd == 0 {
		return nil, nil
	}

	r, err := getWindowRect(hwnd)
	if err != nil {
		return nil, errors.Wrapf(err, "GetWindowRect failed for window 0x%x", uintptr(hwnd))
	}

	return &window.WindowInfo{
		ID:    uint64(hwnd),
		Title: getWindowText(hwnd),
		Rect: window.Rect{
			Left:   int(r.Left),
			Top:    int(r.Top),
			Right:  int(r.Right),
			Bottom: int(r.Bottom),
		},
		DisplayServer: "win32",
	}, nil
}

// Close is a no-op
func (l *Locator) Close() error {
	return nil
}

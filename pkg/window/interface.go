package window

import (
	"fmt"
	"image"
)

// Rect is a window rectangle in physical screen pixels.
// Left/Top are inclusive, Right/Bottom exclusive.
type Rect struct {
	Left   int
	Top    int
	Right  int
	Bottom int
}

// Width returns Right-Left
func (r Rect) Width() int {
	return r.Right - r.Left
}

// Height returns Bottom-Top
func (r Rect) Height() int {
	return r.Bottom - r.Top
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

// Bounds converts the rectangle to an image.Rectangle in screen space.
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d, %d, %d, %d) %dx%d", r.Left, r.Top, r.Right, r.Bottom, r.Width(), r.Height())
}

// WindowInfo represents the currently focused window
type WindowInfo struct {
	ID            uint64 // native handle (X11 window id, HWND, compositor id)
	Title         string
	Rect          Rect
	DisplayServer string // "x11", "wayland" or "win32"
}

// Locator is the interface that all active window lookups must satisfy
type Locator interface {
	// ActiveWindow returns the window currently holding input focus.
	// It returns nil, nil when no window has focus.
	ActiveWindow() (*WindowInfo, error)

	// IsAvailable checks if this locator can run on the current system
	IsAvailable() bool

	// GetDisplayServer returns the display server type
	GetDisplayServer() string

	// Close cleans up any resources used by the locator
	Close() error
}

// ActiveWindowRect returns the bounding rectangle of the focused window, or
// nil when no window has focus.
func ActiveWindowRect(l Locator) (*Rect, error) {
	info, err := l.ActiveWindow()
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, nil
	}
	rect := info.Rect
	return &rect, nil
}

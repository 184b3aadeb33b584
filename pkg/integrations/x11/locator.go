package x11

import (
	"sync"

	"github.com/jezek/xgb/xproto"
	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/window"
)

// Locator implements window.Locator for X11
type Locator struct {
	mu      sync.Mutex
	client  *client
	connErr error
}

// NewLocator creates a new X11 locator. A failed connection leaves the
// locator unavailable rather than returning an error.
func NewLocator() *Locator {
	l := &Locator{}
	l.client, l.connErr = newClient()
	return l
}

// IsAvailable checks if an X server connection is open
func (l *Locator) IsAvailable() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.client != nil
}

// GetDisplayServer returns "x11"
func (l *Locator) GetDisplayServer() string {
	return "x11"
}

// ActiveWindow returns the focused top-level window and its root-relative
// geometry. X11 always reports physical pixels, so no DPI setup is needed.
func (l *Locator) ActiveWindow() (*window.WindowInfo, error) {
	c, err := l.conn()
	if err != nil {
		return nil, err
	}

	win := c.activeWindow()
	if win == 0 {
		return nil, nil
	}

	rect, err := c.windowRect(win)
	if err != nil {
		return nil, err
	}

	return &window.WindowInfo{
		ID:            uint64(win),
		Title:         c.windowName(win),
		Rect:          rect,
		DisplayServer: "x11",
	}, nil
}

func (l *Locator) conn() (*client, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client == nil {
		if l.connErr != nil {
			return nil, l.connErr
		}
		return nil, errors.New("x11 locator is closed")
	}
	return l.client, nil
}

func (c *client) windowRect(win xproto.Window) (window.Rect, error) {
	geom, err := xproto.GetGeometry(c.conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return window.Rect{}, errors.Wrapf(err, "failed to get geometry of window 0x%x", uint32(win))
	}

	origin, err := xproto.TranslateCoordinates(c.conn, win, c.root, 0, 0).Reply()
	if err != nil {
		return window.Rect{}, errors.Wrapf(err, "failed to translate coordinates of window 0x%x", uint32(win))
	}

	left := int(origin.DstX)
	top := int(origin.DstY)
	return window.Rect{
		Left:   left,
		Top:    top,
		Right:  left + int(geom.Width),
		Bottom: top + int(geom.Height),
	}, nil
}

// Close releases the X server connection
func (l *Locator) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.client != nil {
		l.client.close()
		l.client = nil
	}
	return nil
}

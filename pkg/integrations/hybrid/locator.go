package hybrid

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/capture"
	"github.com/quickshot/quickshot/pkg/integrations/wayland"
	"github.com/quickshot/quickshot/pkg/integrations/x11"
	"github.com/quickshot/quickshot/pkg/window"
)

// Locator chains the Wayland and X11 locators. On a Wayland session the
// compositor is asked first and XWayland answers when it cannot.
type Locator struct {
	locators   []window.Locator
	lastMethod atomic.Value // string
}

// NewLocator builds the chain from the session environment
func NewLocator() (*Locator, error) {
	var locators []window.Locator

	if os.Getenv("WAYLAND_DISPLAY") != "" || os.Getenv("XDG_SESSION_TYPE") == "wayland" {
		if l := wayland.NewLocator(); l.IsAvailable() {
			locators = append(locators, l)
		} else {
			log.Printf("Wayland compositor %q not supported, trying XWayland", l.Compositor())
		}
	}

	if os.Getenv("DISPLAY") != "" {
		l := x11.NewLocator()
		if l.IsAvailable() {
			locators = append(locators, l)
		} else {
			l.Close()
		}
	}

	if len(locators) == 0 {
		return nil, errors.New("no usable display server found")
	}
	return NewChain(locators...), nil
}

// NewChain returns a Locator that asks each locator in order
func NewChain(locators ...window.Locator) *Locator {
	for _, l := range locators {
		log.Printf("Window locator initialized: %s", l.GetDisplayServer())
	}
	return &Locator{locators: locators}
}

// ActiveWindow returns the first answer that is not an error. A locator
// reporting no focused window is an answer.
func (h *Locator) ActiveWindow() (*window.WindowInfo, error) {
	var failures []string
	for _, l := range h.locators {
		if !l.IsAvailable() {
			continue
		}
		info, err := l.ActiveWindow()
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", l.GetDisplayServer(), err))
			continue
		}
		h.lastMethod.Store(l.GetDisplayServer())
		return info, nil
	}

	if len(failures) == 0 {
		return nil, errors.New("no window locator available")
	}
	return nil, errors.Errorf("all window locators failed: %s", strings.Join(failures, "; "))
}

// CopyWindow hands the copy to the locator that found the window. Windows
// found through a compositor IPC tool cannot be copied directly.
func (h *Locator) CopyWindow(ctx context.Context, info *window.WindowInfo) (image.Image, error) {
	for _, l := range h.locators {
		if l.GetDisplayServer() != info.DisplayServer {
			continue
		}
		if c, ok := l.(capture.WindowCopier); ok {
			return c.CopyWindow(ctx, info)
		}
	}
	return nil, errors.Errorf("direct copy not supported for %s windows", info.DisplayServer)
}

func (h *Locator) IsAvailable() bool {
	for _, l := range h.locators {
		if l.IsAvailable() {
			return true
		}
	}
	return false
}

// GetDisplayServer reports the locator that last answered, or the first
// member before any query
func (h *Locator) GetDisplayServer() string {
	if last := h.last(); last != "" {
		return last
	}
	if len(h.locators) > 0 {
		return h.locators[0].GetDisplayServer()
	}
	return "unknown"
}

// GetStatus describes the chain for the status command
func (h *Locator) GetStatus() string {
	var b strings.Builder
	b.WriteString("Window locators:\n")
	for _, l := range h.locators {
		fmt.Fprintf(&b, "  %s (available: %v)\n", l.GetDisplayServer(), l.IsAvailable())
	}
	fmt.Fprintf(&b, "  Last successful method: %s\n", h.last())
	return b.String()
}

func (h *Locator) last() string {
	s, _ := h.lastMethod.Load().(string)
	return s
}

func (h *Locator) Close() error {
	for _, l := range h.locators {
		if err := l.Close(); err != nil {
			log.Printf("Error closing %s locator: %v", l.GetDisplayServer(), err)
		}
	}
	return nil
}

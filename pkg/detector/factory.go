package detector

import (
	"os"
	"runtime"

	"github.com/quickshot/quickshot/pkg/capture"
	"github.com/quickshot/quickshot/pkg/window"
)

// NewEngine builds the platform locator and a capture engine over it
func NewEngine() (*capture.Engine, error) {
	locator, err := New()
	if err != nil {
		return nil, err
	}
	return EngineFor(locator), nil
}

// EngineFor wraps a locator with the default strategy chain
func EngineFor(locator window.Locator) *capture.Engine {
	return capture.NewEngine(locator, capture.Chain(locator)...)
}

// Status describes how the locator finds windows. Locators that do not
// report on themselves are described by their display server.
func Status(locator window.Locator) string {
	if s, ok := locator.(interface{ GetStatus() string }); ok {
		return s.GetStatus()
	}
	return "Window locator: " + locator.GetDisplayServer() + "\n"
}

func DetectDisplayServer() string {
	if runtime.GOOS == "windows" {
		return "win32"
	}

	sessionType := os.Getenv("XDG_SESSION_TYPE")
	waylandDisplay := os.Getenv("WAYLAND_DISPLAY")
	x11Display := os.Getenv("DISPLAY")

	if sessionType == "wayland" || waylandDisplay != "" {
		return "wayland"
	}

	if sessionType == "x11" || x11Display != "" {
		return "x11"
	}

	return "unknown"
}

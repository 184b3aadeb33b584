//go:build windows

package win32

import (
	"context"
	"testing"

	"github.com/quickshot/quickshot/pkg/window"
)

func TestLocatorInterface(t *testing.T) {
	var _ window.Locator = (*Locator)(nil)
}

func TestGetDisplayServer(t *testing.T) {
	if got := NewLocator().GetDisplayServer(); got != "win32" {
		t.Errorf("GetDisplayServer() = %s, want win32", got)
	}
}

func TestActiveWindow(t *testing.T) {
	locator := NewLocator()
	if !locator.IsAvailable() {
		t.Skip("user32 not available")
	}

	info, err := locator.ActiveWindow()
	if err != nil {
		t.Logf("ActiveWindow() error (may be expected): %v", err)
		return
	}
	if info == nil {
		t.Skip("no foreground window (non-interactive session)")
	}
	t.Logf("Window: 0x%x %q %s", info.ID, info.Title, info.Rect)

	if info.Rect.Empty() {
		return
	}

	img, err := locator.CopyWindow(context.Background(), info)
	if err != nil {
		t.Logf("CopyWindow() error (may be expected): %v", err)
		return
	}
	if img.Bounds().Dx() != info.Rect.Width() || img.Bounds().Dy() != info.Rect.Height() {
		t.Errorf("CopyWindow() size = %v, want %dx%d", img.Bounds(), info.Rect.Width(), info.Rect.Height())
	}
}

func TestCopyWindowRejectsMissingHandle(t *testing.T) {
	_, err := NewLocator().CopyWindow(context.Background(), &window.WindowInfo{Rect: window.Rect{Right: 10, Bottom: 10}})
	if err == nil {
		t.Error("CopyWindow() without a handle returned nil error")
	}
}

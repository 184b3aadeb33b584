package x11

import (
	"context"
	"testing"

	"github.com/jezek/xgb/xproto"

	"github.com/quickshot/quickshot/pkg/window"
)

func TestNewLocator(t *testing.T) {
	locator := NewLocator()
	if locator == nil {
		t.Fatal("NewLocator() returned nil")
	}
	defer locator.Close()

	t.Logf("X11 locator available: %v", locator.IsAvailable())
	if !locator.IsAvailable() {
		t.Logf("Connection error: %v", locator.connErr)
	}
}

func TestGetDisplayServer(t *testing.T) {
	locator := &Locator{}
	if got := locator.GetDisplayServer(); got != "x11" {
		t.Errorf("GetDisplayServer() = %s, want %s", got, "x11")
	}
}

func TestActiveWindow(t *testing.T) {
	locator := NewLocator()
	defer locator.Close()

	if !locator.IsAvailable() {
		t.Skip("X11 display not available on this system")
	}

	info, err := locator.ActiveWindow()
	if err != nil {
		t.Logf("ActiveWindow() error (may be expected): %v", err)
		return
	}
	if info == nil {
		t.Log("No window has focus")
		return
	}

	t.Logf("Window: 0x%x %q %s", info.ID, info.Title, info.Rect)

	if info.DisplayServer != "x11" {
		t.Errorf("DisplayServer = %s, want x11", info.DisplayServer)
	}
	if info.Rect.Width() < 0 || info.Rect.Height() < 0 {
		t.Errorf("negative geometry: %s", info.Rect)
	}

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

func TestActiveWindowAfterClose(t *testing.T) {
	locator := NewLocator()
	if err := locator.Close(); err != nil {
		t.Fatalf("Close() returned error: %v", err)
	}
	if locator.IsAvailable() {
		t.Error("IsAvailable() = true after Close()")
	}
	if _, err := locator.ActiveWindow(); err == nil {
		t.Error("ActiveWindow() after Close() returned nil error")
	}
}

func TestCopyWindowRejectsEmptyGeometry(t *testing.T) {
	locator := NewLocator()
	defer locator.Close()

	if !locator.IsAvailable() {
		t.Skip("X11 display not available on this system")
	}

	_, err := locator.CopyWindow(context.Background(), &window.WindowInfo{ID: 1, Rect: window.Rect{Left: 5, Right: 5, Bottom: 10}})
	if err == nil {
		t.Error("CopyWindow() with empty rect returned nil error")
	}
}

func TestDecodeWindowID(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected xproto.Window
	}{
		{
			name:     "Little endian id",
			input:    []byte{0x07, 0x00, 0xa0, 0x02},
			expected: xproto.Window(0x2a00007),
		},
		{
			name:     "Zero",
			input:    []byte{0, 0, 0, 0},
			expected: 0,
		},
		{
			name:     "Short",
			input:    []byte{0x01, 0x02},
			expected: 0,
		},
		{
			name:     "Empty",
			input:    nil,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodeWindowID(tt.input); got != tt.expected {
				t.Errorf("decodeWindowID(%v) = 0x%x, want 0x%x", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLocatorInterface(t *testing.T) {
	var _ window.Locator = (*Locator)(nil)
}

// Package tray shows the status-area icon and its menu.
package tray

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"github.com/getlantern/systray"
	"github.com/pkg/errors"
)

// ErrUnavailable means no tray host could show the icon
var ErrUnavailable = errors.New("system tray unavailable")

// Callbacks are invoked from the tray's menu goroutine
type Callbacks struct {
	OnCapture    func()
	OnOpenFolder func()
	OnExit       func()
}

// Tray runs the systray loop with the capture, open folder and exit items
type Tray struct {
	Title   string
	Tooltip string
	// Hotkey returns the capture combo shown in the menu label
	Hotkey func() string

	callbacks Callbacks
	available func() bool

	running  atomic.Bool
	stopped  atomic.Bool
	quitOnce sync.Once
	menuDone chan struct{}
}

// New creates a tray. It does nothing until Run.
func New(tooltip string, hotkey func() string, cb Callbacks) *Tray {
	return &Tray{
		Title:     "quickshot",
		Tooltip:   tooltip,
		Hotkey:    hotkey,
		callbacks: cb,
		available: hostAvailable,
		menuDone:  make(chan struct{}),
	}
}

// CaptureLabel is the capture menu item text
func (t *Tray) CaptureLabel() string {
	if t.Hotkey != nil {
		if combo := t.Hotkey(); combo != "" {
			return fmt.Sprintf("Capture active window (%s)", combo)
		}
	}
	return "Capture active window"
}

// Run blocks on the calling goroutine until Stop. It returns ErrUnavailable
// when there is no tray host or the tray loop panics.
func (t *Tray) Run() (err error) {
	if !t.available() {
		return ErrUnavailable
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Tray loop panicked: %v", r)
			err = errors.Wrapf(ErrUnavailable, "tray loop panicked: %v", r)
		}
		t.running.Store(false)
	}()

	t.running.Store(true)
	if t.stopped.Load() {
		return nil
	}
	systray.Run(t.onReady, t.onExit)
	return nil
}

// Stop quits the tray loop. It is a no-op when the tray is not running.
func (t *Tray) Stop() error {
	t.stopped.Store(true)
	if !t.running.Load() {
		return nil
	}
	t.quitOnce.Do(systray.Quit)
	return nil
}

// Running reports whether the tray loop is active
func (t *Tray) Running() bool {
	return t.running.Load()
}

func (t *Tray) onReady() {
	systray.SetIcon(Icon())
	systray.SetTitle(t.Title)
	systray.SetTooltip(t.Tooltip)

	mCapture := systray.AddMenuItem(t.CaptureLabel(), "Save a screenshot of the focused window")
	mOpen := systray.AddMenuItem("Open screenshots folder", "Show the save folder")
	systray.AddSeparator()
	mExit := systray.AddMenuItem("Exit", "Stop the screenshot service")

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				call(t.callbacks.OnCapture)
			case <-mOpen.ClickedCh:
				call(t.callbacks.OnOpenFolder)
			case <-mExit.ClickedCh:
				call(t.callbacks.OnExit)
			case <-t.menuDone:
				return
			}
		}
	}()
}

func (t *Tray) onExit() {
	close(t.menuDone)
}

func call(fn func()) {
	if fn != nil {
		fn()
	}
}

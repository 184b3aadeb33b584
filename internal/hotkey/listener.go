// Package hotkey registers the global capture and exit hotkeys and keeps a
// cancellable listener alive while the service runs.
package hotkey

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultPollInterval is the listener's idle tick
const DefaultPollInterval = 500 * time.Millisecond

var (
	// DefaultPrimary are the capture combos tried first, in order
	DefaultPrimary = []string{"alt+print screen", "alt+printscreen", "alt+prtsc"}

	// DefaultAlternative are tried when no primary combo can be registered
	DefaultAlternative = []string{"ctrl+alt+a", "f11", "ctrl+f11"}

	// DefaultExit quits the service
	DefaultExit = "ctrl+alt+q"
)

// Options configures a Listener
type Options struct {
	Primary      []string
	Alternative  []string
	Exit         string
	OnCapture    func()
	OnExit       func()
	PollInterval time.Duration
}

// Listener registers the hotkeys and idles until cancelled
type Listener struct {
	registrar Registrar
	opts      Options

	once           sync.Once
	registered     atomic.Value // string
	exitRegistered atomic.Bool
}

// NewListener creates a listener. Empty combo lists fall back to the defaults.
func NewListener(registrar Registrar, opts Options) *Listener {
	if opts.Primary == nil {
		opts.Primary = DefaultPrimary
	}
	if opts.Alternative == nil {
		opts.Alternative = DefaultAlternative
	}
	if opts.Exit == "" {
		opts.Exit = DefaultExit
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	l := &Listener{registrar: registrar, opts: opts}
	l.registered.Store("")
	return l
}

// Register performs the registrations once. The first primary combo that
// registers wins; the alternatives are only tried when every primary fails.
// The exit combo is always attempted.
func (l *Listener) Register() {
	l.once.Do(l.register)
}

func (l *Listener) register() {
	combo := l.registerFirst("primary", l.opts.Primary, l.opts.OnCapture)
	if combo == "" {
		combo = l.registerFirst("alternative", l.opts.Alternative, l.opts.OnCapture)
	}
	l.registered.Store(combo)
	if combo == "" {
		log.Println("No capture hotkey could be registered; use the tray menu to capture")
	} else {
		log.Printf("Capture hotkey registered: %s", combo)
	}

	if err := l.registrar.Register(l.opts.Exit, l.opts.OnExit); err != nil {
		log.Printf("Failed to register exit hotkey %s: %v", l.opts.Exit, err)
	} else {
		l.exitRegistered.Store(true)
		log.Printf("Exit hotkey registered: %s", l.opts.Exit)
	}
}

func (l *Listener) registerFirst(kind string, combos []string, fn func()) string {
	for _, combo := range combos {
		if err := l.registrar.Register(combo, fn); err != nil {
			log.Printf("Failed to register %s hotkey %s: %v", kind, combo, err)
			continue
		}
		return combo
	}
	return ""
}

// Run registers the hotkeys and blocks until ctx is cancelled
func (l *Listener) Run(ctx context.Context) error {
	l.Register()

	ticker := time.NewTicker(l.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Registered returns the capture combo in use, or "" if none
func (l *Listener) Registered() string {
	return l.registered.Load().(string)
}

// ExitRegistered reports whether the exit combo is bound
func (l *Listener) ExitRegistered() bool {
	return l.exitRegistered.Load()
}

// Summary describes the bindings for the startup banner
func (l *Listener) Summary() string {
	var lines []string
	if combo := l.Registered(); combo != "" {
		lines = append(lines, fmt.Sprintf("Capture: %s", combo))
	} else {
		lines = append(lines, "Capture: tray menu only")
	}
	if l.ExitRegistered() {
		lines = append(lines, fmt.Sprintf("Exit: %s", l.opts.Exit))
	}
	return strings.Join(lines, "\n")
}

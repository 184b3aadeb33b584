// Package notify shows desktop notifications and falls back to the console
// when no notification service answers.
package notify

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

// DefaultTimeout bounds a single backend delivery
const DefaultTimeout = 2 * time.Second

// Notifier shows a short message to the user. It never fails.
type Notifier interface {
	Notify(title, message string)
}

// Backend delivers a notification through an OS service
type Backend interface {
	Send(ctx context.Context, title, message string) error
	Name() string
}

// Sink sends through its backend and prints a console line when the backend
// is missing, errors or does not answer within Timeout.
type Sink struct {
	Backend Backend
	Timeout time.Duration
	Out     io.Writer
}

// NewSink creates a sink with the platform backend. With enabled false, or
// when the platform backend cannot be set up, only the console is used.
func NewSink(appName string, timeout time.Duration, enabled bool) *Sink {
	s := &Sink{Timeout: timeout, Out: os.Stdout}
	if !enabled {
		return s
	}

	backend, err := newPlatformBackend(appName, timeout)
	if err != nil {
		log.Printf("Desktop notifications unavailable: %v", err)
		return s
	}
	s.Backend = backend
	return s
}

// Notify implements Notifier
func (s *Sink) Notify(title, message string) {
	if s.Backend != nil {
		err := s.send(title, message)
		if err == nil {
			return
		}
		log.Printf("Notification via %s failed: %v", s.Backend.Name(), err)
	}
	s.console(title, message)
}

func (s *Sink) send(title, message string) error {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- s.Backend.Send(ctx, title, message)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Sink) console(title, message string) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "💡 %s: %s\n", title, message)
}

// Close releases the backend connection, if any
func (s *Sink) Close() error {
	if c, ok := s.Backend.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Package capture turns the focused window into an image by running an
// ordered chain of capture strategies, falling back on each failure.
package capture

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/window"
)

var (
	// ErrNoActiveWindow means no window holds input focus.
	ErrNoActiveWindow = errors.New("no active window")

	// ErrEmptyRect means the focused window has a zero-area rectangle.
	ErrEmptyRect = errors.New("active window has an empty rectangle")

	// ErrAllStrategiesFailed means every strategy errored or returned nothing.
	ErrAllStrategiesFailed = errors.New("all capture strategies failed")
)

// Result is a successful capture.
type Result struct {
	Image    image.Image
	Window   window.WindowInfo
	Strategy string
}

// Engine locates the active window and captures it.
type Engine struct {
	locator    window.Locator
	strategies []Strategy
}

// NewEngine creates an engine that tries strategies in the given order.
func NewEngine(locator window.Locator, strategies ...Strategy) *Engine {
	return &Engine{
		locator:    locator,
		strategies: strategies,
	}
}

// Locator returns the engine's window locator.
func (e *Engine) Locator() window.Locator {
	return e.locator
}

// Strategies returns the strategy names in priority order.
func (e *Engine) Strategies() []string {
	names := make([]string, 0, len(e.strategies))
	for _, s := range e.strategies {
		names = append(names, s.Name())
	}
	return names
}

// CaptureActiveWindow locates the focused window and runs the strategy chain
// against it. No strategy runs when there is no usable window.
func (e *Engine) CaptureActiveWindow(ctx context.Context) (*Result, error) {
	info, err := e.locator.ActiveWindow()
	if err != nil {
		return nil, errors.Wrap(err, "failed to locate active window")
	}
	if info == nil {
		return nil, ErrNoActiveWindow
	}
	return e.CaptureWindow(ctx, info)
}

// CaptureWindow runs the strategy chain against an already located window.
func (e *Engine) CaptureWindow(ctx context.Context, info *window.WindowInfo) (*Result, error) {
	if info.Rect.Empty() {
		return nil, errors.Wrapf(ErrEmptyRect, "window %q %s", info.Title, info.Rect)
	}

	log.Printf("Window rect: %s", info.Rect)

	lastErr := errors.New("no capture strategies configured")
	for _, strategy := range e.strategies {
		img, err := runStrategy(ctx, strategy, info)
		if err != nil {
			log.Printf("Capture strategy %s failed: %v", strategy.Name(), err)
			lastErr = err
			continue
		}
		return &Result{
			Image:    img,
			Window:   *info,
			Strategy: strategy.Name(),
		}, nil
	}

	return nil, errors.Wrapf(ErrAllStrategiesFailed, "last error: %v", lastErr)
}

func runStrategy(ctx context.Context, strategy Strategy, info *window.WindowInfo) (img image.Image, err error) {
	defer func() {
		if r := recover(); r != nil {
			img = nil
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	img, err = strategy.Capture(ctx, info)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New("returned no image")
	}
	if b := img.Bounds(); b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.Errorf("returned an empty image %v", b)
	}
	return img, nil
}

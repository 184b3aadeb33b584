package capture

import (
	"context"
	"image"

	"github.com/kbinani/screenshot"
	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/pkg/window"
)

const (
	StrategyDirect         = "direct"
	StrategyRegion         = "region"
	StrategyRegionFallback = "region-fallback"
)

// Strategy produces the pixels of a located window.
type Strategy interface {
	Name() string
	Capture(ctx context.Context, info *window.WindowInfo) (image.Image, error)
}

type funcStrategy struct {
	name string
	fn   func(context.Context, *window.WindowInfo) (image.Image, error)
}

// StrategyFunc adapts a plain function to a named Strategy.
func StrategyFunc(name string, fn func(context.Context, *window.WindowInfo) (image.Image, error)) Strategy {
	return &funcStrategy{name: name, fn: fn}
}

func (s *funcStrategy) Name() string {
	return s.name
}

func (s *funcStrategy) Capture(ctx context.Context, info *window.WindowInfo) (image.Image, error) {
	return s.fn(ctx, info)
}

// WindowCopier reads a window's own pixels without going through the
// composed screen.
type WindowCopier interface {
	CopyWindow(ctx context.Context, info *window.WindowInfo) (image.Image, error)
}

// DirectStrategy wraps a WindowCopier as the "direct" strategy.
func DirectStrategy(c WindowCopier) Strategy {
	return StrategyFunc(StrategyDirect, c.CopyWindow)
}

// Chain returns the default order: a direct copy when the locator can do
// one, then the region captures.
func Chain(locator window.Locator) []Strategy {
	var strategies []Strategy
	if c, ok := locator.(WindowCopier); ok {
		strategies = append(strategies, DirectStrategy(c))
	}
	return append(strategies, RegionStrategies()...)
}

// RegionGrabber returns whatever is on screen inside bounds.
type RegionGrabber func(bounds image.Rectangle) (*image.RGBA, error)

// ScreenRegion grabs screen pixels through kbinani/screenshot.
func ScreenRegion(bounds image.Rectangle) (*image.RGBA, error) {
	return screenshot.CaptureRect(bounds)
}

// NewRegionStrategy captures the on-screen contents of the window rectangle,
// including anything overlapping it. grab defaults to ScreenRegion.
func NewRegionStrategy(name string, grab RegionGrabber) Strategy {
	if grab == nil {
		grab = ScreenRegion
	}
	return StrategyFunc(name, func(ctx context.Context, info *window.WindowInfo) (image.Image, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img, err := grab(info.Rect.Bounds())
		if err != nil {
			return nil, errors.Wrapf(err, "region capture of %s failed", info.Rect)
		}
		if img == nil {
			return nil, nil
		}
		return img, nil
	})
}

// RegionStrategies returns the region capture and its terminal fallback.
func RegionStrategies() []Strategy {
	return []Strategy{
		NewRegionStrategy(StrategyRegion, nil),
		NewRegionStrategy(StrategyRegionFallback, nil),
	}
}

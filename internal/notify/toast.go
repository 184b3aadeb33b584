//go:build windows

package notify

import (
	"context"
	"time"

	"github.com/go-toast/toast"
	"github.com/pkg/errors"
)

// ToastBackend pushes Windows toast notifications
type ToastBackend struct {
	AppName string
}

func newPlatformBackend(appName string, _ time.Duration) (Backend, error) {
	return &ToastBackend{AppName: appName}, nil
}

func (b *ToastBackend) Name() string {
	return "toast"
}

// Send pushes the toast. Push shells out to PowerShell and cannot be
// cancelled; the sink stops waiting for it at the deadline.
func (b *ToastBackend) Send(ctx context.Context, title, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n := toast.Notification{
		AppID:    b.AppName,
		Title:    title,
		Message:  message,
		Audio:    toast.Silent,
		Duration: toast.Short,
	}
	if err := n.Push(); err != nil {
		return errors.Wrap(err, "toast push failed")
	}
	return nil
}

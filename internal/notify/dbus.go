//go:build !windows

package notify

import (
	"context"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"github.com/pkg/errors"
)

const (
	notificationsDest = "org.freedesktop.Notifications"
	notificationsPath = dbus.ObjectPath("/org/freedesktop/Notifications")
	notifyMethod      = notificationsDest + ".Notify"
)

// DBusBackend talks to org.freedesktop.Notifications on the session bus
type DBusBackend struct {
	AppName string
	Expire  time.Duration

	mu   sync.Mutex
	conn *dbus.Conn
}

func newPlatformBackend(appName string, timeout time.Duration) (Backend, error) {
	b := &DBusBackend{AppName: appName, Expire: timeout}
	if _, err := b.connection(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *DBusBackend) Name() string {
	return "dbus"
}

func (b *DBusBackend) connection() (*dbus.Conn, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn != nil && b.conn.Connected() {
		return b.conn, nil
	}
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to session bus")
	}
	b.conn = conn
	return conn, nil
}

// Send shows a notification that expires after Expire
func (b *DBusBackend) Send(ctx context.Context, title, message string) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	obj := conn.Object(notificationsDest, notificationsPath)
	call := obj.CallWithContext(ctx, notifyMethod, 0,
		b.AppName,
		uint32(0),
		"",
		title,
		message,
		[]string{},
		map[string]dbus.Variant{},
		int32(b.Expire/time.Millisecond),
	)
	if call.Err != nil {
		return errors.Wrap(call.Err, "Notify call failed")
	}
	return nil
}

func (b *DBusBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.conn == nil {
		return nil
	}
	err := b.conn.Close()
	b.conn = nil
	return err
}

//go:build !windows && !darwin

package tray

import (
	"log"
	"os"

	"github.com/godbus/dbus/v5"
)

const statusNotifierWatcher = "org.kde.StatusNotifierWatcher"

// hostAvailable reports whether a tray host can show the icon: a
// StatusNotifierItem watcher on the session bus, or an X11 display for the
// XEmbed tray.
func hostAvailable() bool {
	if watcherRunning() {
		return true
	}
	return os.Getenv("DISPLAY") != ""
}

func watcherRunning() bool {
	conn, err := dbus.SessionBusPrivate()
	if err != nil {
		return false
	}
	defer conn.Close()

	if err := conn.Auth(nil); err != nil {
		return false
	}
	if err := conn.Hello(); err != nil {
		return false
	}

	var owned bool
	if err := conn.BusObject().Call("org.freedesktop.DBus.NameHasOwner", 0, statusNotifierWatcher).Store(&owned); err != nil {
		log.Printf("Tray host check failed: %v", err)
		return false
	}
	return owned
}

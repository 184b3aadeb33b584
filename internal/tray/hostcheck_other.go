//go:build windows || darwin

package tray

func hostAvailable() bool {
	return true
}

package tray

import (
	"os/exec"
	"runtime"

	"github.com/pkg/errors"
)

// OpenFolder shows path in the platform file manager
func OpenFolder(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("explorer", path)
	case "darwin":
		cmd = exec.Command("open", path)
	default:
		cmd = exec.Command("xdg-open", path)
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "failed to open %s", path)
	}
	go cmd.Wait()
	return nil
}

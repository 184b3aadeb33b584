// Package daemon keeps a PID file so only one service runs per user session
// and so `quickshot stop` can find it.
package daemon

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	// ErrAlreadyRunning is returned by Acquire when a live instance holds the PID file
	ErrAlreadyRunning = errors.New("another instance is already running")

	// ErrNotRunning is returned by Stop when no live instance is recorded
	ErrNotRunning = errors.New("service is not running or PID file is stale")
)

type Daemon struct {
	pidFile string

	// alive and terminate are swapped in tests
	alive     func(pid int) bool
	terminate func(pid int) error
}

func New(pidFile string) *Daemon {
	return &Daemon{
		pidFile:   pidFile,
		alive:     processAlive,
		terminate: terminateProcess,
	}
}

// PIDFile returns the path of the PID file
func (d *Daemon) PIDFile() string {
	return d.pidFile
}

func (d *Daemon) WritePID() error {
	if err := os.MkdirAll(filepath.Dir(d.pidFile), 0755); err != nil {
		return errors.Wrap(err, "failed to create PID directory")
	}
	pid := os.Getpid()
	if err := os.WriteFile(d.pidFile, fmt.Appendf([]byte{}, "%d", pid), 0644); err != nil {
		return errors.Wrap(err, "failed to write PID file")
	}
	return nil
}

func (d *Daemon) ReadPID() (int, error) {
	data, err := os.ReadFile(d.pidFile)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "failed to read PID file")
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errors.Wrap(err, "invalid PID in file")
	}

	return pid, nil
}

func (d *Daemon) RemovePID() error {
	if err := os.Remove(d.pidFile); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove PID file")
	}
	return nil
}

// IsRunning reports whether the recorded process is alive. A stale PID file
// is removed.
func (d *Daemon) IsRunning() (bool, int, error) {
	pid, err := d.ReadPID()
	if err != nil {
		return false, 0, err
	}

	if pid == 0 {
		return false, 0, nil
	}

	if pid == os.Getpid() || d.alive(pid) {
		return true, pid, nil
	}

	_ = d.RemovePID()
	return false, 0, nil
}

// Acquire records the current process unless a live instance already holds
// the PID file.
func (d *Daemon) Acquire() error {
	running, pid, err := d.IsRunning()
	if err != nil {
		return errors.Wrap(err, "error checking service status")
	}
	if running && pid != os.Getpid() {
		return errors.Wrapf(ErrAlreadyRunning, "PID %d", pid)
	}
	return d.WritePID()
}

// Release removes the PID file if it still belongs to this process
func (d *Daemon) Release() error {
	pid, err := d.ReadPID()
	if err != nil || pid != os.Getpid() {
		return err
	}
	return d.RemovePID()
}

// Stop asks the running instance to exit
func (d *Daemon) Stop() error {
	running, pid, err := d.IsRunning()
	if err != nil {
		return errors.Wrap(err, "error checking service status")
	}

	if !running {
		return ErrNotRunning
	}

	if err := d.terminate(pid); err != nil {
		if errors.Is(err, os.ErrProcessDone) {
			_ = d.RemovePID()
			return errors.New("service process already terminated")
		}
		return errors.Wrapf(err, "failed to stop process %d", pid)
	}

	return nil
}

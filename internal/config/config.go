package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/internal/hotkey"
	"github.com/quickshot/quickshot/internal/notify"
	"github.com/quickshot/quickshot/internal/storage"
)

// Config holds all application configuration
type Config struct {
	// Where screenshots go
	Capture CaptureConfig

	// Global hotkey candidates
	Hotkeys HotkeyConfig

	// Service loop timing
	Service ServiceConfig

	// Daemon configuration
	Daemon DaemonConfig

	// Desktop notifications
	Notify NotifyConfig

	// Capture journal
	History HistoryConfig

	// Log output
	Log LogConfig
}

// CaptureConfig holds save location configuration
type CaptureConfig struct {
	Folder    string // Absolute save folder
	Subfolder string // Folder name under Pictures when Folder is derived
}

// HotkeyConfig holds the hotkey candidates, tried in order
type HotkeyConfig struct {
	Primary     []string
	Alternative []string
	Exit        string
}

// ServiceConfig holds service timing configuration
type ServiceConfig struct {
	PollInterval   time.Duration // Hotkey listener idle tick
	IdleInterval   time.Duration // Idle loop tick when no tray is available
	GracePeriod    time.Duration // Wait for workers on exit before forcing termination
	MinGracePeriod time.Duration
	MaxGracePeriod time.Duration
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string // Path to PID file for single-instance checks
}

// NotifyConfig holds notification configuration
type NotifyConfig struct {
	Enabled bool
	AppName string
	Timeout time.Duration
}

// HistoryConfig holds capture journal configuration
type HistoryConfig struct {
	Enabled bool
	Path    string // Empty means ~/.config/quickshot/quickshot.db
}

// LogConfig holds log output configuration
type LogConfig struct {
	File string // Also log to this file when set
}

const defaultSubfolder = "Screenshots"

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Capture: CaptureConfig{
			Folder:    storage.DefaultFolder(defaultSubfolder),
			Subfolder: defaultSubfolder,
		},
		Hotkeys: HotkeyConfig{
			Primary:     append([]string(nil), hotkey.DefaultPrimary...),
			Alternative: append([]string(nil), hotkey.DefaultAlternative...),
			Exit:        hotkey.DefaultExit,
		},
		Service: ServiceConfig{
			PollInterval:   hotkey.DefaultPollInterval,
			IdleInterval:   time.Second,
			GracePeriod:    500 * time.Millisecond,
			MinGracePeriod: 100 * time.Millisecond,
			MaxGracePeriod: 10 * time.Second,
		},
		Daemon: DaemonConfig{
			PIDFile: defaultPIDFile(),
		},
		Notify: NotifyConfig{
			Enabled: true,
			AppName: "Window Screenshot Service",
			Timeout: notify.DefaultTimeout,
		},
		History: HistoryConfig{
			Enabled: false,
		},
	}
}

func defaultPIDFile() string {
	name := "quickshot.pid"
	if uid := os.Getuid(); uid >= 0 {
		name = fmt.Sprintf("quickshot-%d.pid", uid)
	}
	return filepath.Join(os.TempDir(), name)
}

// New creates a Config from defaults, the config file and the environment.
// An unreadable config file is logged and skipped.
func New() *Config {
	cfg, err := Load("")
	if err != nil {
		log.Printf("Ignoring config file: %v", err)
		cfg = Default()
		LoadFromEnv(cfg)
	}
	return cfg
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Capture.Folder) == "" {
		return errors.New("capture folder cannot be empty")
	}

	if c.Service.PollInterval <= 0 {
		return errors.Errorf("poll interval must be positive, got %v", c.Service.PollInterval)
	}

	if c.Service.IdleInterval <= 0 {
		return errors.Errorf("idle interval must be positive, got %v", c.Service.IdleInterval)
	}

	if c.Service.GracePeriod < c.Service.MinGracePeriod {
		return errors.Errorf("grace period (%v) cannot be less than minimum (%v)",
			c.Service.GracePeriod, c.Service.MinGracePeriod)
	}

	if c.Service.GracePeriod > c.Service.MaxGracePeriod {
		return errors.Errorf("grace period (%v) cannot be greater than maximum (%v)",
			c.Service.GracePeriod, c.Service.MaxGracePeriod)
	}

	if strings.TrimSpace(c.Hotkeys.Exit) == "" {
		return errors.New("exit hotkey cannot be empty")
	}

	for _, combo := range c.allHotkeys() {
		if _, err := hotkey.ParseCombo(combo); err != nil {
			return err
		}
	}

	if c.Notify.Timeout <= 0 {
		return errors.Errorf("notification timeout must be positive, got %v", c.Notify.Timeout)
	}

	if c.Daemon.PIDFile == "" {
		return errors.New("PID file path cannot be empty")
	}

	return nil
}

func (c *Config) allHotkeys() []string {
	combos := append(append([]string{}, c.Hotkeys.Primary...), c.Hotkeys.Alternative...)
	return append(combos, c.Hotkeys.Exit)
}

// SetGracePeriod sets the exit grace period with validation
func (c *Config) SetGracePeriod(d time.Duration) error {
	if d < c.Service.MinGracePeriod {
		return errors.Errorf("grace period cannot be less than %v", c.Service.MinGracePeriod)
	}
	if d > c.Service.MaxGracePeriod {
		return errors.Errorf("grace period cannot be greater than %v", c.Service.MaxGracePeriod)
	}
	c.Service.GracePeriod = d
	return nil
}

// SetSubfolder picks the folder name under Pictures and moves the save
// folder there
func (c *Config) SetSubfolder(name string) error {
	name = strings.TrimSpace(name)
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errors.Errorf("invalid subfolder %q", name)
	}
	c.Capture.Subfolder = name
	c.Capture.Folder = storage.DefaultFolder(name)
	return nil
}

// SetFolder sets the save folder, expanding a leading ~
func (c *Config) SetFolder(path string) error {
	expanded, err := expandPath(path)
	if err != nil {
		return err
	}
	c.Capture.Folder = expanded
	return nil
}

// HotkeyOptions returns the listener options for the configured combos
func (c *Config) HotkeyOptions() hotkey.Options {
	return hotkey.Options{
		Primary:      c.Hotkeys.Primary,
		Alternative:  c.Hotkeys.Alternative,
		Exit:         c.Hotkeys.Exit,
		PollInterval: c.Service.PollInterval,
	}
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Capture:
    Folder: %s
  Hotkeys:
    Primary: %s
    Alternative: %s
    Exit: %s
  Service:
    Poll Interval: %v
    Idle Interval: %v
    Grace Period: %v
  Daemon:
    PID File: %s
  Notify:
    Enabled: %v
    Timeout: %v
  History:
    Enabled: %v
    Path: %s
  Log:
    File: %s`,
		c.Capture.Folder,
		strings.Join(c.Hotkeys.Primary, ", "),
		strings.Join(c.Hotkeys.Alternative, ", "),
		c.Hotkeys.Exit,
		c.Service.PollInterval,
		c.Service.IdleInterval,
		c.Service.GracePeriod,
		c.Daemon.PIDFile,
		c.Notify.Enabled,
		c.Notify.Timeout,
		c.History.Enabled,
		c.History.Path,
		c.Log.File,
	)
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

const defaultConfigPath = "~/.config/quickshot/config.toml"

type fileConfig struct {
	Capture struct {
		Folder    string `toml:"folder"`
		Subfolder string `toml:"subfolder"`
	} `toml:"capture"`
	Hotkeys struct {
		Primary     []string `toml:"primary"`
		Alternative []string `toml:"alternative"`
		Exit        string   `toml:"exit"`
	} `toml:"hotkeys"`
	Service struct {
		PollIntervalMS int `toml:"poll_interval_ms"`
		IdleIntervalMS int `toml:"idle_interval_ms"`
		GracePeriodMS  int `toml:"grace_period_ms"`
	} `toml:"service"`
	Daemon struct {
		PIDFile string `toml:"pid_file"`
	} `toml:"daemon"`
	Notify struct {
		Enabled   *bool  `toml:"enabled"`
		AppName   string `toml:"app_name"`
		TimeoutMS int    `toml:"timeout_ms"`
	} `toml:"notify"`
	History struct {
		Enabled *bool  `toml:"enabled"`
		Path    string `toml:"path"`
	} `toml:"history"`
	Log struct {
		File string `toml:"file"`
	} `toml:"log"`
}

// Load builds a Config from defaults, the TOML file at path and the
// environment, in that order. An empty path means QUICKSHOT_CONFIG or
// ~/.config/quickshot/config.toml. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("QUICKSHOT_CONFIG")
	}
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}

	if err := applyFile(cfg, path); err != nil {
		return nil, err
	}
	LoadFromEnv(cfg)
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	resolved, err := expandPath(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "read config")
	}

	var raw fileConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return errors.Wrapf(err, "parse config %s", resolved)
	}

	// An explicit folder wins over a subfolder under Pictures
	if sub := strings.TrimSpace(raw.Capture.Subfolder); sub != "" {
		if err := cfg.SetSubfolder(sub); err != nil {
			return errors.Wrapf(err, "config %s", resolved)
		}
	}
	if folder := strings.TrimSpace(raw.Capture.Folder); folder != "" {
		if err := cfg.SetFolder(folder); err != nil {
			return err
		}
	}
	if len(raw.Hotkeys.Primary) > 0 {
		cfg.Hotkeys.Primary = raw.Hotkeys.Primary
	}
	if len(raw.Hotkeys.Alternative) > 0 {
		cfg.Hotkeys.Alternative = raw.Hotkeys.Alternative
	}
	if exit := strings.TrimSpace(raw.Hotkeys.Exit); exit != "" {
		cfg.Hotkeys.Exit = exit
	}
	if raw.Service.PollIntervalMS > 0 {
		cfg.Service.PollInterval = millis(raw.Service.PollIntervalMS)
	}
	if raw.Service.IdleIntervalMS > 0 {
		cfg.Service.IdleInterval = millis(raw.Service.IdleIntervalMS)
	}
	if raw.Service.GracePeriodMS > 0 {
		if err := cfg.SetGracePeriod(millis(raw.Service.GracePeriodMS)); err != nil {
			return errors.Wrapf(err, "config %s", resolved)
		}
	}
	if pid := strings.TrimSpace(raw.Daemon.PIDFile); pid != "" {
		cfg.Daemon.PIDFile = mustExpand(pid)
	}
	if raw.Notify.Enabled != nil {
		cfg.Notify.Enabled = *raw.Notify.Enabled
	}
	if name := strings.TrimSpace(raw.Notify.AppName); name != "" {
		cfg.Notify.AppName = name
	}
	if raw.Notify.TimeoutMS > 0 {
		cfg.Notify.Timeout = millis(raw.Notify.TimeoutMS)
	}
	if raw.History.Enabled != nil {
		cfg.History.Enabled = *raw.History.Enabled
	}
	if p := strings.TrimSpace(raw.History.Path); p != "" {
		cfg.History.Path = mustExpand(p)
	}
	if f := strings.TrimSpace(raw.Log.File); f != "" {
		cfg.Log.File = mustExpand(f)
	}
	return nil
}

func millis(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(err, "resolve home dir")
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

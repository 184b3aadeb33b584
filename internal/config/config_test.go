package config

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"QUICKSHOT_CONFIG", "QUICKSHOT_FOLDER", "QUICKSHOT_POLL_INTERVAL", "QUICKSHOT_GRACE_PERIOD",
		"QUICKSHOT_PID_FILE", "QUICKSHOT_NOTIFY", "QUICKSHOT_HISTORY", "QUICKSHOT_DB_PATH", "QUICKSHOT_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{"alt+print screen", "alt+printscreen", "alt+prtsc"}, cfg.Hotkeys.Primary)
	assert.Equal(t, []string{"ctrl+alt+a", "f11", "ctrl+f11"}, cfg.Hotkeys.Alternative)
	assert.Equal(t, 500*time.Millisecond, cfg.Service.PollInterval)
	assert.Equal(t, time.Second, cfg.Service.IdleInterval)
	assert.Equal(t, "Screenshots", filepath.Base(cfg.Capture.Folder))
	assert.True(t, cfg.Notify.Enabled)
	assert.Equal(t, 2*time.Second, cfg.Notify.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Service.GracePeriod, cfg.Service.GracePeriod)
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[capture]
folder = "` + filepath.ToSlash(filepath.Join(dir, "shots")) + `"

[hotkeys]
primary = ["ctrl+shift+s"]
exit = "ctrl+alt+x"

[service]
grace_period_ms = 1500
idle_interval_ms = 250

[notify]
enabled = false
app_name = "Shots"

[history]
enabled = true
path = "` + filepath.ToSlash(filepath.Join(dir, "journal.db")) + `"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "shots"), cfg.Capture.Folder)
	assert.Equal(t, []string{"ctrl+shift+s"}, cfg.Hotkeys.Primary)
	assert.Equal(t, Default().Hotkeys.Alternative, cfg.Hotkeys.Alternative)
	assert.Equal(t, "ctrl+alt+x", cfg.Hotkeys.Exit)
	assert.Equal(t, 1500*time.Millisecond, cfg.Service.GracePeriod)
	assert.Equal(t, 250*time.Millisecond, cfg.Service.IdleInterval)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, "Shots", cfg.Notify.AppName)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, filepath.Join(dir, "journal.db"), cfg.History.Path)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFileRejectsBadValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[service\ngrace_period_ms = "), 0o644))
	_, err := Load(bad)
	assert.Error(t, err)

	tooLong := filepath.Join(dir, "long.toml")
	require.NoError(t, os.WriteFile(tooLong, []byte("[service]\ngrace_period_ms = 60000\n"), 0o644))
	_, err = Load(tooLong)
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[service]\ngrace_period_ms = 1500\n"), 0o644))

	t.Setenv("QUICKSHOT_CONFIG", path)
	t.Setenv("QUICKSHOT_GRACE_PERIOD", "800")
	t.Setenv("QUICKSHOT_POLL_INTERVAL", "250")
	t.Setenv("QUICKSHOT_HISTORY", "true")
	t.Setenv("QUICKSHOT_NOTIFY", "false")
	t.Setenv("QUICKSHOT_PID_FILE", filepath.Join(dir, "q.pid"))
	t.Setenv("QUICKSHOT_LOG_FILE", filepath.Join(dir, "q.log"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 800*time.Millisecond, cfg.Service.GracePeriod)
	assert.Equal(t, 250*time.Millisecond, cfg.Service.PollInterval)
	assert.True(t, cfg.History.Enabled)
	assert.False(t, cfg.Notify.Enabled)
	assert.Equal(t, filepath.Join(dir, "q.pid"), cfg.Daemon.PIDFile)
	assert.Equal(t, filepath.Join(dir, "q.log"), cfg.Log.File)
}

func TestEnvIgnoresInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("QUICKSHOT_GRACE_PERIOD", "20")
	t.Setenv("QUICKSHOT_POLL_INTERVAL", "soon")
	t.Setenv("QUICKSHOT_NOTIFY", "maybe")

	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)

	cfg := Default()
	LoadFromEnv(cfg)

	assert.Equal(t, 500*time.Millisecond, cfg.Service.GracePeriod)
	assert.Equal(t, 500*time.Millisecond, cfg.Service.PollInterval)
	assert.True(t, cfg.Notify.Enabled)

	out := buf.String()
	assert.Contains(t, out, "Ignoring QUICKSHOT_GRACE_PERIOD")
	assert.Contains(t, out, "cannot be less than")
	assert.Contains(t, out, `Ignoring QUICKSHOT_POLL_INTERVAL="soon"`)
	assert.Contains(t, out, `Ignoring QUICKSHOT_NOTIFY="maybe"`)
}

func TestLoadFileSubfolder(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[capture]\nsubfolder = \"Window Shots\"\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Window Shots", cfg.Capture.Subfolder)
	assert.Equal(t, "Window Shots", filepath.Base(cfg.Capture.Folder))

	both := filepath.Join(dir, "both.toml")
	content := "[capture]\nsubfolder = \"Window Shots\"\nfolder = \"" + filepath.ToSlash(filepath.Join(dir, "shots")) + "\"\n"
	require.NoError(t, os.WriteFile(both, []byte(content), 0o644))
	cfg, err = Load(both)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shots"), cfg.Capture.Folder)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[capture]\nsubfolder = \"../elsewhere\"\n"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty folder", func(c *Config) { c.Capture.Folder = "" }},
		{"zero poll interval", func(c *Config) { c.Service.PollInterval = 0 }},
		{"zero idle interval", func(c *Config) { c.Service.IdleInterval = 0 }},
		{"grace period too short", func(c *Config) { c.Service.GracePeriod = time.Millisecond }},
		{"grace period too long", func(c *Config) { c.Service.GracePeriod = time.Minute }},
		{"empty exit hotkey", func(c *Config) { c.Hotkeys.Exit = " " }},
		{"unparsable hotkey", func(c *Config) { c.Hotkeys.Primary = []string{"hyper+a"} }},
		{"zero notify timeout", func(c *Config) { c.Notify.Timeout = 0 }},
		{"empty pid file", func(c *Config) { c.Daemon.PIDFile = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSetFolderExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := Default()
	require.NoError(t, cfg.SetFolder("~/Pictures/Shots"))
	assert.Equal(t, filepath.Join(home, "Pictures", "Shots"), cfg.Capture.Folder)
	assert.Error(t, cfg.SetFolder("  "))
}

func TestHotkeyOptions(t *testing.T) {
	cfg := Default()
	opts := cfg.HotkeyOptions()
	assert.Equal(t, cfg.Hotkeys.Primary, opts.Primary)
	assert.Equal(t, cfg.Hotkeys.Exit, opts.Exit)
	assert.Equal(t, cfg.Service.PollInterval, opts.PollInterval)
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "Grace Period: 500ms")
	assert.Contains(t, s, "Exit: ctrl+alt+q")
}

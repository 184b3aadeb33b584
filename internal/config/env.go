package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// LoadFromEnv loads configuration from environment variables
// Environment variables override default values
func LoadFromEnv(cfg *Config) {
	// Capture configuration
	if folder := os.Getenv("QUICKSHOT_FOLDER"); folder != "" {
		if err := cfg.SetFolder(folder); err != nil {
			log.Printf("Ignoring QUICKSHOT_FOLDER: %v", err)
		}
	}

	// Service configuration
	if pollInterval := os.Getenv("QUICKSHOT_POLL_INTERVAL"); pollInterval != "" {
		if ms, err := strconv.Atoi(pollInterval); err == nil && ms > 0 {
			cfg.Service.PollInterval = time.Duration(ms) * time.Millisecond
		} else {
			log.Printf("Ignoring QUICKSHOT_POLL_INTERVAL=%q: want a positive number of milliseconds", pollInterval)
		}
	}

	if gracePeriod := os.Getenv("QUICKSHOT_GRACE_PERIOD"); gracePeriod != "" {
		ms, err := strconv.Atoi(gracePeriod)
		if err != nil || ms <= 0 {
			log.Printf("Ignoring QUICKSHOT_GRACE_PERIOD=%q: want a positive number of milliseconds", gracePeriod)
		} else if err := cfg.SetGracePeriod(time.Duration(ms) * time.Millisecond); err != nil {
			log.Printf("Ignoring QUICKSHOT_GRACE_PERIOD: %v", err)
		}
	}

	// Daemon configuration
	if pidFile := os.Getenv("QUICKSHOT_PID_FILE"); pidFile != "" {
		cfg.Daemon.PIDFile = pidFile
	}

	// Notification configuration
	if enabled := os.Getenv("QUICKSHOT_NOTIFY"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Notify.Enabled = val
		} else {
			log.Printf("Ignoring QUICKSHOT_NOTIFY=%q: want true or false", enabled)
		}
	}

	// History configuration
	if enabled := os.Getenv("QUICKSHOT_HISTORY"); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.History.Enabled = val
		} else {
			log.Printf("Ignoring QUICKSHOT_HISTORY=%q: want true or false", enabled)
		}
	}

	if dbPath := os.Getenv("QUICKSHOT_DB_PATH"); dbPath != "" {
		cfg.History.Path = dbPath
	}

	// Log configuration
	if logFile := os.Getenv("QUICKSHOT_LOG_FILE"); logFile != "" {
		cfg.Log.File = logFile
	}
}

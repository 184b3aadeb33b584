package config_test

import (
	"fmt"
	"time"

	"github.com/quickshot/quickshot/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Grace Period:", cfg.Service.GracePeriod)
	fmt.Println("Exit Hotkey:", cfg.Hotkeys.Exit)
	fmt.Println("History:", cfg.History.Enabled)
	// Output:
	// Grace Period: 500ms
	// Exit Hotkey: ctrl+alt+q
	// History: false
}

// Example of setting the grace period with validation
func ExampleConfig_SetGracePeriod() {
	cfg := config.Default()

	// Valid period
	if err := cfg.SetGracePeriod(2 * time.Second); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Grace period set to:", cfg.Service.GracePeriod)
	}

	// Invalid period (too low)
	if err := cfg.SetGracePeriod(50 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Grace period set to: 2s
	// Error: grace period cannot be less than 100ms
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	// Output:
	// Configuration is valid
}

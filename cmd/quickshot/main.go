package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/internal/config"
	"github.com/quickshot/quickshot/internal/daemon"
	"github.com/quickshot/quickshot/internal/database"
	"github.com/quickshot/quickshot/internal/notify"
	"github.com/quickshot/quickshot/internal/reporter"
	"github.com/quickshot/quickshot/internal/service"
	"github.com/quickshot/quickshot/internal/storage"
	"github.com/quickshot/quickshot/internal/tray"
	"github.com/quickshot/quickshot/pkg/detector"
)

var (
	version = "0.1.0"
	commit  = "unknown"
	date    = "unknown"
)

const appName = "quickshot"

func main() {
	command := "run"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	switch command {
	case "run":
		runService()
	case "capture":
		if code := captureOnce(); code != 0 {
			os.Exit(code)
		}
	case "stop":
		stopService()
	case "status":
		showStatus()
	case "history":
		showHistory()
	case "clear":
		clearHistory()
	case "version":
		fmt.Printf("%s version %s\n", appName, version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Printf(`quickshot - Active window screenshot service

Usage:
  quickshot [command] [options]

Commands:
  run                        Start the service with tray icon and hotkeys (default)
  capture [delay-seconds]    Capture the focused window once and exit
  stop                       Stop the running service
  status                     Show service status and the focused window
  history [limit] [--json]   List recorded captures (needs QUICKSHOT_HISTORY=true)
  clear                      Delete the capture history
  version                    Show version information
  help                       Show this help message

Examples:
  quickshot
  quickshot capture 3
  quickshot history 20
  quickshot stop

Environment Variables:
  QUICKSHOT_CONFIG           Config file path (default ~/.config/quickshot/config.toml)
  QUICKSHOT_FOLDER           Screenshot folder
  QUICKSHOT_GRACE_PERIOD     Exit grace period in milliseconds (100-10000)
  QUICKSHOT_POLL_INTERVAL    Hotkey loop interval in milliseconds
  QUICKSHOT_PID_FILE         PID file path
  QUICKSHOT_NOTIFY           Desktop notifications (true/false)
  QUICKSHOT_HISTORY          Record captures in the history database (true/false)
  QUICKSHOT_DB_PATH          History database path
  QUICKSHOT_LOG_FILE         Also write logs to this file

Version: %s
`, version)
}

func loadConfig() *config.Config {
	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

// setupLog adds the configured log file next to stderr
func setupLog(cfg *config.Config) func() {
	if cfg.Log.File == "" {
		return func() {}
	}
	logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		log.Printf("Could not open log file %s: %v", cfg.Log.File, err)
		return func() {}
	}
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))
	return func() {
		log.SetOutput(os.Stderr)
		logFile.Close()
	}
}

// openJournal returns nil when history is disabled or the database cannot
// be opened; the service runs without a journal then.
func openJournal(cfg *config.Config) (*database.DB, *database.Repository) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	db, err := database.Connect(cfg.History.Path)
	if err != nil {
		log.Printf("History disabled: %v", err)
		return nil, nil
	}
	if err := db.Initialize(); err != nil {
		log.Printf("History disabled: %v", err)
		db.Close()
		return nil, nil
	}
	return db, database.NewRepository(db)
}

func serviceOptions(cfg *config.Config, notifier *notify.Sink, repo *database.Repository) (service.Options, func()) {
	engine, err := detector.NewEngine()
	if err != nil {
		log.Fatalf("Failed to initialize window locator: %v", err)
	}
	log.Printf("Window locator initialized: %s (%s)",
		engine.Locator().GetDisplayServer(), strings.Join(engine.Strategies(), ", "))

	opts := service.Options{
		Folder:   cfg.Capture.Folder,
		Capturer: engine,
		Notifier: notifier,
		Hotkeys:  cfg.HotkeyOptions(),
		NewPresenter: func(cb tray.Callbacks, hk func() string) service.Presenter {
			return tray.New(cfg.Notify.AppName, hk, cb)
		},
		IdleInterval: cfg.Service.IdleInterval,
		GracePeriod:  cfg.Service.GracePeriod,
	}
	if repo != nil {
		opts.Journal = repo
	}

	return opts, func() {
		if err := engine.Locator().Close(); err != nil {
			log.Printf("Error closing window locator: %v", err)
		}
	}
}

func runService() {
	cfg := loadConfig()
	defer setupLog(cfg)()

	dm := daemon.New(cfg.Daemon.PIDFile)
	if err := dm.Acquire(); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			log.Fatalf("Service is already running: %v", err)
		}
		log.Fatalf("Failed to write PID file: %v", err)
	}
	defer dm.Release()

	db, repo := openJournal(cfg)
	if db != nil {
		defer db.Close()
	}

	notifier := notify.NewSink(cfg.Notify.AppName, cfg.Notify.Timeout, cfg.Notify.Enabled)
	defer notifier.Close()

	opts, closeLocator := serviceOptions(cfg, notifier, repo)
	defer closeLocator()

	opts.ExitFunc = func(code int) {
		log.Println("Shutdown timed out, forcing exit")
		_ = dm.Release()
		os.Exit(code)
	}

	svc := service.New(opts)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Println("\n🛑 Stopping service...")
			svc.Exit()
		case <-svc.Done():
		}
	}()

	log.Printf("Configuration:\n%s", cfg.String())

	if err := svc.Start(context.Background()); err != nil {
		log.Printf("Service error: %v", err)
		return
	}
}

func captureOnce() int {
	cfg := loadConfig()
	defer setupLog(cfg)()

	delay := 0
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n < 0 {
			log.Fatalf("Invalid delay: %s", os.Args[2])
		}
		delay = n
	}

	db, repo := openJournal(cfg)
	if db != nil {
		defer db.Close()
	}

	notifier := notify.NewSink(cfg.Notify.AppName, cfg.Notify.Timeout, cfg.Notify.Enabled)
	defer notifier.Close()

	opts, closeLocator := serviceOptions(cfg, notifier, repo)
	defer closeLocator()

	if err := storage.EnsureFolder(cfg.Capture.Folder); err != nil {
		log.Fatalf("Failed to create screenshot folder: %v", err)
	}

	for i := delay; i > 0; i-- {
		fmt.Printf("⏳ Capturing in %d...\n", i)
		time.Sleep(time.Second)
	}

	svc := service.New(opts)
	if _, err := svc.Capture(context.Background()); err != nil {
		return 1
	}
	return 0
}

func stopService() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check service status: %v", err)
	}

	if !running {
		fmt.Println("Service is not running")
		return
	}

	fmt.Printf("Stopping service (PID: %d)...\n", pid)
	if err := dm.Stop(); err != nil {
		log.Fatalf("Failed to stop service: %v", err)
	}

	fmt.Println("Stop signal sent")
}

func showStatus() {
	cfg := config.New()
	dm := daemon.New(cfg.Daemon.PIDFile)

	running, pid, err := dm.IsRunning()
	if err != nil {
		log.Fatalf("Failed to check service status: %v", err)
	}

	if !running {
		fmt.Println("Status: Not running")
	} else {
		fmt.Printf("Status: Running (PID: %d)\n", pid)
	}
	fmt.Printf("Screenshot folder: %s\n", cfg.Capture.Folder)
	fmt.Printf("Capture hotkeys: %s\n", strings.Join(append(append([]string{}, cfg.Hotkeys.Primary...), cfg.Hotkeys.Alternative...), ", "))
	fmt.Printf("Exit hotkey: %s\n", cfg.Hotkeys.Exit)
	if cfg.History.Enabled {
		fmt.Println("History: enabled")
	}

	// Show the focused window even when the service is not running
	locator, err := detector.New()
	if err != nil {
		fmt.Printf("\nCould not locate the current window: %v\n", err)
		return
	}
	defer locator.Close()

	info, err := locator.ActiveWindow()
	fmt.Print("\n" + detector.Status(locator))
	if err != nil {
		fmt.Printf("\nCould not locate the current window: %v\n", err)
		return
	}
	if info == nil {
		fmt.Println("\nNo focused window")
		return
	}

	fmt.Printf("\nCurrent Window:\n")
	fmt.Printf("  Title: %s\n", info.Title)
	fmt.Printf("  Rect: %s\n", info.Rect)
	fmt.Printf("  Size: %dx%d\n", info.Rect.Width(), info.Rect.Height())
	fmt.Printf("  Display: %s\n", info.DisplayServer)
}

func showHistory() {
	limit := 20
	jsonOutput := false
	for _, arg := range os.Args[2:] {
		if arg == "--json" {
			jsonOutput = true
			continue
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			log.Fatalf("Invalid limit: %s", arg)
		}
		limit = n
	}

	cfg := config.New()

	db, err := database.Connect(cfg.History.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rep := reporter.New(database.NewRepository(db))
	history, err := rep.GenerateHistory("all", limit)
	if err != nil {
		log.Fatalf("Failed to load history: %v", err)
	}

	if jsonOutput {
		jsonStr, err := rep.FormatHistoryJSON(history)
		if err != nil {
			log.Fatalf("Failed to format JSON: %v", err)
		}
		fmt.Println(jsonStr)
		return
	}

	if !cfg.History.Enabled {
		fmt.Println("💡 History recording is off; set QUICKSHOT_HISTORY=true to enable it")
	}
	fmt.Print(rep.FormatHistoryText(history))
}

func clearHistory() {
	cfg := config.New()

	// Prompt for confirmation
	fmt.Print("This will delete the capture history. Are you sure? (yes/no): ")
	response, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))

	if response != "yes" && response != "y" {
		fmt.Println("Operation cancelled")
		return
	}

	db, err := database.Connect(cfg.History.Path)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.NewRepository(db).Clear(); err != nil {
		log.Fatalf("Failed to clear history: %v", err)
	}

	fmt.Println("History cleared successfully")
}

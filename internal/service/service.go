// Package service wires window capture, hotkeys, the tray and notifications
// into the long-running screenshot service.
package service

import (
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/quickshot/quickshot/internal/hotkey"
	"github.com/quickshot/quickshot/internal/hotkey/global"
	"github.com/quickshot/quickshot/internal/models"
	"github.com/quickshot/quickshot/internal/notify"
	"github.com/quickshot/quickshot/internal/storage"
	"github.com/quickshot/quickshot/internal/tray"
	"github.com/quickshot/quickshot/pkg/capture"
)

const (
	DefaultIdleInterval = time.Second
	DefaultGracePeriod  = 500 * time.Millisecond
)

var (
	// ErrAlreadyStarted is returned by a second Start
	ErrAlreadyStarted = errors.New("service already started")
	// ErrExited is returned by Start after Exit
	ErrExited = errors.New("service has exited")
	// ErrNotStarted is returned by Go before Start
	ErrNotStarted = errors.New("service not started")
)

// Capturer locates and captures the active window
type Capturer interface {
	CaptureActiveWindow(ctx context.Context) (*capture.Result, error)
}

// Saver writes an image into a folder and returns its path
type Saver interface {
	Save(img image.Image, folder string) (string, error)
}

// Presenter is the blocking UI loop, normally the tray
type Presenter interface {
	Run() error
	Stop() error
}

// PresenterFactory builds the presenter once the hotkeys are known
type PresenterFactory func(cb tray.Callbacks, hotkey func() string) Presenter

// Journal records capture attempts
type Journal interface {
	CreateCapture(c *models.Capture) error
	CreateErrorLog(e *models.ErrorLog) error
}

// Options configures a Service. Zero values fall back to defaults.
type Options struct {
	Folder       string
	Capturer     Capturer
	Saver        Saver
	Notifier     notify.Notifier
	Registrar    hotkey.Registrar
	Hotkeys      hotkey.Options
	NewPresenter PresenterFactory
	Journal      Journal
	OpenFolder   func(path string) error
	IdleInterval time.Duration
	GracePeriod  time.Duration
	// ExitFunc terminates the process when the graceful join times out
	ExitFunc func(code int)
}

// Service is one screenshot service instance
type Service struct {
	opts     Options
	listener *hotkey.Listener

	state   atomic.Int32
	running atomic.Bool
	exited  atomic.Bool

	captureMu sync.Mutex

	mu        sync.Mutex
	workerCtx context.Context
	cancel    context.CancelFunc
	presenter Presenter

	wg       sync.WaitGroup
	exitOnce sync.Once
	uiOnce   sync.Once
	uiDone   chan struct{}
	done     chan struct{}
}

// New creates a stopped service
func New(opts Options) *Service {
	if opts.Saver == nil {
		opts.Saver = storage.NewWriter()
	}
	if opts.Notifier == nil {
		opts.Notifier = &notify.Sink{}
	}
	if opts.Registrar == nil {
		opts.Registrar = global.NewRegistrar()
	}
	if opts.NewPresenter == nil {
		opts.NewPresenter = func(cb tray.Callbacks, hk func() string) Presenter {
			return tray.New("Window Screenshot Service", hk, cb)
		}
	}
	if opts.OpenFolder == nil {
		opts.OpenFolder = tray.OpenFolder
	}
	if opts.IdleInterval <= 0 {
		opts.IdleInterval = DefaultIdleInterval
	}
	if opts.GracePeriod <= 0 {
		opts.GracePeriod = DefaultGracePeriod
	}
	if opts.ExitFunc == nil {
		opts.ExitFunc = os.Exit
	}

	s := &Service{opts: opts, uiDone: make(chan struct{}), done: make(chan struct{})}

	hk := opts.Hotkeys
	hk.OnCapture = s.onHotkeyCapture
	hk.OnExit = s.Exit
	s.listener = hotkey.NewListener(opts.Registrar, hk)
	return s
}

// State returns the lifecycle stage
func (s *Service) State() State {
	return State(s.state.Load())
}

// Running reports whether the service accepts captures
func (s *Service) Running() bool {
	return s.running.Load()
}

// RegisteredHotkey returns the capture combo, or "" if none is bound
func (s *Service) RegisteredHotkey() string {
	return s.listener.Registered()
}

// Done is closed once Exit has finished
func (s *Service) Done() <-chan struct{} {
	return s.done
}

// Start runs the service on the calling goroutine. It returns after Exit
// completes, or with an error if the service cannot start.
func (s *Service) Start(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateStopped), int32(StateStarting)) {
		if s.exited.Load() {
			return ErrExited
		}
		return ErrAlreadyStarted
	}
	if s.exited.Load() {
		s.uiOnce.Do(func() { close(s.uiDone) })
		s.state.CompareAndSwap(int32(StateStarting), int32(StateStopped))
		return ErrExited
	}

	err := s.run(ctx)
	s.uiOnce.Do(func() { close(s.uiDone) })
	if err != nil {
		s.state.CompareAndSwap(int32(StateStarting), int32(StateStopped))
		return err
	}

	// The tray loop can end without Exit (the host went away); that ends
	// the service too.
	s.Exit()
	<-s.done
	return nil
}

func (s *Service) run(ctx context.Context) error {
	if err := storage.EnsureFolder(s.opts.Folder); err != nil {
		return err
	}

	workerCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.exited.Load() {
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.workerCtx, s.cancel = workerCtx, cancel
	s.running.Store(true)
	s.mu.Unlock()

	s.listener.Register()
	s.Go(func(ctx context.Context) {
		if err := s.listener.Run(ctx); err != nil {
			log.Printf("Hotkey listener stopped: %v", err)
		}
	})

	go func() {
		select {
		case <-ctx.Done():
			s.Exit()
		case <-s.done:
		}
	}()

	presenter := s.opts.NewPresenter(tray.Callbacks{
		OnCapture:    s.onMenuCapture,
		OnOpenFolder: s.OpenFolder,
		OnExit:       s.Exit,
	}, s.RegisteredHotkey)
	s.mu.Lock()
	if s.exited.Load() {
		s.mu.Unlock()
		return nil
	}
	s.presenter = presenter
	s.mu.Unlock()

	s.state.CompareAndSwap(int32(StateStarting), int32(StateRunning))
	s.banner()

	if err := presenter.Run(); err != nil {
		fmt.Printf("❌ Tray icon error: %v\n", err)
		fmt.Println("💡 The service keeps running in the background")
		s.idle(workerCtx)
	}
	return nil
}

// Go runs fn on a goroutine owned by the service. fn must return once ctx
// is cancelled; Exit waits for it up to the grace period.
func (s *Service) Go(fn func(ctx context.Context)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workerCtx == nil {
		return ErrNotStarted
	}

	ctx := s.workerCtx
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		fn(ctx)
	}()
	return nil
}

func (s *Service) banner() {
	fmt.Println("🚀 Window screenshot service started!")
	fmt.Printf("📁 Screenshot folder: %s\n", s.opts.Folder)
	fmt.Println("🎹 Hotkeys:")
	fmt.Println(s.listener.Summary())
	fmt.Println("──────────────────────────────────────────────────")
}

func (s *Service) idle(ctx context.Context) {
	ticker := time.NewTicker(s.opts.IdleInterval)
	defer ticker.Stop()

	for s.Running() {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Service) onHotkeyCapture() {
	if !s.Running() {
		return
	}
	s.Capture(context.Background())
}

func (s *Service) onMenuCapture() {
	s.Capture(context.Background())
}

// Capture saves a screenshot of the focused window. Concurrent calls run
// one after another. Failures are reported to the user; the returned error
// is informational.
func (s *Service) Capture(ctx context.Context) (string, error) {
	s.captureMu.Lock()
	defer s.captureMu.Unlock()

	fmt.Println("📸 Capturing the full active window...")

	res, err := s.opts.Capturer.CaptureActiveWindow(ctx)
	if err != nil {
		if errors.Is(err, capture.ErrNoActiveWindow) {
			fmt.Println("❌ No active window found")
		} else {
			fmt.Printf("❌ Could not capture the active window: %v\n", err)
		}
		s.opts.Notifier.Notify("Error", "Could not capture the active window")
		s.record(nil, "", "capture", err)
		return "", err
	}

	r := res.Window.Rect
	fmt.Printf("   📋 Active window: %s\n", res.Window.Title)
	fmt.Printf("   📐 Window rect: (%d, %d, %d, %d)\n", r.Left, r.Top, r.Right, r.Bottom)
	fmt.Printf("   📏 Size: %dx%d via %s\n", res.Image.Bounds().Dx(), res.Image.Bounds().Dy(), res.Strategy)

	path, err := s.opts.Saver.Save(res.Image, s.opts.Folder)
	if err != nil {
		fmt.Printf("❌ Save failed: %v\n", err)
		s.opts.Notifier.Notify("Error", fmt.Sprintf("Could not save screenshot: %v", err))
		s.record(res, "", "save", err)
		return "", err
	}

	name := filepath.Base(path)
	fmt.Printf("✅ Full window screenshot saved: %s\n", name)
	s.opts.Notifier.Notify("Screenshot saved", fmt.Sprintf("Full window: %s", name))
	s.record(res, path, "", nil)
	return path, nil
}

func (s *Service) record(res *capture.Result, path, stage string, capErr error) {
	if s.opts.Journal == nil {
		return
	}

	now := time.Now()
	entry := &models.Capture{
		Timestamp: now,
		Path:      path,
		Success:   capErr == nil,
	}
	if res != nil {
		r := res.Window.Rect
		entry.Strategy = res.Strategy
		entry.WindowTitle = res.Window.Title
		entry.Width = res.Image.Bounds().Dx()
		entry.Height = res.Image.Bounds().Dy()
		entry.Left = r.Left
		entry.Top = r.Top
		entry.DisplayServer = res.Window.DisplayServer
	}
	if capErr != nil {
		entry.Error = capErr.Error()
	}

	if err := s.opts.Journal.CreateCapture(entry); err != nil {
		log.Printf("Failed to record capture: %v", err)
	}
	if capErr != nil {
		errLog := &models.ErrorLog{Timestamp: now, Stage: stage, ErrorMsg: capErr.Error()}
		if err := s.opts.Journal.CreateErrorLog(errLog); err != nil {
			log.Printf("Failed to store error in journal: %v (original error: %v)", err, capErr)
		}
	}
}

// OpenFolder shows the save folder. Errors are logged only.
func (s *Service) OpenFolder() {
	if err := s.opts.OpenFolder(s.opts.Folder); err != nil {
		fmt.Printf("❌ Could not open folder: %v\n", err)
		return
	}
	fmt.Printf("📁 Opened folder: %s\n", s.opts.Folder)
}

// Exit stops the service. Only the first call does anything; it returns
// once shutdown has finished or the process is being terminated.
func (s *Service) Exit() {
	s.exitOnce.Do(s.exit)
}

func (s *Service) exit() {
	fmt.Println("🛑 Shutting down the service...")
	s.mu.Lock()
	s.exited.Store(true)
	s.running.Store(false)
	cancel, presenter := s.cancel, s.presenter
	s.mu.Unlock()
	started := State(s.state.Swap(int32(StateStopping))) != StateStopped

	// The grace period covers every shutdown step, including cleanup calls
	// that never return.
	deadline := time.NewTimer(s.opts.GracePeriod)
	defer deadline.Stop()

	if cancel != nil {
		cancel()
	}

	joined := make(chan struct{})
	go func() {
		quietly("unregister hotkeys", s.opts.Registrar.UnregisterAll)
		if presenter != nil {
			quietly("stop tray", presenter.Stop)
		}
		// Owned goroutines and, once started, the tray or idle loop on the
		// Start goroutine must all finish.
		s.wg.Wait()
		if started {
			<-s.uiDone
		}
		close(joined)
	}()

	select {
	case <-joined:
		s.state.Store(int32(StateStopped))
		close(s.done)
		fmt.Println("👋 Service stopped")
	case <-deadline.C:
		log.Printf("Shutdown did not finish within %v, forcing exit", s.opts.GracePeriod)
		s.state.Store(int32(StateStopped))
		close(s.done)
		s.opts.ExitFunc(0)
	}
}

// quietly runs a shutdown step, logging its error or panic
func quietly(step string, fn func() error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Shutdown step %q panicked: %v", step, r)
		}
	}()
	if err := fn(); err != nil {
		log.Printf("Shutdown step %q failed: %v", step, err)
	}
}

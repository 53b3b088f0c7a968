// Package app wires the editor to a display backend, the configuration
// file and the logger, and runs the main event loop.
package app

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/dshills/contour/internal/config"
	"github.com/dshills/contour/internal/config/watcher"
	"github.com/dshills/contour/internal/editor"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/logger"
	"github.com/dshills/contour/internal/renderer/backend"
	"github.com/dshills/contour/internal/renderer/canvas"
)

// viewMargin is the gap kept around the document, in screen units.
const viewMargin = 16.0

var quitKeys = []key.HotKey{
	key.MustParseHotKey("Ctrl+Q"),
	key.MustParseHotKey("Ctrl+C"),
}

// Options configures the application.
type Options struct {
	// ConfigPath is the path to the configuration file.
	ConfigPath string

	// Watch reloads the configuration file when it changes.
	Watch bool

	// LogLevel overrides the configured log level when set.
	LogLevel string

	// LogFile overrides the configured log file when set.
	LogFile string
}

// Application owns the editor and drives it from backend events.
type Application struct {
	mu sync.Mutex

	opts    Options
	cfg     config.Config
	editor  *editor.Editor
	backend backend.Backend

	raster  *backend.Raster
	pointer *backend.Pointer

	watcher *watcher.Watcher
	reloads chan config.Config
	logOut  io.Closer

	running   atomic.Bool
	done      chan struct{}
	closeOnce sync.Once
}

// New loads the configuration, starts logging and creates an editor on the
// demo document.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts:    opts,
		reloads: make(chan config.Config, 1),
		done:    make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		app.Shutdown()
		return nil, err
	}
	return app, nil
}

func (app *Application) bootstrap() error {
	cfg := config.Default()
	if app.opts.ConfigPath != "" {
		loaded, err := config.Load(app.opts.ConfigPath)
		if err != nil {
			return &InitError{Component: "config", Err: err}
		}
		cfg = loaded
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}
	if app.opts.LogFile != "" {
		cfg.Log.File = app.opts.LogFile
	}
	app.cfg = cfg

	if err := app.initLogging(cfg.Log); err != nil {
		return &InitError{Component: "logger", Err: err}
	}

	app.editor = editor.New(DemoDocument(), cfg)

	if app.opts.Watch && app.opts.ConfigPath != "" {
		w, err := watcher.New()
		if err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		app.watcher = w
		if err := w.Watch(app.opts.ConfigPath); err != nil {
			return &InitError{Component: "watcher", Err: err}
		}
		w.OnChange(app.onConfigChange)
		w.Start()
	}
	return nil
}

func (app *Application) initLogging(cfg config.LogConfig) error {
	var out io.Writer = io.Discard
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		app.logOut = f
		out = f
	}
	logger.Init(logger.Config{Level: cfg.Level, DisabledTags: cfg.DisabledTags}, out)
	return nil
}

// onConfigChange runs on the watcher goroutine. The new configuration is
// handed to the event loop, replacing any reload not yet applied.
func (app *Application) onConfigChange(ev watcher.Event) {
	log := logger.WithTag("config")
	if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
		log.Info("config file removed, keeping current settings", "path", ev.Path)
		return
	}

	cfg, err := config.Load(ev.Path)
	if err != nil {
		log.Warn("config reload failed", "path", ev.Path, "err", err)
		return
	}
	if app.opts.LogLevel != "" {
		cfg.Log.Level = app.opts.LogLevel
	}

	select {
	case <-app.reloads:
	default:
	}
	select {
	case app.reloads <- cfg:
	default:
	}
}

// SetBackend sets the display backend. Must be called before Run.
func (app *Application) SetBackend(b backend.Backend) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.backend = b
	return nil
}

// Run starts the main loop and blocks until the user quits or Shutdown is
// called. Quitting returns ErrQuit.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	b := app.backend
	app.mu.Unlock()
	if b == nil {
		return ErrNoBackend
	}

	if err := b.Init(); err != nil {
		return &InitError{Component: "backend", Err: err}
	}
	defer b.Shutdown()

	w, h := b.Size()
	app.pointer = backend.NewPointer()
	app.raster = backend.NewRaster(w, h, app.pointer.CellWidth, app.pointer.CellHeight)
	app.fitView()

	events := make(chan backend.Event)
	go app.poll(b, events)

	logger.WithTag("app").Info("started", "session", app.editor.Session().ID(), "width", w, "height", h)
	return app.eventLoop(b, events)
}

func (app *Application) poll(b backend.Backend, events chan<- backend.Event) {
	for {
		ev := b.PollEvent()
		select {
		case events <- ev:
		case <-app.done:
			return
		}
	}
}

func (app *Application) eventLoop(b backend.Backend, events <-chan backend.Event) error {
	app.editor.Invalidate()
	app.paint(b)

	for {
		select {
		case <-app.done:
			return nil

		case ev := <-events:
			if err := app.handleEvent(ev); err != nil {
				return err
			}

		case cfg := <-app.reloads:
			app.applyConfig(cfg)
		}
		app.paint(b)
	}
}

// handleEvent routes one backend event. A panic in the editor is logged
// and the event dropped.
func (app *Application) handleEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			perr := &RecoveredPanicError{Value: r, Stack: string(debug.Stack())}
			logger.WithTag("app").Error("event handler panicked", "err", perr)
			err = nil
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		for _, q := range quitKeys {
			if q.Matches(ev.Key) {
				return ErrQuit
			}
		}
		app.editor.HandleKey(ev.Key)

	case backend.EventMouse:
		if mev, ok := app.pointer.Translate(ev); ok {
			app.editor.HandleMouse(mev)
		}

	case backend.EventResize:
		app.raster.Resize(ev.Width, ev.Height)
		app.fitView()
		app.editor.Invalidate()
	}
	return nil
}

func (app *Application) applyConfig(cfg config.Config) {
	app.mu.Lock()
	app.cfg = cfg
	app.mu.Unlock()

	app.editor.SetConfig(cfg)
	if level, ok := logger.ParseLevel(cfg.Log.Level); ok {
		logger.SetLevel(level)
	}
	logger.WithTag("config").Info("configuration reloaded")
}

func (app *Application) fitView() {
	vp := FitViewport(app.raster.Bounds(), demoExtent, viewMargin)
	app.editor.Session().SetViewport(vp)
}

func (app *Application) paint(b backend.Backend) {
	if !app.editor.NeedsPaint() {
		return
	}
	app.editor.Paint(app.raster)
	n := app.raster.Flush(b)
	logger.WithTag("render").Debug("frame", "cells", n)
}

// Snapshot renders the session to a PNG file of the given size with a
// caption naming the session and its selection. It cannot be used while
// Run is active.
func (app *Application) Snapshot(path string, width, height int) error {
	if app.running.Load() {
		return ErrAlreadyRunning
	}

	doc := app.editor.Session()
	c := canvas.New(width, height)

	saved := doc.Viewport()
	doc.SetViewport(FitViewport(c.Bounds(), demoExtent, viewMargin*2))
	defer doc.SetViewport(saved)

	app.editor.Paint(c)
	caption := fmt.Sprintf("%s  %d selected", doc.ID(), doc.Selection().Len())
	if err := c.Caption(caption, editor.DefaultTheme().Path); err != nil {
		return err
	}
	return c.SavePNG(path)
}

// Shutdown stops the main loop and releases the watcher and log file.
// It is safe to call more than once.
func (app *Application) Shutdown() {
	app.closeOnce.Do(func() {
		close(app.done)
		if app.watcher != nil {
			if err := app.watcher.Close(); err != nil {
				logger.WithTag("watcher").Warn("close failed", "err", err)
			}
		}
		if app.logOut != nil {
			_ = app.logOut.Close()
		}
	})
}

// IsRunning returns true if the main loop is running.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Editor returns the editor. It must not be used concurrently with Run.
func (app *Application) Editor() *editor.Editor {
	return app.editor
}

// Config returns the active configuration.
func (app *Application) Config() config.Config {
	app.mu.Lock()
	defer app.mu.Unlock()
	return app.cfg
}

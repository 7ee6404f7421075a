// Package app wires the binding manager to a surface and drives the tick
// loop. Each tick it applies file reloads, reconciles queued requests,
// dispatches the surface's pending events and redraws the status view.
package app

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"runtime/debug"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dshills/tickbind/internal/config"
	"github.com/dshills/tickbind/internal/config/watcher"
	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
	"github.com/dshills/tickbind/internal/metrics"
	"github.com/dshills/tickbind/internal/plugin/lua"
	"github.com/dshills/tickbind/internal/renderer/backend"
)

// App owns the process-wide components. Manager state is only touched by
// the goroutine running the tick loop.
type App struct {
	cfg       *config.Config
	logger    *zap.Logger
	manager   *binding.Manager
	surface   backend.Surface
	watcher   *watcher.Watcher // nil when reloading is disabled
	collector *metrics.Collector
	server    *metrics.Server // nil when metrics are disabled

	window  *Window
	scripts []*lua.Script
	last    string
	ticks   uint64
	running atomic.Bool

	// signals is nil in tests; Run then installs no signal handler.
	signals chan os.Signal
}

// New creates an App. watcher and server may be nil.
func New(
	cfg *config.Config,
	logger *zap.Logger,
	manager *binding.Manager,
	surface backend.Surface,
	w *watcher.Watcher,
	collector *metrics.Collector,
	server *metrics.Server,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger.Named("app"),
		manager:   manager,
		surface:   surface,
		watcher:   w,
		collector: collector,
		server:    server,
		last:      "none",
	}
}

// HandleSignals makes Run post a Closed event on SIGINT or SIGTERM.
func (a *App) HandleSignals() {
	a.signals = make(chan os.Signal, 1)
}

// Manager returns the binding manager.
func (a *App) Manager() *binding.Manager {
	return a.manager
}

// Window returns the window, or nil before Run.
func (a *App) Window() *Window {
	return a.window
}

// Ticks returns the number of completed ticks.
func (a *App) Ticks() uint64 {
	return a.ticks
}

// Run opens the window, starts configured scripts and loops until the
// window closes, ctx is done, or a tick fails. Reconcile and dispatch
// errors end the loop and are returned.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)
	defer a.shutdown()

	if err := a.start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	if a.watcher != nil {
		g.Go(func() error { return a.watcher.Run(gctx) })
	}
	if a.server != nil {
		g.Go(func() error { return a.server.Run(gctx) })
	}
	if a.signals != nil {
		signal.Notify(a.signals, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(a.signals)
		g.Go(func() error { return a.forwardSignals(gctx) })
	}
	g.Go(func() error {
		defer cancel()
		return a.loop(gctx)
	})

	return g.Wait()
}

// start opens the window and loads scripts.
func (a *App) start() error {
	w, err := OpenWindow(a.manager, a.surface, a.cfg.WindowBindings(), a.logger)
	if err != nil {
		return err
	}
	a.window = w

	for _, path := range a.cfg.Scripts.Files {
		s, err := lua.Load(a.manager, path,
			lua.WithLogger(a.logger),
			lua.WithTimeout(time.Duration(a.cfg.Scripts.TimeoutMS)*time.Millisecond),
		)
		if err != nil {
			return NewComponentError("script", path, err)
		}
		a.scripts = append(a.scripts, s)
		a.logger.Info("script loaded", zap.String("path", path), zap.Stringer("owner", s.Owner()))
	}
	return nil
}

func (a *App) forwardSignals(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-a.signals:
			a.logger.Info("signal received", zap.Stringer("signal", sig))
			a.surface.Post(event.Close())
		}
	}
}

func (a *App) loop(ctx context.Context) error {
	period := time.Duration(a.cfg.Loop.TickMS) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for a.window.IsOpen() {
		start := time.Now()
		if err := a.Tick(); err != nil {
			return err
		}
		a.collector.ObserveTick(time.Since(start))

		if !a.window.IsOpen() {
			break
		}
		select {
		case <-ctx.Done():
			a.logger.Info("stopping", zap.Error(ctx.Err()))
			return nil
		case <-ticker.C:
		}
	}
	a.logger.Info("window closed", zap.Uint64("ticks", a.ticks))
	return nil
}

// Tick runs one iteration of the loop: reloads, reconciliation, dispatch
// and display. A panicking callback is recovered and returned as an error.
func (a *App) Tick() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	a.applyChanges()

	if err := a.manager.Reconcile(); err != nil {
		return err
	}
	a.syncWatches()

	for a.window.IsOpen() {
		ev, ok := a.surface.PollNext()
		if !ok {
			break
		}
		if err := a.manager.Handle(ev); err != nil {
			return err
		}
		a.last = ev.String()
	}

	a.ticks++
	a.window.Display(a.manager, a.last, a.ticks)
	return nil
}

// applyChanges turns every pending file change into reload requests.
func (a *App) applyChanges() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case ch := <-a.watcher.Changes():
			a.reload(ch.Path)
		default:
			return
		}
	}
}

// reload queues a reload of path for every owner that loaded it. A file
// that no longer parses is reported and the owners keep their orders.
func (a *App) reload(path string) {
	owners := a.manager.OwnersOf(path)
	queued := 0
	for _, o := range owners {
		if err := a.manager.RequestReload(o, path); err != nil {
			a.logger.Warn("reload rejected, keeping previous bindings",
				zap.String("path", path), zap.Stringer("owner", o), zap.Error(err))
			continue
		}
		queued++
	}
	a.logger.Info("bindings changed",
		zap.String("path", path), zap.Int("owners", len(owners)), zap.Int("reloaded", queued))
}

// syncWatches tracks every file a live owner has loaded.
func (a *App) syncWatches() {
	if a.watcher == nil {
		return
	}
	for _, f := range a.manager.Files() {
		if err := a.watcher.Watch(f); err != nil && !errors.Is(err, watcher.ErrWatcherClosed) {
			a.logger.Warn("watch", zap.String("path", f), zap.Error(err))
		}
	}
}

// shutdown tears owners down in reverse order of creation and applies
// their final forgets.
func (a *App) shutdown() {
	for i := len(a.scripts) - 1; i >= 0; i-- {
		a.scripts[i].Close()
	}
	a.scripts = nil
	if a.window != nil {
		a.window.Close()
	}
	if err := a.manager.Reconcile(); err != nil {
		a.logger.Warn("final reconcile", zap.Error(err))
	}
	a.logger.Debug("shut down",
		zap.Int("orders", a.manager.OrderCount()),
		zap.Int("callbacks", a.manager.CallbackCount()),
		zap.Int("owners", a.manager.OwnerCount()))
}

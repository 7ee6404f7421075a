package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/tickbind/internal/config"
	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
	"github.com/dshills/tickbind/internal/input/codec"
	"github.com/dshills/tickbind/internal/input/key"
	"github.com/dshills/tickbind/internal/metrics"
	"github.com/dshills/tickbind/internal/renderer/backend"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

type fixture struct {
	app      *App
	cfg      *config.Config
	surface  *backend.NullBackend
	registry *prometheus.Registry
	dir      string
}

func newFixture(t *testing.T, window string) *fixture {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "window", window)

	cfg := config.Default()
	cfg.Bindings.Dir = dir
	cfg.Bindings.Watch = false
	cfg.Loop.TickMS = 1

	logger := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	require.NoError(t, err)

	m := binding.NewManager(binding.WithLogger(logger), binding.WithObserver(collector))
	surface := backend.NewNullBackend(80, 24)

	return &fixture{
		app:      New(cfg, logger, m, surface, nil, collector, nil),
		cfg:      cfg,
		surface:  surface,
		registry: reg,
		dir:      dir,
	}
}

func TestRun_ClosesOnClosedEvent(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	f.surface.Script(event.Press(key.KeyA, key.ModNone), event.Close())

	require.NoError(t, f.app.Run(context.Background()))

	assert.False(t, f.surface.IsOpen())
	assert.Equal(t, uint64(1), f.app.Ticks())
	assert.Zero(t, f.surface.Frames(), "a closed window is not drawn")
	m := f.app.Manager()
	assert.Zero(t, m.OrderCount(), "final reconcile applies the window's forgets")
	assert.Zero(t, m.CallbackCount())
	assert.Zero(t, m.OwnerCount())
}

func TestRun_ClosedOnLaterTick(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- f.app.Run(ctx) }()

	require.Eventually(t, func() bool { return f.surface.Frames() > 2 }, 2*time.Second, time.Millisecond)
	f.surface.Post(event.Close())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("Run did not return after Closed")
	}
	assert.False(t, f.surface.IsOpen())
}

func TestRun_ContextCancel(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	require.NoError(t, f.app.Run(ctx))
	assert.False(t, f.surface.IsOpen(), "shutdown closes the window")
	assert.Positive(t, f.app.Ticks())
}

func TestRun_MissingWindowFile(t *testing.T) {
	f := newFixture(t, "")
	f.cfg.Bindings.Window = "absent"

	err := f.app.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrIO)
	assert.False(t, f.surface.IsOpen())
}

func TestRun_BadWindowFile(t *testing.T) {
	f := newFixture(t, "window_close Exploded\n")

	err := f.app.Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, codec.ErrParse)
}

func TestRun_AlreadyRunning(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	f.app.running.Store(true)

	assert.ErrorIs(t, f.app.Run(context.Background()), ErrAlreadyRunning)
}

func TestTick_Display(t *testing.T) {
	f := newFixture(t, "window_close Closed\nquit KeyPressed Escape\n")
	require.NoError(t, f.app.start())

	require.NoError(t, f.app.Tick())
	assert.Equal(t, 1, f.surface.Frames())
	assert.Contains(t, f.surface.Line(0), "orders 2")
	assert.Contains(t, f.surface.Line(2), "last none")

	f.surface.Script(event.Text('x'))
	require.NoError(t, f.app.Tick())
	assert.Contains(t, f.surface.Line(2), "tick 2")
	assert.Contains(t, f.surface.Line(2), "TextEntered")
}

func TestTick_ContractViolation(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	require.NoError(t, f.app.start())

	m := f.app.Manager()
	o := m.NewOwner()
	require.NoError(t, m.RequestLoad(o, writeFile(t, f.dir, "orphan", "orphan KeyPressed Q\n")))

	f.surface.Script(event.Press(key.KeyQ, key.ModNone))
	err := f.app.Tick()

	var cv *binding.ContractViolationError
	require.ErrorAs(t, err, &cv)
	assert.ErrorIs(t, err, binding.ErrContractViolation)
}

func TestTick_RecoversCallbackPanic(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	require.NoError(t, f.app.start())

	m := f.app.Manager()
	o := m.NewOwner()
	require.NoError(t, m.BindCallback(o, "boom", binding.HandlerFunc(func(event.Event) { panic("boom") })))
	require.NoError(t, m.RequestLoad(o, writeFile(t, f.dir, "boom", "boom KeyPressed B\n")))

	f.surface.Script(event.Press(key.KeyB, key.ModNone))
	err := f.app.Tick()

	var perr *RecoveredPanicError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "boom", perr.Value)
}

func TestReload(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	require.NoError(t, f.app.start())
	require.NoError(t, f.app.Tick())

	m := f.app.Manager()
	require.Equal(t, 1, m.OrderCount())

	path := writeFile(t, f.dir, "window", "window_close Closed\nwindow_close KeyPressed Escape\n")
	f.app.reload(path)
	require.NoError(t, f.app.Tick())

	assert.Equal(t, 2, m.OrderCount(), "reload replaces rather than appends")

	f.surface.Script(event.Press(key.KeyEscape, key.ModNone))
	require.NoError(t, f.app.Tick())
	assert.False(t, f.app.Window().IsOpen())
}

func TestReload_InvalidFileKeepsBindings(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	require.NoError(t, f.app.start())
	require.NoError(t, f.app.Tick())

	m := f.app.Manager()
	require.Equal(t, 1, m.OrderCount())

	path := writeFile(t, f.dir, "window", "window_close Closd\n")
	f.app.reload(path)
	require.NoError(t, f.app.Tick(), "a bad edit does not end the loop")
	assert.Equal(t, 1, m.OrderCount())

	f.surface.Script(event.Close())
	require.NoError(t, f.app.Tick())
	assert.False(t, f.app.Window().IsOpen(), "the previous binding still fires")
}

func TestRun_Scripts(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	writeFile(t, f.dir, "player", "jump KeyPressed Space\n")
	script := writeFile(t, f.dir, "player.lua", `
hits = 0
tickbind.bind("jump", function(ev) hits = hits + 1 end)
tickbind.load("player")
`)
	f.cfg.Scripts.Files = []string{script}

	require.NoError(t, f.app.start())
	require.Len(t, f.app.scripts, 1)
	require.NoError(t, f.app.Tick())

	f.surface.Script(event.Press(key.KeySpace, key.ModNone), event.Press(key.KeySpace, key.ModNone))
	require.NoError(t, f.app.Tick())
	assert.Equal(t, "2", f.app.scripts[0].Global("hits").String())

	f.app.shutdown()
	m := f.app.Manager()
	assert.Zero(t, m.OrderCount())
	assert.Zero(t, m.OwnerCount())
}

func TestRun_ScriptError(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	f.cfg.Scripts.Files = []string{writeFile(t, f.dir, "bad.lua", "this is not lua")}

	err := f.app.Run(context.Background())

	var cerr *ComponentError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "script", cerr.Component)
	assert.Zero(t, f.app.Manager().OwnerCount())
}

func TestRun_Metrics(t *testing.T) {
	f := newFixture(t, "window_close Closed\n")
	f.surface.Script(event.Text('a'), event.Close())

	require.NoError(t, f.app.Run(context.Background()))

	count, err := testutil.GatherAndCount(f.registry, "tickbind_events_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count, "one series per kind")
	count, err = testutil.GatherAndCount(f.registry, "tickbind_tick_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

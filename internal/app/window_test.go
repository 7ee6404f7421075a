package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
	"github.com/dshills/tickbind/internal/renderer/backend"
)

func TestWindow(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "window", "window_close Closed\nwindow_close KeyPressed W ctrl\n")

	m := binding.NewManager(binding.WithLogger(zaptest.NewLogger(t)))
	surface := backend.NewNullBackend(80, 24)

	w, err := OpenWindow(m, surface, file, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.True(t, w.IsOpen())
	assert.True(t, m.IsLive(w.Owner()))
	assert.Equal(t, 0, m.OrderCount(), "loads wait for reconcile")

	require.NoError(t, m.Reconcile())
	assert.Equal(t, 2, m.OrderCount())

	require.NoError(t, m.Handle(event.New(event.LostFocus)))
	assert.True(t, w.IsOpen())

	require.NoError(t, m.Handle(event.Close()))
	assert.False(t, w.IsOpen())
	assert.False(t, surface.IsOpen())
	assert.False(t, m.IsLive(w.Owner()))
	assert.True(t, m.IsPendingDelete(w.Owner(), CloseBinding))
	assert.Zero(t, m.CallbackCount())

	require.NoError(t, m.Handle(event.Close()), "pending orders never fire")

	require.NoError(t, m.Reconcile())
	assert.Zero(t, m.OrderCount())

	w.Close()
}

func TestOpenWindow_NoSurface(t *testing.T) {
	m := binding.NewManager()
	_, err := OpenWindow(m, nil, "window", nil)
	assert.ErrorIs(t, err, ErrNoSurface)
	assert.Zero(t, m.OwnerCount())
}

func TestWindow_DisplayClosed(t *testing.T) {
	m := binding.NewManager()
	surface := backend.NewNullBackend(80, 24)
	w, err := OpenWindow(m, surface, "window", nil)
	require.NoError(t, err)

	w.Close()
	w.Display(m, "none", 1)
	assert.Zero(t, surface.Frames())
	assert.Zero(t, m.OwnerCount())
}

package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
	"github.com/dshills/tickbind/internal/renderer/backend"
)

// CloseBinding is the binding name the window closes itself on.
const CloseBinding = "window_close"

// Window is the owner that holds the drawing surface. It binds
// CloseBinding on open and closes the surface when that binding fires.
type Window struct {
	surface backend.Surface
	manager *binding.Manager
	owner   binding.Owner
	file    string
	logger  *zap.Logger
	closed  bool
}

// OpenWindow opens surface and registers the window as an owner of m.
// The bindings in file become active at the next reconciliation.
func OpenWindow(m *binding.Manager, surface backend.Surface, file string, logger *zap.Logger) (*Window, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := surface.Open(); err != nil {
		return nil, NewComponentError("window", "open surface", err)
	}

	w := &Window{
		surface: surface,
		manager: m,
		owner:   m.NewOwner(),
		file:    file,
		logger:  logger.Named("window"),
	}
	if err := m.BindCallback(w.owner, CloseBinding, binding.HandlerFunc(w.onClose)); err != nil {
		w.Close()
		return nil, NewComponentError("window", "bind", err)
	}
	if err := m.RequestLoad(w.owner, file); err != nil {
		w.Close()
		return nil, NewComponentError("window", "load", err)
	}
	w.logger.Debug("opened", zap.Stringer("owner", w.owner), zap.String("bindings", file))
	return w, nil
}

// Owner returns the window's owner handle.
func (w *Window) Owner() binding.Owner {
	return w.owner
}

// Surface returns the drawing surface.
func (w *Window) Surface() backend.Surface {
	return w.surface
}

// IsOpen reports whether the window is still open.
func (w *Window) IsOpen() bool {
	return !w.closed && w.surface.IsOpen()
}

func (w *Window) onClose(ev event.Event) {
	w.logger.Info("close requested", zap.Stringer("event", ev))
	w.Close()
}

// Close forgets the window's bindings, releases its owner and closes the
// surface. It is safe to call from inside a callback and more than once.
func (w *Window) Close() {
	if w.closed {
		return
	}
	w.closed = true

	names := w.manager.Names(w.owner)
	if !containsName(names, CloseBinding) {
		names = append(names, CloseBinding)
	}
	for _, name := range names {
		w.manager.RequestForget(w.owner, name)
	}
	w.manager.UnbindCallback(w.owner, CloseBinding)
	if err := w.manager.ReleaseOwner(w.owner); err != nil {
		w.logger.Warn("release owner", zap.Error(err))
	}
	w.surface.Close()
	w.logger.Debug("closed", zap.Stringer("owner", w.owner))
}

// Display draws a status view of m and presents it.
func (w *Window) Display(m *binding.Manager, last string, ticks uint64) {
	if !w.IsOpen() {
		return
	}
	forgets, loads := m.Pending()

	w.surface.Clear()
	w.surface.DrawText(0, 0, fmt.Sprintf("tickbind  owners %d  orders %d  callbacks %d",
		m.OwnerCount(), m.OrderCount(), m.CallbackCount()))
	w.surface.DrawText(0, 1, fmt.Sprintf("pending  forgets %d  loads %d", forgets, loads))
	w.surface.DrawText(0, 2, fmt.Sprintf("tick %d  last %s", ticks, last))
	w.surface.Show()
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

package lua

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/binding"
)

// ModuleName is the global table scripts use to reach the binding manager.
const ModuleName = "tickbind"

// Script is a binding owner implemented in Lua. It must be used from the
// goroutine that drives the binding manager.
type Script struct {
	path    string
	dir     string
	state   *State
	manager *binding.Manager
	owner   binding.Owner
	logger  *zap.Logger

	// bound holds the names this script registered callbacks for.
	bound map[string]struct{}

	closed bool
}

// ScriptOption configures a Script.
type ScriptOption func(*scriptConfig)

type scriptConfig struct {
	logger  *zap.Logger
	timeout time.Duration
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ScriptOption {
	return func(c *scriptConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds each chunk and callback execution.
func WithTimeout(d time.Duration) ScriptOption {
	return func(c *scriptConfig) {
		c.timeout = d
	}
}

// Load creates an owner for the script at path and runs it. Binding files
// the script loads are resolved relative to the script's directory.
// If the script fails, everything it registered is torn down.
func Load(m *binding.Manager, path string, opts ...ScriptOption) (*Script, error) {
	cfg := scriptConfig{logger: zap.NewNop(), timeout: DefaultExecutionTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Script{
		path:    path,
		dir:     filepath.Dir(path),
		state:   NewState(WithExecutionTimeout(cfg.timeout)),
		manager: m,
		owner:   m.NewOwner(),
		logger:  cfg.logger.Named("lua").With(zap.String("script", filepath.Base(path))),
		bound:   make(map[string]struct{}),
	}
	s.state.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"bind":   s.luaBind,
		"unbind": s.luaUnbind,
		"load":   s.luaLoad,
		"forget": s.luaForget,
		"log":    s.luaLog,
	})

	if err := s.state.DoFile(path); err != nil {
		s.Close()
		return nil, fmt.Errorf("run script %s: %w", path, err)
	}
	s.logger.Debug("script loaded", zap.Stringer("owner", s.owner), zap.Int("callbacks", len(s.bound)))
	return s, nil
}

// Path returns the script file.
func (s *Script) Path() string {
	return s.path
}

// Owner returns the script's owner handle.
func (s *Script) Owner() binding.Owner {
	return s.owner
}

// Bound returns the names the script currently has callbacks for, sorted.
func (s *Script) Bound() []string {
	names := make([]string, 0, len(s.bound))
	for n := range s.bound {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Global returns a global variable of the script.
func (s *Script) Global(name string) lua.LValue {
	return s.state.GetGlobal(name)
}

// Close queues forgets for every name the script loaded or bound, unbinds its
// callbacks, releases its owner and closes the Lua state.
func (s *Script) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, name := range s.manager.Names(s.owner) {
		s.manager.RequestForget(s.owner, name)
	}
	for name := range s.bound {
		s.manager.RequestForget(s.owner, name)
		s.manager.UnbindCallback(s.owner, name)
	}
	if err := s.manager.ReleaseOwner(s.owner); err != nil {
		s.logger.Warn("release owner", zap.Error(err))
	}
	s.state.Close()
}

func (s *Script) luaBind(L *lua.LState) int {
	name := L.CheckString(1)
	fn := L.CheckFunction(2)

	h := binding.HandlerFunc(func(ev event.Event) {
		if err := s.state.CallFunction(fn, eventTable(s.state.L, ev)); err != nil {
			s.logger.Warn("callback failed", zap.String("name", name), zap.Error(err))
		}
	})
	if err := s.manager.BindCallback(s.owner, name, h); err != nil {
		L.RaiseError("%v", err)
		return 0
	}
	s.bound[name] = struct{}{}
	return 0
}

// luaUnbind forgets the name's orders before dropping its callback, so an
// order loaded earlier cannot fire into a missing callback.
func (s *Script) luaUnbind(L *lua.LState) int {
	name := L.CheckString(1)
	s.manager.RequestForget(s.owner, name)
	delete(s.bound, name)
	L.Push(lua.LBool(s.manager.UnbindCallback(s.owner, name)))
	return 1
}

func (s *Script) luaLoad(L *lua.LState) int {
	file := L.CheckString(1)
	if !filepath.IsAbs(file) {
		file = filepath.Join(s.dir, file)
	}
	if err := s.manager.RequestLoad(s.owner, file); err != nil {
		L.RaiseError("%v", err)
	}
	return 0
}

func (s *Script) luaForget(L *lua.LState) int {
	name := L.CheckString(1)
	s.manager.RequestForget(s.owner, name)
	return 0
}

func (s *Script) luaLog(L *lua.LState) int {
	s.logger.Info(L.CheckString(1))
	return 0
}

// eventTable converts ev into the table callbacks receive.
func eventTable(L *lua.LState, ev event.Event) *lua.LTable {
	t := L.NewTable()
	t.RawSetString("kind", lua.LString(ev.Kind.String()))
	if ev.Kind.IsKeyboard() {
		t.RawSetString("key", lua.LString(ev.Key.String()))
	}
	t.RawSetString("alt", lua.LBool(ev.Mods.Alt()))
	t.RawSetString("ctrl", lua.LBool(ev.Mods.Ctrl()))
	t.RawSetString("shift", lua.LBool(ev.Mods.Shift()))
	t.RawSetString("system", lua.LBool(ev.Mods.System()))
	if ev.Rune != 0 {
		t.RawSetString("rune", lua.LString(string(ev.Rune)))
	}
	t.RawSetString("width", lua.LNumber(ev.Width))
	t.RawSetString("height", lua.LNumber(ev.Height))
	t.RawSetString("x", lua.LNumber(ev.X))
	t.RawSetString("y", lua.LNumber(ev.Y))
	t.RawSetString("delta", lua.LNumber(ev.Delta))
	if ev.Text != "" {
		t.RawSetString("text", lua.LString(ev.Text))
	}
	return t
}

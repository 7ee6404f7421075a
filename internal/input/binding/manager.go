package binding

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/codec"
)

// Observer receives activity reports from a Manager.
type Observer interface {
	// EventHandled is called after every Handle with the number of
	// callbacks that fired.
	EventHandled(kind event.Kind, fired int)

	// Reconciled is called after every successful Reconcile.
	Reconciled(removed, added, total int)
}

type nopObserver struct{}

func (nopObserver) EventHandled(event.Kind, int) {}
func (nopObserver) Reconciled(int, int, int)     {}

// Manager binds owners' named interests to events and dispatches matching
// events to their callbacks.
//
// Callback changes take effect immediately. Order changes are queued and
// applied by Reconcile, which the driving loop calls once per tick before
// dispatching that tick's events. A Manager is not safe for concurrent
// use; every call must come from the goroutine that drives the loop.
type Manager struct {
	id       string
	logger   *zap.Logger
	parser   *Parser
	observer Observer

	owners    *ownerSlots
	orders    *BindingTable
	callbacks *CallbackTable
	queue     *RequestQueue

	// loaded records, per owner and absolute file path, the binding names
	// that file produced. Used for reloads.
	loaded map[Owner]map[string][]string

	dispatchDepth int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithCodecs sets the codec tables binding files are checked against.
func WithCodecs(set codec.Set) Option {
	return func(m *Manager) {
		m.parser = NewParser(set)
	}
}

// WithObserver sets the activity observer.
func WithObserver(o Observer) Option {
	return func(m *Manager) {
		if o != nil {
			m.observer = o
		}
	}
}

// NewManager creates a Manager. Construct one per process and pass it to
// every component that needs it.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		id:        uuid.NewString(),
		logger:    zap.NewNop(),
		parser:    NewParser(DefaultCodecs()),
		observer:  nopObserver{},
		owners:    newOwnerSlots(),
		orders:    NewBindingTable(),
		callbacks: NewCallbackTable(),
		queue:     NewRequestQueue(),
		loaded:    make(map[Owner]map[string][]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.Named("binding").With(zap.String("manager", m.id))
	return m
}

// ID returns the manager's instance id.
func (m *Manager) ID() string {
	return m.id
}

// NewOwner issues a handle for a new consumer.
func (m *Manager) NewOwner() Owner {
	o := m.owners.acquire()
	m.logger.Debug("owner acquired", zap.Stringer("owner", o))
	return o
}

// ReleaseOwner invalidates an owner handle. The owner should have queued
// forgets for its bindings and unbound its callbacks first. Loads still
// queued for the owner are dropped at the next reconciliation.
func (m *Manager) ReleaseOwner(o Owner) error {
	if !m.owners.release(o) {
		return fmt.Errorf("release %s: %w", o, ErrStaleOwner)
	}
	delete(m.loaded, o)
	m.logger.Debug("owner released", zap.Stringer("owner", o))
	return nil
}

// IsLive reports whether o is a currently issued handle.
func (m *Manager) IsLive(o Owner) bool {
	return m.owners.isLive(o)
}

// BindCallback registers h for the binding name. It takes effect immediately.
func (m *Manager) BindCallback(o Owner, name string, h Handler) error {
	if !m.owners.isLive(o) {
		return fmt.Errorf("bind %q for %s: %w", name, o, ErrStaleOwner)
	}
	if name == "" {
		return ErrEmptyName
	}
	if err := m.callbacks.Add(MakeKey(o, name), h); err != nil {
		return fmt.Errorf("bind %q for %s: %w", name, o, err)
	}
	return nil
}

// UnbindCallback removes the callback for the binding name immediately.
// Returns false if none was registered.
func (m *Manager) UnbindCallback(o Owner, name string) bool {
	return m.callbacks.Remove(MakeKey(o, name))
}

// RequestLoad queues file to be parsed into orders for o at the next
// reconciliation. Each binding in the file is stored under the key for o
// and the binding's own name.
func (m *Manager) RequestLoad(o Owner, file string) error {
	if !m.owners.isLive(o) {
		return fmt.Errorf("load %s for %s: %w", file, o, ErrStaleOwner)
	}
	m.queue.RequestLoad(o, file)
	return nil
}

// RequestForget queues removal of every order o loaded under name. Until
// the next reconciliation those orders stay stored but never fire.
func (m *Manager) RequestForget(o Owner, name string) {
	m.queue.RequestForget(o, name)
}

// RequestReload parses file now and, if it is valid, queues its bindings to
// replace the orders o loaded from that file at the next reconciliation.
// Orders o loaded from other files are untouched, even under the same name.
// When the file cannot be read or parsed nothing is queued, the error is
// returned and the previous orders stay in place.
func (m *Manager) RequestReload(o Owner, file string) error {
	if !m.owners.isLive(o) {
		return fmt.Errorf("reload %s for %s: %w", file, o, ErrStaleOwner)
	}
	bindings, err := m.parser.ParseFile(file)
	if err != nil {
		return fmt.Errorf("reload %s for %s: %w", file, o, err)
	}
	m.queue.requestReplace(o, absPath(file), bindings)
	return nil
}

// OwnersOf returns the live owners that loaded file, in handle order.
func (m *Manager) OwnersOf(file string) []Owner {
	path := absPath(file)
	var out []Owner
	for o, files := range m.loaded {
		if _, ok := files[path]; ok && m.owners.isLive(o) {
			out = append(out, o)
		}
	}
	sortOwners(out)
	return out
}

// Names returns the binding names o has loaded from any file, sorted.
func (m *Manager) Names(o Owner) []string {
	var out []string
	for _, names := range m.loaded[o] {
		for _, n := range names {
			out = appendUnique(out, n)
		}
	}
	sort.Strings(out)
	return out
}

// Files returns the absolute paths of every binding file currently loaded
// by a live owner.
func (m *Manager) Files() []string {
	seen := make(map[string]struct{})
	var out []string
	for o, files := range m.loaded {
		if !m.owners.isLive(o) {
			continue
		}
		for f := range files {
			if _, dup := seen[f]; !dup {
				seen[f] = struct{}{}
				out = append(out, f)
			}
		}
	}
	return out
}

// Reconcile applies queued requests: first every pending forget, then
// every pending reload, then every pending load. A load that fails commits nothing for its file and
// the error is returned; loads still queued behind it are dropped.
// Reconcile must not be called from inside a callback.
func (m *Manager) Reconcile() error {
	if m.dispatchDepth > 0 {
		return ErrReentrant
	}
	if m.queue.Empty() {
		return nil
	}

	removed := 0
	for _, req := range m.queue.takeDeletes() {
		removed += m.orders.RemoveAll(MakeKey(req.owner, req.name))
		m.dropLoaded(req.owner, req.name)
	}

	added := 0
	for _, req := range m.queue.takeReplaces() {
		if !m.owners.isLive(req.owner) {
			m.logger.Warn("skipping reload for released owner",
				zap.Stringer("owner", req.owner), zap.String("file", req.path))
			continue
		}
		r, a := m.replace(req)
		removed += r
		added += a
	}

	loads := m.queue.takeLoads()
	for i, req := range loads {
		if !m.owners.isLive(req.owner) {
			m.logger.Warn("skipping load for released owner",
				zap.Stringer("owner", req.owner), zap.String("file", req.file))
			continue
		}

		n, err := m.load(req.owner, req.file)
		if err != nil {
			if dropped := len(loads) - i - 1; dropped > 0 {
				m.logger.Warn("dropping queued loads after failure", zap.Int("dropped", dropped))
			}
			m.logger.Error("binding load failed", zap.String("file", req.file), zap.Error(err))
			return fmt.Errorf("reconcile: %w", err)
		}
		added += n
	}

	m.logger.Debug("reconciled",
		zap.Int("removed", removed), zap.Int("added", added), zap.Int("orders", m.orders.Len()))
	m.observer.Reconciled(removed, added, m.orders.Len())
	return nil
}

// load parses file and inserts its orders for o.
func (m *Manager) load(o Owner, file string) (int, error) {
	bindings, err := m.parser.ParseFile(file)
	if err != nil {
		return 0, err
	}
	m.insert(o, absPath(file), bindings)
	return len(bindings), nil
}

// replace removes the orders o loaded from req.path and inserts the new set.
func (m *Manager) replace(req replaceRequest) (removed, added int) {
	files := m.loaded[req.owner]
	for _, name := range files[req.path] {
		removed += m.orders.RemoveFrom(MakeKey(req.owner, name), req.path)
	}
	if files != nil {
		delete(files, req.path)
	}
	m.insert(req.owner, req.path, req.bindings)
	return removed, len(req.bindings)
}

// insert adds bindings as orders for o and records which names path produced.
func (m *Manager) insert(o Owner, path string, bindings []Binding) {
	names := make([]string, 0, len(bindings))
	for _, b := range bindings {
		m.orders.Add(Order{Key: MakeKey(o, b.Name), Event: b.Event, Source: path})
		names = appendUnique(names, b.Name)
	}

	files := m.loaded[o]
	if files == nil {
		files = make(map[string][]string)
		m.loaded[o] = files
	}
	if _, ok := files[path]; !ok {
		files[path] = nil
	}
	for _, n := range names {
		files[path] = appendUnique(files[path], n)
	}
}

// dropLoaded forgets that o loaded name from any file.
func (m *Manager) dropLoaded(o Owner, name string) {
	files := m.loaded[o]
	for path, names := range files {
		kept := names[:0]
		for _, n := range names {
			if n != name {
				kept = append(kept, n)
			}
		}
		files[path] = kept
	}
}

// Handle dispatches ev to the callback of every order that matches it and
// is not pending removal. A matching order without a callback stops
// dispatch and returns a ContractViolationError.
func (m *Manager) Handle(ev event.Event) error {
	m.dispatchDepth++
	defer func() { m.dispatchDepth-- }()

	fired := 0
	for i := 0; i < m.orders.Len(); i++ {
		o := m.orders.At(i)
		if m.queue.IsPendingDelete(o.Key) {
			continue
		}
		if !o.Event.Matches(ev) {
			continue
		}

		h, ok := m.callbacks.Get(o.Key)
		if !ok {
			return &ContractViolationError{Key: o.Key, Event: ev}
		}
		h.HandleEvent(ev)
		fired++
	}

	m.observer.EventHandled(ev.Kind, fired)
	return nil
}

// Orders returns a snapshot of the stored orders in dispatch order.
func (m *Manager) Orders() []Order {
	return m.orders.All()
}

// OrderCount returns the number of stored orders, including those pending
// removal.
func (m *Manager) OrderCount() int {
	return m.orders.Len()
}

// CallbackCount returns the number of registered callbacks.
func (m *Manager) CallbackCount() int {
	return m.callbacks.Len()
}

// OwnerCount returns the number of live owners.
func (m *Manager) OwnerCount() int {
	return m.owners.count()
}

// Pending returns the number of queued forgets and file loads, reloads
// included.
func (m *Manager) Pending() (forgets, loads int) {
	return m.queue.PendingDeletes(), m.queue.PendingLoads() + m.queue.PendingReloads()
}

// IsPendingDelete reports whether orders for (o, name) are marked for removal.
func (m *Manager) IsPendingDelete(o Owner, name string) bool {
	return m.queue.IsPendingDelete(MakeKey(o, name))
}

// Close drops every order, callback and queued request.
func (m *Manager) Close() {
	m.orders.Clear()
	m.callbacks.Clear()
	m.queue.clear()
	m.loaded = make(map[Owner]map[string][]string)
	m.logger.Debug("closed")
}

func absPath(file string) string {
	if p, err := filepath.Abs(file); err == nil {
		return p
	}
	return filepath.Clean(file)
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

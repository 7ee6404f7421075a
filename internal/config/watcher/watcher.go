// Package watcher reports content changes to binding files.
//
// The watcher subscribes to the directories holding tracked files through
// fsnotify, debounces bursts of writes, and compares a sha256 of the new
// content against the last one seen so that saves which leave a file
// unchanged produce nothing. Changes are delivered on a channel; the
// consumer decides when to act on them.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/minio/sha256-simd"
	"go.uber.org/zap"
)

// ErrWatcherClosed is returned when using a watcher after Stop.
var ErrWatcherClosed = errors.New("watcher closed")

// Change reports that a tracked file has new content.
type Change struct {
	// Path is the absolute path to the changed file.
	Path string

	// Sum is the sha256 of the new content.
	Sum [sha256.Size]byte

	// Time is when the last event of the burst arrived.
	Time time.Time
}

// Watcher tracks a set of files and reports content changes.
type Watcher struct {
	mu sync.Mutex

	fsw *fsnotify.Watcher

	// files maps tracked paths to their last known content hash.
	files map[string][sha256.Size]byte

	// dirs counts tracked files per watched directory.
	dirs map[string]int

	changes chan Change
	logger  *zap.Logger

	debounce time.Duration
	pending  map[string]time.Time

	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
	closed  bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long a file must stay quiet before it is checked.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithBuffer sets the capacity of the change channel.
func WithBuffer(n int) Option {
	return func(w *Watcher) {
		if n > 0 {
			w.changes = make(chan Change, n)
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// New creates a watcher. It does nothing until Start.
func New(opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		files:    make(map[string][sha256.Size]byte),
		dirs:     make(map[string]int),
		changes:  make(chan Change, 16),
		logger:   zap.NewNop(),
		debounce: 100 * time.Millisecond,
		pending:  make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named("watcher")
	return w, nil
}

// Watch starts tracking path. A file that does not exist yet is tracked
// and reported once it is created.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; ok {
		return nil
	}

	dir := filepath.Dir(abs)
	if w.dirs[dir] == 0 {
		if err := w.fsw.Add(dir); err != nil {
			return err
		}
	}
	w.dirs[dir]++

	sum, _ := hashFile(abs)
	w.files[abs] = sum
	w.logger.Debug("watching", zap.String("path", abs))
	return nil
}

// Unwatch stops tracking path.
func (w *Watcher) Unwatch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}
	if _, ok := w.files[abs]; !ok {
		return nil
	}
	delete(w.files, abs)
	delete(w.pending, abs)

	dir := filepath.Dir(abs)
	w.dirs[dir]--
	if w.dirs[dir] <= 0 {
		delete(w.dirs, dir)
		return w.fsw.Remove(dir)
	}
	return nil
}

// WatchedFiles returns the tracked paths.
func (w *Watcher) WatchedFiles() []string {
	w.mu.Lock()
	defer w.mu.Unlock()

	files := make([]string, 0, len(w.files))
	for path := range w.files {
		files = append(files, path)
	}
	return files
}

// Changes returns the channel changes are delivered on.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Start begins processing file system events.
func (w *Watcher) Start() {
	w.mu.Lock()
	if w.running || w.closed {
		w.mu.Unlock()
		return
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.loop()
}

// Stop halts event processing and releases the fsnotify watcher.
// A stopped watcher cannot be restarted.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	if w.running {
		w.cancel()
		w.running = false
	}
	w.mu.Unlock()

	w.wg.Wait()
	_ = w.fsw.Close()
}

// Run starts the watcher and blocks until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	w.Start()
	<-ctx.Done()
	w.Stop()
	return nil
}

// IsRunning returns whether the watcher is active.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var tick <-chan time.Time
	if w.debounce > 0 {
		ticker := time.NewTicker(w.debounce)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.record(ev)
			if w.debounce == 0 {
				w.flush(time.Now())
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn("fsnotify error", zap.Error(err))

		case now := <-tick:
			w.flush(now.Add(-w.debounce))
		}
	}
}

// record marks a tracked file as touched.
func (w *Watcher) record(ev fsnotify.Event) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.files[path]; ok {
		w.pending[path] = time.Now()
	}
}

// flush checks every pending file last touched at or before cutoff and
// emits a Change for those whose content hash moved.
func (w *Watcher) flush(cutoff time.Time) {
	var out []Change

	w.mu.Lock()
	for path, at := range w.pending {
		if at.After(cutoff) {
			continue
		}
		delete(w.pending, path)

		sum, err := hashFile(path)
		if err != nil {
			// Mid-save renames leave the path briefly missing; the
			// following create is picked up on its own.
			w.logger.Debug("skipping unreadable file", zap.String("path", path), zap.Error(err))
			continue
		}
		if sum == w.files[path] {
			continue
		}
		w.files[path] = sum
		out = append(out, Change{Path: path, Sum: sum, Time: at})
	}
	w.mu.Unlock()

	for _, c := range out {
		select {
		case w.changes <- c:
			w.logger.Debug("file changed", zap.String("path", c.Path))
		case <-w.ctx.Done():
			return
		}
	}
}

func hashFile(path string) ([sha256.Size]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return [sha256.Size]byte{}, err
	}
	return sha256.Sum256(data), nil
}

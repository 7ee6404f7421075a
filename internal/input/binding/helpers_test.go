package binding

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/dshills/tickbind/internal/event"
)

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// recorder counts the events it receives.
type recorder struct {
	events []event.Event
}

func (r *recorder) HandleEvent(ev event.Event) {
	r.events = append(r.events, ev)
}

func (r *recorder) count() int {
	return len(r.events)
}

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithLogger(zaptest.NewLogger(t))}, opts...)
	return NewManager(opts...)
}

// countingObserver records Observer calls.
type countingObserver struct {
	handled    int
	fired      int
	reconciles int
	lastTotal  int
}

func (o *countingObserver) EventHandled(_ event.Kind, fired int) {
	o.handled++
	o.fired += fired
}

func (o *countingObserver) Reconciled(_, _, total int) {
	o.reconciles++
	o.lastTotal = total
}

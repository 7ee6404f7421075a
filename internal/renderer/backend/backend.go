// Package backend provides the windowing surface the tick loop drives.
//
// A Surface produces input events and displays frames. Terminal renders to
// a tcell screen; NullBackend is a scripted in-memory surface for tests and
// headless runs.
package backend

import (
	"sync"

	"github.com/dshills/tickbind/internal/event"
)

// Surface is a window-like event source and display.
type Surface interface {
	// Open acquires the display. Must be called before any other method.
	Open() error

	// Close releases the display. IsOpen reports false afterwards.
	Close()

	// IsOpen reports whether the surface is open.
	IsOpen() bool

	// PollNext returns the next pending event without blocking.
	PollNext() (event.Event, bool)

	// Post queues a synthetic event. Safe to call from any goroutine.
	Post(ev event.Event)

	// Clear blanks the back buffer.
	Clear()

	// DrawText writes text at column x, row y of the back buffer.
	DrawText(x, y int, text string)

	// Show presents the back buffer.
	Show()

	// Size returns the current dimensions.
	Size() (width, height int)
}

// NullBackend is a scripted surface. Events are returned in the order they
// were posted.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	open          bool
	events        []event.Event
	lines         map[int]string
	frames        int
}

// NewNullBackend creates a null surface with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		lines:  make(map[int]string),
	}
}

func (b *NullBackend) Open() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = true
	return nil
}

func (b *NullBackend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
}

func (b *NullBackend) IsOpen() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.open
}

func (b *NullBackend) PollNext() (event.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.events) == 0 {
		return event.Event{}, false
	}
	ev := b.events[0]
	b.events = b.events[1:]
	return ev, true
}

func (b *NullBackend) Post(ev event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, ev)
}

// Script queues several events at once.
func (b *NullBackend) Script(evs ...event.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, evs...)
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = make(map[int]string)
}

func (b *NullBackend) DrawText(x, y int, text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return
	}
	b.lines[y] = text
}

func (b *NullBackend) Show() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frames++
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// Frames returns how many times Show was called.
func (b *NullBackend) Frames() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Line returns the text last drawn on row y.
func (b *NullBackend) Line(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lines[y]
}

// Pending returns the number of queued events.
func (b *NullBackend) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.events)
}

// Resize changes the dimensions and queues a Resized event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width = width
	b.height = height
	b.events = append(b.events, event.Resize(width, height))
}

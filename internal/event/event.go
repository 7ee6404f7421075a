package event

import (
	"fmt"

	"github.com/dshills/tickbind/internal/input/key"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonMiddle
	MouseButtonRight
)

// Event describes one input event, or the event an order waits for.
// Events are immutable values; only the fields relevant to Kind are set.
type Event struct {
	// Kind discriminates the event.
	Kind Kind

	// Key and Mods are set for keyboard kinds.
	Key  key.Key
	Mods key.Modifier

	// Rune is the character for TextEntered.
	Rune rune

	// Width and Height are set for Resized.
	Width, Height int

	// X and Y are the pointer position for mouse kinds.
	X, Y int

	// Button is set for mouse button kinds.
	Button MouseButton

	// Delta is the wheel offset for MouseWheelScrolled.
	Delta int

	// Text is the pasted content for Paste.
	Text string
}

// New returns an event of the given kind with no payload.
func New(kind Kind) Event {
	return Event{Kind: kind}
}

// Close returns a Closed event.
func Close() Event {
	return Event{Kind: Closed}
}

// Press returns a KeyPressed event.
func Press(k key.Key, mods key.Modifier) Event {
	return Event{Kind: KeyPressed, Key: k, Mods: mods}
}

// Release returns a KeyReleased event.
func Release(k key.Key, mods key.Modifier) Event {
	return Event{Kind: KeyReleased, Key: k, Mods: mods}
}

// Text returns a TextEntered event.
func Text(r rune) Event {
	return Event{Kind: TextEntered, Rune: r}
}

// Resize returns a Resized event.
func Resize(width, height int) Event {
	return Event{Kind: Resized, Width: width, Height: height}
}

// Matches reports whether the incoming event satisfies the order described
// by e. Kinds must be equal; signal kinds need nothing more; keyboard kinds
// also need the same key code and all four modifier flags equal. Every
// other kind never matches.
func (e Event) Matches(incoming Event) bool {
	if e.Kind != incoming.Kind {
		return false
	}
	switch {
	case e.Kind.IsSignal():
		return true
	case e.Kind.IsKeyboard():
		return e.Key == incoming.Key && e.Mods == incoming.Mods
	default:
		return false
	}
}

// String returns the event in binding-file notation, e.g. "KeyPressed A ctrl".
func (e Event) String() string {
	if !e.Kind.IsKeyboard() {
		return e.Kind.String()
	}
	s := e.Kind.String() + " " + e.Key.String()
	for _, tok := range e.Mods.Tokens() {
		s += " " + tok
	}
	return s
}

// GoString implements fmt.GoStringer for debugging.
func (e Event) GoString() string {
	return fmt.Sprintf("Event{Kind: %s, Key: %s, Mods: %q, Rune: %q}",
		e.Kind, e.Key, e.Mods.String(), e.Rune)
}

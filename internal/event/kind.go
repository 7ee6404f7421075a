package event

import (
	"fmt"

	"github.com/dshills/tickbind/internal/input/codec"
)

// Kind discriminates input events.
type Kind uint8

const (
	// Closed is the request to close the window or surface.
	Closed Kind = iota

	// Resized reports a new surface size.
	Resized

	// LostFocus reports the surface lost input focus.
	LostFocus

	// GainedFocus reports the surface gained input focus.
	GainedFocus

	// TextEntered carries a character with no dedicated key code.
	TextEntered

	// KeyPressed reports a key going down.
	KeyPressed

	// KeyReleased reports a key coming up.
	KeyReleased

	// MouseWheelScrolled reports wheel movement.
	MouseWheelScrolled

	// MouseButtonPressed reports a mouse button going down.
	MouseButtonPressed

	// MouseButtonReleased reports a mouse button coming up.
	MouseButtonReleased

	// MouseMoved reports pointer motion.
	MouseMoved

	// MouseEntered reports the pointer entering the surface.
	MouseEntered

	// MouseLeft reports the pointer leaving the surface.
	MouseLeft

	// Paste carries pasted text.
	Paste

	kindCount
)

var kindNames = [kindCount]string{
	Closed:              "Closed",
	Resized:             "Resized",
	LostFocus:           "LostFocus",
	GainedFocus:         "GainedFocus",
	TextEntered:         "TextEntered",
	KeyPressed:          "KeyPressed",
	KeyReleased:         "KeyReleased",
	MouseWheelScrolled:  "MouseWheelScrolled",
	MouseButtonPressed:  "MouseButtonPressed",
	MouseButtonReleased: "MouseButtonReleased",
	MouseMoved:          "MouseMoved",
	MouseEntered:        "MouseEntered",
	MouseLeft:           "MouseLeft",
	Paste:               "Paste",
}

var kindByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// String returns the canonical kind name used in binding files.
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	return k < kindCount
}

// IsKeyboard reports whether events of this kind carry a key code and
// modifier flags.
func (k Kind) IsKeyboard() bool {
	return k == KeyPressed || k == KeyReleased
}

// IsSignal reports whether this kind carries no payload relevant to
// matching, so a kind match alone is enough.
func (k Kind) IsSignal() bool {
	switch k {
	case Closed, LostFocus, GainedFocus:
		return true
	default:
		return false
	}
}

// Bindable reports whether orders of this kind can ever match.
func (k Kind) Bindable() bool {
	return k.IsSignal() || k.IsKeyboard()
}

// KindFromName resolves a canonical kind name.
func KindFromName(name string) (Kind, bool) {
	k, ok := kindByName[name]
	return k, ok
}

// KindTable returns the built-in kind name table in enumeration order.
func KindTable() codec.Table {
	t := make(codec.Table, len(kindNames))
	copy(t, kindNames[:])
	return t
}

// VerifyKinds checks that every name in t is a canonical kind name.
func VerifyKinds(source string, t codec.Table) error {
	for i, name := range t {
		if _, ok := KindFromName(name); !ok {
			return &codec.FileError{
				Path: source,
				Err:  fmt.Errorf("%w: entry %d: unknown event kind %q", codec.ErrParse, i, name),
			}
		}
	}
	return nil
}

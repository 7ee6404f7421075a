package key

import "strings"

// Modifier is a set of the four modifier flags carried by keyboard events.
// Each flag is independent.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModShift indicates the Shift key.
	ModShift

	// ModSystem indicates the system key (Cmd on macOS, Windows key elsewhere).
	ModSystem
)

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// Alt returns true if Alt is pressed.
func (m Modifier) Alt() bool {
	return m.Has(ModAlt)
}

// Ctrl returns true if Control is pressed.
func (m Modifier) Ctrl() bool {
	return m.Has(ModCtrl)
}

// Shift returns true if Shift is pressed.
func (m Modifier) Shift() bool {
	return m.Has(ModShift)
}

// System returns true if the system key is pressed.
func (m Modifier) System() bool {
	return m.Has(ModSystem)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Tokens returns the binding-file tokens for the set flags, in the
// order alt, ctrl, shift, system.
func (m Modifier) Tokens() []string {
	var parts []string
	if m.Alt() {
		parts = append(parts, "alt")
	}
	if m.Ctrl() {
		parts = append(parts, "ctrl")
	}
	if m.Shift() {
		parts = append(parts, "shift")
	}
	if m.System() {
		parts = append(parts, "system")
	}
	return parts
}

// String returns a human-readable representation like "alt+ctrl".
func (m Modifier) String() string {
	return strings.Join(m.Tokens(), "+")
}

// modifierTokens maps binding-file tokens to flags.
var modifierTokens = map[string]Modifier{
	"alt":    ModAlt,
	"ctrl":   ModCtrl,
	"shift":  ModShift,
	"system": ModSystem,
}

// ModifierFromToken returns the flag for a binding-file modifier token.
// Tokens are exact and lower case: alt, ctrl, shift, system.
func ModifierFromToken(token string) (Modifier, bool) {
	m, ok := modifierTokens[token]
	return m, ok
}

// ParseModifiers combines a list of modifier tokens. Order does not matter
// and repeated tokens are harmless. The first unrecognized token is returned
// with ok=false.
func ParseModifiers(tokens []string) (mods Modifier, bad string, ok bool) {
	for _, t := range tokens {
		m, found := ModifierFromToken(t)
		if !found {
			return ModNone, t, false
		}
		mods = mods.With(m)
	}
	return mods, "", true
}

package key

import (
	"fmt"
	"strings"
)

// Key identifies a physical keyboard key.
type Key uint16

const (
	// KeyUnknown represents a key with no known code.
	KeyUnknown Key = iota

	// Letters
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	// Top-row digits
	KeyNum0
	KeyNum1
	KeyNum2
	KeyNum3
	KeyNum4
	KeyNum5
	KeyNum6
	KeyNum7
	KeyNum8
	KeyNum9

	// Modifier and system keys
	KeyEscape
	KeyLControl
	KeyLShift
	KeyLAlt
	KeyLSystem
	KeyRControl
	KeyRShift
	KeyRAlt
	KeyRSystem
	KeyMenu

	// Punctuation
	KeyLBracket
	KeyRBracket
	KeySemicolon
	KeyComma
	KeyPeriod
	KeyQuote
	KeySlash
	KeyBackslash
	KeyTilde
	KeyEqual
	KeyHyphen

	// Editing
	KeySpace
	KeyEnter
	KeyBackspace
	KeyTab
	KeyPageUp
	KeyPageDown
	KeyEnd
	KeyHome
	KeyInsert
	KeyDelete

	// Keypad operators
	KeyAdd
	KeySubtract
	KeyMultiply
	KeyDivide

	// Arrow keys
	KeyLeft
	KeyRight
	KeyUp
	KeyDown

	// Keypad digits
	KeyNumpad0
	KeyNumpad1
	KeyNumpad2
	KeyNumpad3
	KeyNumpad4
	KeyNumpad5
	KeyNumpad6
	KeyNumpad7
	KeyNumpad8
	KeyNumpad9

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15

	KeyPause

	keyCount
)

// keyNames holds the canonical name of every Key, indexed by value.
// These are the names binding files use.
var keyNames = [keyCount]string{
	KeyUnknown:   "Unknown",
	KeyA:         "A",
	KeyB:         "B",
	KeyC:         "C",
	KeyD:         "D",
	KeyE:         "E",
	KeyF:         "F",
	KeyG:         "G",
	KeyH:         "H",
	KeyI:         "I",
	KeyJ:         "J",
	KeyK:         "K",
	KeyL:         "L",
	KeyM:         "M",
	KeyN:         "N",
	KeyO:         "O",
	KeyP:         "P",
	KeyQ:         "Q",
	KeyR:         "R",
	KeyS:         "S",
	KeyT:         "T",
	KeyU:         "U",
	KeyV:         "V",
	KeyW:         "W",
	KeyX:         "X",
	KeyY:         "Y",
	KeyZ:         "Z",
	KeyNum0:      "Num0",
	KeyNum1:      "Num1",
	KeyNum2:      "Num2",
	KeyNum3:      "Num3",
	KeyNum4:      "Num4",
	KeyNum5:      "Num5",
	KeyNum6:      "Num6",
	KeyNum7:      "Num7",
	KeyNum8:      "Num8",
	KeyNum9:      "Num9",
	KeyEscape:    "Escape",
	KeyLControl:  "LControl",
	KeyLShift:    "LShift",
	KeyLAlt:      "LAlt",
	KeyLSystem:   "LSystem",
	KeyRControl:  "RControl",
	KeyRShift:    "RShift",
	KeyRAlt:      "RAlt",
	KeyRSystem:   "RSystem",
	KeyMenu:      "Menu",
	KeyLBracket:  "LBracket",
	KeyRBracket:  "RBracket",
	KeySemicolon: "Semicolon",
	KeyComma:     "Comma",
	KeyPeriod:    "Period",
	KeyQuote:     "Quote",
	KeySlash:     "Slash",
	KeyBackslash: "Backslash",
	KeyTilde:     "Tilde",
	KeyEqual:     "Equal",
	KeyHyphen:    "Hyphen",
	KeySpace:     "Space",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyTab:       "Tab",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyEnd:       "End",
	KeyHome:      "Home",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyAdd:       "Add",
	KeySubtract:  "Subtract",
	KeyMultiply:  "Multiply",
	KeyDivide:    "Divide",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyNumpad0:   "Numpad0",
	KeyNumpad1:   "Numpad1",
	KeyNumpad2:   "Numpad2",
	KeyNumpad3:   "Numpad3",
	KeyNumpad4:   "Numpad4",
	KeyNumpad5:   "Numpad5",
	KeyNumpad6:   "Numpad6",
	KeyNumpad7:   "Numpad7",
	KeyNumpad8:   "Numpad8",
	KeyNumpad9:   "Numpad9",
	KeyF1:        "F1",
	KeyF2:        "F2",
	KeyF3:        "F3",
	KeyF4:        "F4",
	KeyF5:        "F5",
	KeyF6:        "F6",
	KeyF7:        "F7",
	KeyF8:        "F8",
	KeyF9:        "F9",
	KeyF10:       "F10",
	KeyF11:       "F11",
	KeyF12:       "F12",
	KeyF13:       "F13",
	KeyF14:       "F14",
	KeyF15:       "F15",
	KeyPause:     "Pause",
}

// keyByName is the reverse of keyNames.
var keyByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = Key(k)
	}
	return m
}()

// String returns the canonical name for the key.
func (k Key) String() string {
	if k < keyCount {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// Valid reports whether k is a defined key code.
func (k Key) Valid() bool {
	return k < keyCount
}

// IsLetter returns true for A through Z.
func (k Key) IsLetter() bool {
	return k >= KeyA && k <= KeyZ
}

// IsDigit returns true for the top-row digits.
func (k Key) IsDigit() bool {
	return k >= KeyNum0 && k <= KeyNum9
}

// IsFunctionKey returns true if this is a function key (F1-F15).
func (k Key) IsFunctionKey() bool {
	return k >= KeyF1 && k <= KeyF15
}

// IsArrowKey returns true if this is an arrow key.
func (k Key) IsArrowKey() bool {
	return k >= KeyLeft && k <= KeyDown
}

// IsKeypadKey returns true if this is a keypad digit or operator.
func (k Key) IsKeypadKey() bool {
	return (k >= KeyNumpad0 && k <= KeyNumpad9) || (k >= KeyAdd && k <= KeyDivide)
}

// FromName returns the Key with the given canonical name.
// Matching is exact; binding files must use the names as written.
func FromName(name string) (Key, bool) {
	k, ok := keyByName[name]
	return k, ok
}

// Names returns every canonical key name in enumeration order.
func Names() []string {
	out := make([]string, len(keyNames))
	copy(out, keyNames[:])
	return out
}

// FromRune maps a printable character to its key code and the modifiers
// implied by the character itself (Shift for upper-case letters).
// Returns KeyUnknown for characters with no dedicated key.
func FromRune(r rune) (Key, Modifier) {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a'), ModNone
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A'), ModShift
	case r >= '0' && r <= '9':
		return KeyNum0 + Key(r-'0'), ModNone
	}

	switch r {
	case ' ':
		return KeySpace, ModNone
	case '[':
		return KeyLBracket, ModNone
	case ']':
		return KeyRBracket, ModNone
	case ';':
		return KeySemicolon, ModNone
	case ',':
		return KeyComma, ModNone
	case '.':
		return KeyPeriod, ModNone
	case '\'':
		return KeyQuote, ModNone
	case '/':
		return KeySlash, ModNone
	case '\\':
		return KeyBackslash, ModNone
	case '`', '~':
		return KeyTilde, ModNone
	case '=':
		return KeyEqual, ModNone
	case '-':
		return KeyHyphen, ModNone
	case '+':
		return KeyAdd, ModNone
	case '*':
		return KeyMultiply, ModNone
	}
	return KeyUnknown, ModNone
}

// normalizeName folds a user-typed key name for suggestions in error messages.
func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Suggest returns the canonical key name that matches name case-insensitively,
// or the empty string. Used to enrich parse errors.
func Suggest(name string) string {
	want := normalizeName(name)
	for _, n := range keyNames {
		if strings.ToLower(n) == want {
			return n
		}
	}
	return ""
}

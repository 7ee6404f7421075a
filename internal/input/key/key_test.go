package key

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamesRoundTrip(t *testing.T) {
	for k := KeyUnknown; k < keyCount; k++ {
		name := k.String()
		require.NotEmpty(t, name, "key %d has no name", k)

		got, ok := FromName(name)
		require.True(t, ok, "FromName(%q)", name)
		assert.Equal(t, k, got)
	}
	assert.Len(t, Names(), int(keyCount))
}

func TestFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
		ok   bool
	}{
		{"A", KeyA, true},
		{"Space", KeySpace, true},
		{"Num7", KeyNum7, true},
		{"Numpad7", KeyNumpad7, true},
		{"F15", KeyF15, true},
		{"a", KeyUnknown, false},
		{"space", KeyUnknown, false},
		{"", KeyUnknown, false},
		{"F16", KeyUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FromName(tt.name)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "A", KeyA.String())
	assert.Equal(t, "Escape", KeyEscape.String())
	assert.Equal(t, "Key(999)", Key(999).String())
	assert.False(t, Key(999).Valid())
	assert.True(t, KeyPause.Valid())
}

func TestKeyClasses(t *testing.T) {
	tests := []struct {
		key                                 Key
		letter, digit, function, arrow, pad bool
	}{
		{KeyA, true, false, false, false, false},
		{KeyZ, true, false, false, false, false},
		{KeyNum0, false, true, false, false, false},
		{KeyF1, false, false, true, false, false},
		{KeyF15, false, false, true, false, false},
		{KeyLeft, false, false, false, true, false},
		{KeyDown, false, false, false, true, false},
		{KeyNumpad5, false, false, false, false, true},
		{KeyDivide, false, false, false, false, true},
		{KeySpace, false, false, false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.letter, tt.key.IsLetter())
			assert.Equal(t, tt.digit, tt.key.IsDigit())
			assert.Equal(t, tt.function, tt.key.IsFunctionKey())
			assert.Equal(t, tt.arrow, tt.key.IsArrowKey())
			assert.Equal(t, tt.pad, tt.key.IsKeypadKey())
		})
	}
}

func TestFromRune(t *testing.T) {
	tests := []struct {
		r    rune
		key  Key
		mods Modifier
	}{
		{'a', KeyA, ModNone},
		{'z', KeyZ, ModNone},
		{'A', KeyA, ModShift},
		{'5', KeyNum5, ModNone},
		{' ', KeySpace, ModNone},
		{'[', KeyLBracket, ModNone},
		{'-', KeyHyphen, ModNone},
		{'é', KeyUnknown, ModNone},
	}

	for _, tt := range tests {
		k, m := FromRune(tt.r)
		assert.Equal(t, tt.key, k, "FromRune(%q) key", tt.r)
		assert.Equal(t, tt.mods, m, "FromRune(%q) mods", tt.r)
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "Space", Suggest("space"))
	assert.Equal(t, "PageUp", Suggest(" PAGEUP "))
	assert.Equal(t, "", Suggest("Spacebar"))
}

func TestVerifyTable(t *testing.T) {
	require.NoError(t, VerifyTable("keys", Table()))
	require.NoError(t, VerifyTable("keys", []string{"A", "B"}))

	err := VerifyTable("keys", []string{"A", "space"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "Space"`)
}

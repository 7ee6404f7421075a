package event

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/tickbind/internal/input/key"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		order    Event
		incoming Event
		want     bool
	}{
		{"closed", Close(), Close(), true},
		{"lost focus", New(LostFocus), New(LostFocus), true},
		{"gained focus", New(GainedFocus), New(GainedFocus), true},
		{"kind mismatch", Close(), New(LostFocus), false},
		{"same key", Press(key.KeySpace, key.ModNone), Press(key.KeySpace, key.ModNone), true},
		{"different key", Press(key.KeyA, key.ModNone), Press(key.KeyB, key.ModNone), false},
		{"pressed vs released", Press(key.KeyA, key.ModNone), Release(key.KeyA, key.ModNone), false},
		{"release", Release(key.KeyA, key.ModCtrl), Release(key.KeyA, key.ModCtrl), true},
		{"ctrl required", Press(key.KeyA, key.ModCtrl), Press(key.KeyA, key.ModNone), false},
		{"ctrl present", Press(key.KeyA, key.ModCtrl), Press(key.KeyA, key.ModCtrl), true},
		{"extra modifier", Press(key.KeyA, key.ModCtrl), Press(key.KeyA, key.ModCtrl|key.ModShift), false},
		{"system flag", Press(key.KeyQ, key.ModSystem), Press(key.KeyQ, key.ModSystem), true},
		{"resize never matches", Resize(0, 0), Resize(0, 0), false},
		{"text never matches", Text('a'), Text('a'), false},
		{"mouse never matches", New(MouseMoved), New(MouseMoved), false},
		{"signal ignores payload", Close(), Event{Kind: Closed, Key: key.KeyA}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.Matches(tt.incoming))
		})
	}
}

func TestEventString(t *testing.T) {
	tests := []struct {
		ev   Event
		want string
	}{
		{Close(), "Closed"},
		{Press(key.KeySpace, key.ModNone), "KeyPressed Space"},
		{Press(key.KeyS, key.ModCtrl|key.ModShift), "KeyPressed S ctrl shift"},
		{Release(key.KeyF5, key.ModAlt), "KeyReleased F5 alt"},
		{Resize(80, 24), "Resized"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ev.String())
	}
}

func TestConstructors(t *testing.T) {
	r := Resize(80, 24)
	assert.Equal(t, Resized, r.Kind)
	assert.Equal(t, 80, r.Width)
	assert.Equal(t, 24, r.Height)

	tx := Text('x')
	assert.Equal(t, TextEntered, tx.Kind)
	assert.Equal(t, 'x', tx.Rune)
}

func TestMouseKindsAndButtons(t *testing.T) {
	tests := []struct {
		kind Kind
		name string
	}{
		{MouseButtonPressed, "MouseButtonPressed"},
		{MouseButtonReleased, "MouseButtonReleased"},
		{MouseEntered, "MouseEntered"},
		{MouseLeft, "MouseLeft"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.name, tt.kind.String())
	}

	assert.NotEqual(t, MouseButtonNone, MouseButtonLeft)
	assert.NotEqual(t, MouseButtonLeft, MouseButtonRight)

	press := Event{Kind: MouseButtonPressed, Button: MouseButtonLeft, X: 3, Y: 4}
	assert.Equal(t, "MouseButtonPressed", press.String())
	assert.False(t, press.Matches(press))
	assert.NotEqual(t, New(MouseLeft), New(MouseEntered))
}

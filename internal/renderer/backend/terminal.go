package backend

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tickbind/internal/event"
	"github.com/dshills/tickbind/internal/input/key"
)

// Terminal implements Surface using tcell. A goroutine started by Open
// reads tcell events, converts them, and buffers them for PollNext.
type Terminal struct {
	screen tcell.Screen
	events chan event.Event

	mu   sync.Mutex
	open bool
	wg   sync.WaitGroup

	// Owned by the pump goroutine.
	conv converter
}

// NewTerminal creates a terminal surface on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewTerminalWithScreen(screen), nil
}

// NewTerminalWithScreen creates a terminal surface on an existing screen,
// such as a tcell simulation screen.
func NewTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{
		screen: screen,
		events: make(chan event.Event, 256),
	}
}

func (t *Terminal) Open() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.open {
		return nil
	}
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.EnableMouse()
	t.screen.EnablePaste()
	t.screen.EnableFocus()
	t.open = true

	t.wg.Add(1)
	go t.pump()
	return nil
}

func (t *Terminal) Close() {
	t.mu.Lock()
	if !t.open {
		t.mu.Unlock()
		return
	}
	t.open = false
	t.mu.Unlock()

	t.screen.Fini()
	t.wg.Wait()
}

func (t *Terminal) IsOpen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.open
}

func (t *Terminal) PollNext() (event.Event, bool) {
	select {
	case ev := <-t.events:
		return ev, true
	default:
		return event.Event{}, false
	}
}

func (t *Terminal) Post(ev event.Event) {
	select {
	case t.events <- ev:
	default:
		// Event dropped if the buffer is full.
	}
}

func (t *Terminal) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Clear()
}

func (t *Terminal) DrawText(x, y int, text string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	width, _ := t.screen.Size()
	for _, r := range text {
		if x >= width {
			return
		}
		t.screen.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.screen.Show()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.screen.Size()
}

// pump forwards tcell events until the screen is finalized.
func (t *Terminal) pump() {
	defer t.wg.Done()

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		for _, e := range t.conv.convert(ev) {
			t.Post(e)
		}
	}
}

// converter turns tcell events into zero or more input events. It keeps
// the state needed to report mouse releases and collect bracketed pastes.
type converter struct {
	buttons tcell.ButtonMask
	pasting bool
	paste   []rune
}

func (c *converter) convert(ev tcell.Event) []event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if c.pasting {
			c.collectPaste(e)
			return nil
		}
		return convertKey(e)

	case *tcell.EventMouse:
		return c.convertMouse(e)

	case *tcell.EventResize:
		w, h := e.Size()
		return []event.Event{event.Resize(w, h)}

	case *tcell.EventFocus:
		if e.Focused {
			return []event.Event{event.New(event.GainedFocus)}
		}
		return []event.Event{event.New(event.LostFocus)}

	case *tcell.EventPaste:
		if e.Start() {
			c.pasting = true
			c.paste = c.paste[:0]
			return nil
		}
		c.pasting = false
		return []event.Event{{Kind: event.Paste, Text: string(c.paste)}}

	default:
		return nil
	}
}

func (c *converter) collectPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		c.paste = append(c.paste, e.Rune())
	case tcell.KeyEnter:
		c.paste = append(c.paste, '\n')
	case tcell.KeyTab:
		c.paste = append(c.paste, '\t')
	}
}

// namedKeys maps tcell keys with a dedicated key code. Checked before the
// control-letter range because tcell aliases Tab, Enter, Backspace and
// Escape onto control codes.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyF1:         key.KeyF1,
	tcell.KeyF2:         key.KeyF2,
	tcell.KeyF3:         key.KeyF3,
	tcell.KeyF4:         key.KeyF4,
	tcell.KeyF5:         key.KeyF5,
	tcell.KeyF6:         key.KeyF6,
	tcell.KeyF7:         key.KeyF7,
	tcell.KeyF8:         key.KeyF8,
	tcell.KeyF9:         key.KeyF9,
	tcell.KeyF10:        key.KeyF10,
	tcell.KeyF11:        key.KeyF11,
	tcell.KeyF12:        key.KeyF12,
	tcell.KeyF13:        key.KeyF13,
	tcell.KeyF14:        key.KeyF14,
	tcell.KeyF15:        key.KeyF15,
}

// convertKey maps a tcell key event. Printable runes with a dedicated key
// produce a KeyPressed followed by a TextEntered; runes without one only
// produce TextEntered. Terminals report no releases.
func convertKey(e *tcell.EventKey) []event.Event {
	mods := convertMod(e.Modifiers())

	if k, ok := namedKeys[e.Key()]; ok {
		return []event.Event{event.Press(k, mods)}
	}

	switch k := e.Key(); {
	case k == tcell.KeyBacktab:
		return []event.Event{event.Press(key.KeyTab, mods.With(key.ModShift))}

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return []event.Event{event.Press(key.KeyA+key.Key(k-tcell.KeyCtrlA), mods.With(key.ModCtrl))}

	case k == tcell.KeyCtrlSpace:
		return []event.Event{event.Press(key.KeySpace, mods.With(key.ModCtrl))}

	case k == tcell.KeyRune:
		r := e.Rune()
		code, implied := key.FromRune(r)
		if code == key.KeyUnknown {
			return []event.Event{event.Text(r)}
		}
		return []event.Event{event.Press(code, mods|implied), event.Text(r)}
	}
	return nil
}

// convertMod converts a tcell modifier mask. tcell's Meta is reported as
// the system flag.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModSystem
	}
	return result
}

func (c *converter) convertMouse(e *tcell.EventMouse) []event.Event {
	x, y := e.Position()
	btns := e.Buttons()

	switch {
	case btns&tcell.WheelUp != 0:
		return []event.Event{{Kind: event.MouseWheelScrolled, X: x, Y: y, Delta: 1}}
	case btns&tcell.WheelDown != 0:
		return []event.Event{{Kind: event.MouseWheelScrolled, X: x, Y: y, Delta: -1}}
	}

	const buttonMask = tcell.Button1 | tcell.Button2 | tcell.Button3
	btns &= buttonMask
	prev := c.buttons
	c.buttons = btns

	var out []event.Event
	for _, b := range []tcell.ButtonMask{tcell.Button1, tcell.Button2, tcell.Button3} {
		switch {
		case btns&b != 0 && prev&b == 0:
			out = append(out, event.Event{Kind: event.MouseButtonPressed, X: x, Y: y, Button: convertButton(b)})
		case btns&b == 0 && prev&b != 0:
			out = append(out, event.Event{Kind: event.MouseButtonReleased, X: x, Y: y, Button: convertButton(b)})
		}
	}
	if len(out) == 0 {
		out = append(out, event.Event{Kind: event.MouseMoved, X: x, Y: y})
	}
	return out
}

// convertButton maps a single tcell button. tcell numbers the middle button 3.
func convertButton(b tcell.ButtonMask) event.MouseButton {
	switch b {
	case tcell.Button1:
		return event.MouseButtonLeft
	case tcell.Button2:
		return event.MouseButtonRight
	case tcell.Button3:
		return event.MouseButtonMiddle
	default:
		return event.MouseButtonNone
	}
}

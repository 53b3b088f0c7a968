package backend

import (
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/contour/internal/editor"
	"github.com/dshills/contour/internal/input/key"
	"github.com/dshills/contour/internal/input/mouse"
)

var _ editor.Surface = (*Raster)(nil)
var _ Backend = (*Terminal)(nil)
var _ Backend = (*NullBackend)(nil)

func TestNullBackendInit(t *testing.T) {
	b := NewNullBackend(80, 24)
	if err := b.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}

	w, h := b.Size()
	if w != 80 || h != 24 {
		t.Errorf("expected size (80, 24), got (%d, %d)", w, h)
	}
}

func TestNullBackendSetGetCell(t *testing.T) {
	b := NewNullBackend(80, 24)
	_ = b.Init()

	cell := Cell{Rune: 'X', Fg: color.NRGBA{R: 255, A: 255}}
	b.SetCell(10, 5, cell)

	if got := b.GetCell(10, 5); !got.Equals(cell) {
		t.Errorf("cell mismatch: expected %+v, got %+v", cell, got)
	}

	// Out of bounds should be ignored/return empty
	b.SetCell(-1, 0, cell)
	b.SetCell(100, 0, cell)

	if empty := b.GetCell(-1, 0); !empty.Equals(EmptyCell()) {
		t.Error("out of bounds should return empty cell")
	}
}

func TestNullBackendPostEvent(t *testing.T) {
	b := NewNullBackend(10, 10)
	ev := Event{Type: EventKey, Key: key.NewEvent(key.KeyTab, key.ModNone)}
	b.PostEvent(ev)

	if got := b.PollEvent(); got.Type != EventKey || got.Key.Key != key.KeyTab {
		t.Errorf("PollEvent() = %+v, want posted Tab event", got)
	}
}

func TestCellEquals(t *testing.T) {
	a := Cell{Rune: 'a', Fg: color.RGBA{R: 10, G: 20, B: 30, A: 255}}
	b := Cell{Rune: 'a', Fg: color.NRGBA{R: 10, G: 20, B: 30, A: 255}}
	if !a.Equals(b) {
		t.Error("cells with equivalent colors should be equal")
	}
	if a.Equals(Cell{Rune: 'a'}) {
		t.Error("nil color should differ from a set color")
	}
	if a.Equals(Cell{Rune: 'b', Fg: a.Fg}) {
		t.Error("different runes should differ")
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want key.Event
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), key.NewRuneEvent('a', key.ModNone), true},
		{"arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModShift), key.NewEvent(key.KeyLeft, key.ModShift), true},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyCtrlZ, 0, tcell.ModCtrl), key.NewRuneEvent('z', key.ModCtrl), true},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), key.NewEvent(key.KeyTab, key.ModShift), true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), key.NewEvent(key.KeyTab, key.ModNone), true},
		{"delete", tcell.NewEventKey(tcell.KeyDelete, 0, tcell.ModNone), key.NewEvent(key.KeyDelete, key.ModNone), true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), key.NewEvent(key.KeyBackspace, key.ModNone), true},
		{"unsupported", tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), key.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.in)
			if ok != tt.ok {
				t.Fatalf("convertKey() ok = %v, want %v", ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Key != tt.want.Key || got.Rune != tt.want.Rune || got.Modifiers != tt.want.Modifiers {
				t.Errorf("convertKey() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertToTcellKey(t *testing.T) {
	if k, _ := convertToTcellKey(key.NewEvent(key.KeyTab, key.ModShift)); k != tcell.KeyBacktab {
		t.Errorf("Shift+Tab = %v, want KeyBacktab", k)
	}
	if k, r := convertToTcellKey(key.NewRuneEvent('q', key.ModNone)); k != tcell.KeyRune || r != 'q' {
		t.Errorf("rune q = %v %q", k, r)
	}
}

func TestConvertModRoundTrip(t *testing.T) {
	for _, m := range []key.Modifier{
		key.ModNone,
		key.ModShift,
		key.ModCtrl | key.ModAlt,
		key.ModShift | key.ModCtrl | key.ModAlt | key.ModMeta,
	} {
		if got := convertMod(convertToTcellMod(m)); got != m {
			t.Errorf("round trip %v = %v", m, got)
		}
	}
}

func TestConvertButtons(t *testing.T) {
	tests := []struct {
		in   tcell.ButtonMask
		want ButtonMask
	}{
		{tcell.ButtonNone, 0},
		{tcell.ButtonPrimary, ButtonLeft},
		{tcell.ButtonSecondary, ButtonRight},
		{tcell.ButtonMiddle, ButtonMiddle},
		{tcell.WheelUp, ButtonWheel},
		{tcell.ButtonPrimary | tcell.ButtonSecondary, ButtonLeft | ButtonRight},
	}
	for _, tt := range tests {
		if got := convertButtons(tt.in); got != tt.want {
			t.Errorf("convertButtons(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func mouseReport(x, y int, buttons ButtonMask) Event {
	return Event{Type: EventMouse, MouseX: x, MouseY: y, Buttons: buttons, When: time.Unix(1, 0)}
}

func TestPointerTranslate(t *testing.T) {
	p := NewPointer()

	steps := []struct {
		report Event
		action mouse.Action
		button mouse.Button
	}{
		{mouseReport(1, 1, 0), mouse.ActionMove, mouse.ButtonNone},
		{mouseReport(2, 1, ButtonLeft), mouse.ActionPress, mouse.ButtonLeft},
		{mouseReport(3, 1, ButtonLeft), mouse.ActionMove, mouse.ButtonNone},
		{mouseReport(4, 2, 0), mouse.ActionRelease, mouse.ButtonLeft},
		{mouseReport(4, 2, ButtonRight), mouse.ActionPress, mouse.ButtonRight},
		{mouseReport(4, 2, 0), mouse.ActionRelease, mouse.ButtonRight},
	}
	for i, s := range steps {
		got, ok := p.Translate(s.report)
		if !ok {
			t.Fatalf("step %d: Translate() ok = false", i)
		}
		if got.Action != s.action || got.Button != s.button {
			t.Errorf("step %d: got %v %v, want %v %v", i, got.Action, got.Button, s.action, s.button)
		}
	}

	if got, _ := p.Translate(mouseReport(2, 3, 0)); got.Position.X != 20 || got.Position.Y != 56 {
		t.Errorf("Position = %v, want cell center (20, 56)", got.Position)
	}
	if _, ok := p.Translate(mouseReport(0, 0, ButtonWheel)); ok {
		t.Error("wheel reports should be dropped")
	}
	if _, ok := p.Translate(Event{Type: EventKey}); ok {
		t.Error("key events should be dropped")
	}
	if p.Held() != mouse.ButtonNone {
		t.Errorf("Held() = %v, want none", p.Held())
	}
}

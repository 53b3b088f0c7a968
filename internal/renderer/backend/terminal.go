package backend

import (
	"image/color"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/contour/internal/input/key"
)

// Terminal implements Backend using tcell.
type Terminal struct {
	screen tcell.Screen
	mu     sync.Mutex
}

// NewTerminal creates a new terminal backend.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Terminal{screen: screen}, nil
}

func (t *Terminal) Init() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.screen.Init(); err != nil {
		return err
	}

	// Motion reports are needed for drags
	t.screen.EnableMouse(tcell.MouseMotionEvents)
	t.screen.HideCursor()
	return nil
}

func (t *Terminal) Shutdown() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Fini()
}

func (t *Terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.screen.Size()
}

func (t *Terminal) SetCell(x, y int, cell Cell) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.SetContent(x, y, cell.Rune, nil, convertStyle(cell))
}

func (t *Terminal) Show() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Show()
}

func (t *Terminal) PollEvent() Event {
	ev := t.screen.PollEvent()
	if ev == nil {
		return Event{Type: EventNone}
	}
	if _, ok := ev.(*tcell.EventResize); ok {
		t.mu.Lock()
		t.screen.Sync()
		t.mu.Unlock()
	}
	return convertEvent(ev)
}

// PostEvent posts a synthetic key event. Other event types are dropped.
func (t *Terminal) PostEvent(event Event) {
	if event.Type != EventKey {
		return
	}
	k, r := convertToTcellKey(event.Key)
	tcellEv := tcell.NewEventKey(k, r, convertToTcellMod(event.Key.Modifiers))
	_ = t.screen.PostEvent(tcellEv) // best-effort; event queue may be full
}

// convertStyle converts a cell's colors to a tcell.Style.
func convertStyle(c Cell) tcell.Style {
	style := tcell.StyleDefault
	if c.Fg != nil {
		style = style.Foreground(convertColor(c.Fg))
	}
	if c.Bg != nil {
		style = style.Background(convertColor(c.Bg))
	}
	return style
}

// convertColor converts an image color to a tcell RGB color, dropping alpha.
func convertColor(c color.Color) tcell.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B))
}

// convertEvent converts tcell events to our Event type.
func convertEvent(ev tcell.Event) Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		ke, ok := convertKey(e)
		if !ok {
			return Event{Type: EventNone, When: e.When()}
		}
		return Event{Type: EventKey, When: e.When(), Key: ke}

	case *tcell.EventMouse:
		x, y := e.Position()
		return Event{
			Type:    EventMouse,
			When:    e.When(),
			MouseX:  x,
			MouseY:  y,
			Buttons: convertButtons(e.Buttons()),
			Mod:     convertMod(e.Modifiers()),
		}

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{
			Type:   EventResize,
			When:   e.When(),
			Width:  w,
			Height: h,
		}

	default:
		return Event{Type: EventNone, When: time.Now()}
	}
}

// convertKey converts a tcell key event to a key.Event. Control
// combinations arrive from tcell as distinct keys and become rune events
// with ModCtrl.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())
	ev := func(k key.Key) (key.Event, bool) {
		return key.NewEvent(k, mods), true
	}

	switch k := e.Key(); k {
	case tcell.KeyRune:
		return key.NewRuneEvent(e.Rune(), mods), true
	case tcell.KeyEscape:
		return ev(key.KeyEscape)
	case tcell.KeyEnter:
		return ev(key.KeyEnter)
	case tcell.KeyTab:
		return ev(key.KeyTab)
	case tcell.KeyBacktab:
		return key.NewEvent(key.KeyTab, mods.With(key.ModShift)), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return ev(key.KeyBackspace)
	case tcell.KeyDelete:
		return ev(key.KeyDelete)
	case tcell.KeyUp:
		return ev(key.KeyUp)
	case tcell.KeyDown:
		return ev(key.KeyDown)
	case tcell.KeyLeft:
		return ev(key.KeyLeft)
	case tcell.KeyRight:
		return ev(key.KeyRight)
	default:
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := 'a' + rune(k-tcell.KeyCtrlA)
			return key.NewRuneEvent(r, mods.With(key.ModCtrl)), true
		}
		return key.Event{}, false
	}
}

// convertToTcellKey converts a key.Event to a tcell key and rune.
func convertToTcellKey(e key.Event) (tcell.Key, rune) {
	switch e.Key {
	case key.KeyEscape:
		return tcell.KeyEscape, 0
	case key.KeyEnter:
		return tcell.KeyEnter, 0
	case key.KeyTab:
		if e.Modifiers.HasShift() {
			return tcell.KeyBacktab, 0
		}
		return tcell.KeyTab, 0
	case key.KeyBackspace:
		return tcell.KeyBackspace2, 0
	case key.KeyDelete:
		return tcell.KeyDelete, 0
	case key.KeyUp:
		return tcell.KeyUp, 0
	case key.KeyDown:
		return tcell.KeyDown, 0
	case key.KeyLeft:
		return tcell.KeyLeft, 0
	case key.KeyRight:
		return tcell.KeyRight, 0
	default:
		return tcell.KeyRune, e.Rune
	}
}

// convertMod converts a tcell modifier mask to key modifiers.
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
		result |= key.ModMeta
	}
	return result
}

// convertToTcellMod converts key modifiers to a tcell modifier mask.
func convertToTcellMod(m key.Modifier) tcell.ModMask {
	var result tcell.ModMask
	if m.HasShift() {
		result |= tcell.ModShift
	}
	if m.HasCtrl() {
		result |= tcell.ModCtrl
	}
	if m.HasAlt() {
		result |= tcell.ModAlt
	}
	if m.HasMeta() {
		result |= tcell.ModMeta
	}
	return result
}

// convertButtons converts a tcell button mask.
func convertButtons(b tcell.ButtonMask) ButtonMask {
	var result ButtonMask
	if b&tcell.ButtonPrimary != 0 {
		result |= ButtonLeft
	}
	if b&tcell.ButtonMiddle != 0 {
		result |= ButtonMiddle
	}
	if b&tcell.ButtonSecondary != 0 {
		result |= ButtonRight
	}
	if b&(tcell.WheelUp|tcell.WheelDown|tcell.WheelLeft|tcell.WheelRight) != 0 {
		result |= ButtonWheel
	}
	return result
}

// Package hotkey распознаёт аккорд "модификатор + клавиша" в потоке событий клавиатуры.
package hotkey

import "addrmemo/internal/config"

// Kind - тип события клавиатуры.
type Kind int

const (
	Press Kind = iota
	Release
)

func (k Kind) String() string {
	if k == Press {
		return "press"
	}
	return "release"
}

// Key - физическая клавиша. Буквы и F-клавиши совпадают с config.Key,
// у модификаторов есть левый и правый вариант.
type Key string

const (
	KeyCtrlLeft   Key = "ctrl_l"
	KeyCtrlRight  Key = "ctrl_r"
	KeyShiftLeft  Key = "shift_l"
	KeyShiftRight Key = "shift_r"
	KeyAltLeft    Key = "alt_l"
	KeyAltRight   Key = "alt_r"
	KeySuperLeft  Key = "super_l"
	KeySuperRight Key = "super_r"
)

// physicalModifiers сводит левый и правый варианты к одному логическому модификатору.
var physicalModifiers = map[Key]config.Modifier{
	KeyCtrlLeft:   config.ModCtrl,
	KeyCtrlRight:  config.ModCtrl,
	KeyShiftLeft:  config.ModShift,
	KeyShiftRight: config.ModShift,
	KeyAltLeft:    config.ModAlt,
	KeyAltRight:   config.ModAlt,
	KeySuperLeft:  config.ModSuper,
	KeySuperRight: config.ModSuper,
}

// ModifierKey возвращает левую физическую клавишу модификатора.
func ModifierKey(m config.Modifier) Key {
	switch m {
	case config.ModCtrl:
		return KeyCtrlLeft
	case config.ModShift:
		return KeyShiftLeft
	case config.ModAlt:
		return KeyAltLeft
	default:
		return KeySuperLeft
	}
}

// Event - одно нажатие или отпускание клавиши.
type Event struct {
	Kind Kind
	Key  Key
}

// KeyPress и KeyRelease - конструкторы событий.
func KeyPress(k Key) Event   { return Event{Kind: Press, Key: k} }
func KeyRelease(k Key) Event { return Event{Kind: Release, Key: k} }

// State - состояние автомата.
type State int

const (
	Idle State = iota
	ModifierHeld
)

func (s State) String() string {
	if s == ModifierHeld {
		return "modifier_held"
	}
	return "idle"
}

// Action - результат обработки события.
type Action int

const (
	None Action = iota
	Fire
)

// Machine отслеживает аккорд "модификатор + клавиша".
//
// Idle --press(mod)--> ModifierHeld; ModifierHeld --release(mod)--> Idle;
// ModifierHeld --press(trigger)--> ModifierHeld + Fire. Остальные события игнорируются.
// Не потокобезопасен: принадлежит одной горутине слушателя.
type Machine struct {
	modifier config.Modifier
	trigger  Key
	held     map[config.Modifier]struct{}
}

// NewMachine создаёт автомат для аккорда из конфигурации.
func NewMachine(chord config.HotkeyConfig) *Machine {
	return &Machine{
		modifier: chord.Modifier,
		trigger:  Key(chord.Key),
		held:     make(map[config.Modifier]struct{}, 1),
	}
}

// State возвращает текущее состояние.
func (m *Machine) State() State {
	if _, ok := m.held[m.modifier]; ok {
		return ModifierHeld
	}
	return Idle
}

// Handle обрабатывает одно событие и возвращает действие.
func (m *Machine) Handle(ev Event) Action {
	if mod, ok := physicalModifiers[ev.Key]; ok {
		if mod != m.modifier {
			return None
		}
		switch ev.Kind {
		case Press:
			m.held[mod] = struct{}{}
		case Release:
			delete(m.held, mod)
		}
		return None
	}

	if ev.Kind == Press && ev.Key == m.trigger && m.State() == ModifierHeld {
		return Fire
	}
	return None
}

// Package oshook предоставляет системную глобальную горячую клавишу как hotkey.Source.
package oshook

import (
	"fmt"
	"log"
	"sync"
	"time"

	"golang.design/x/hotkey"
	"golang.design/x/hotkey/mainthread"

	"addrmemo/internal/config"
	keys "addrmemo/internal/hotkey"
)

// unregisterTimeout - сколько ждём отмены регистрации перед выходом.
const unregisterTimeout = 500 * time.Millisecond

// OSSource - системный источник событий на базе golang.design/x/hotkey.
// Реализует hotkey.Source.
//
// Библиотека сообщает только о нажатии и отпускании всего аккорда,
// поэтому Keydown превращается в press(модификатор), press(клавиша),
// а Keyup - в release(клавиша), release(модификатор).
type OSSource struct {
	mu       sync.Mutex
	hk       *hotkey.Hotkey
	chord    config.HotkeyConfig
	modKey   keys.Key
	events   chan keys.Event
	stopCh   chan struct{}
	doneCh   chan struct{}
	stopOnce sync.Once
}

var _ keys.Source = (*OSSource)(nil)

// NewSource регистрирует аккорд в системе и начинает слушать его.
func NewSource(chord config.HotkeyConfig) (*OSSource, error) {
	log.Printf("Регистрация горячей клавиши: %s", chord.String())

	mod, ok := modifierMap[chord.Modifier]
	if !ok {
		return nil, fmt.Errorf("модификатор не поддерживается: %s", chord.Modifier)
	}
	key, ok := keyMap[chord.Key]
	if !ok {
		return nil, fmt.Errorf("клавиша не поддерживается: %s", chord.Key)
	}

	hk := hotkey.New([]hotkey.Modifier{mod}, key)
	if err := hk.Register(); err != nil {
		log.Printf("Ошибка регистрации: %v", err)
		return nil, err
	}

	s := &OSSource{
		hk:     hk,
		chord:  chord,
		modKey: keys.ModifierKey(chord.Modifier),
		events: make(chan keys.Event, 16),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}

	log.Printf("Горячая клавиша успешно зарегистрирована: %s", chord.String())
	go s.listen()
	return s, nil
}

// Events возвращает канал событий.
func (s *OSSource) Events() <-chan keys.Event {
	return s.events
}

// Chord возвращает зарегистрированный аккорд.
func (s *OSSource) Chord() config.HotkeyConfig {
	return s.chord
}

func (s *OSSource) listen() {
	defer close(s.doneCh)
	defer close(s.events)

	trigger := keys.Key(s.chord.Key)
	for {
		select {
		case <-s.stopCh:
			return
		case _, ok := <-s.hk.Keydown():
			if !ok {
				return
			}
			if !s.emit(keys.KeyPress(s.modKey), keys.KeyPress(trigger)) {
				return
			}
		case _, ok := <-s.hk.Keyup():
			if !ok {
				return
			}
			if !s.emit(keys.KeyRelease(trigger), keys.KeyRelease(s.modKey)) {
				return
			}
		}
	}
}

// emit отправляет события по порядку; false - источник остановлен.
func (s *OSSource) emit(events ...keys.Event) bool {
	for _, ev := range events {
		select {
		case s.events <- ev:
		case <-s.stopCh:
			return false
		}
	}
	return true
}

// Close останавливает listener и отменяет регистрацию горячей клавиши.
func (s *OSSource) Close() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.stopCh)
		<-s.doneCh

		s.mu.Lock()
		hk := s.hk
		s.hk = nil
		s.mu.Unlock()
		if hk == nil {
			return
		}

		// Отменяем регистрацию в горутине с таймаутом
		done := make(chan error, 1)
		go func() {
			done <- hk.Unregister()
		}()
		select {
		case err = <-done:
		case <-time.After(unregisterTimeout):
			log.Printf("Hotkey unregister timeout")
		}
	})
	return err
}

// RunOnMainThread запускает функцию в главном потоке (требование для macOS).
func RunOnMainThread(fn func()) {
	mainthread.Init(fn)
}

// modifierMap определён в platform-specific файлах:
// - modifiers_linux.go
// - modifiers_darwin.go
// - modifiers_windows.go

// keyMap маппинг config.Key -> hotkey.Key
var keyMap = map[config.Key]hotkey.Key{
	config.KeyA:   hotkey.KeyA,
	config.KeyB:   hotkey.KeyB,
	config.KeyC:   hotkey.KeyC,
	config.KeyD:   hotkey.KeyD,
	config.KeyE:   hotkey.KeyE,
	config.KeyF:   hotkey.KeyF,
	config.KeyG:   hotkey.KeyG,
	config.KeyH:   hotkey.KeyH,
	config.KeyI:   hotkey.KeyI,
	config.KeyJ:   hotkey.KeyJ,
	config.KeyK:   hotkey.KeyK,
	config.KeyL:   hotkey.KeyL,
	config.KeyM:   hotkey.KeyM,
	config.KeyN:   hotkey.KeyN,
	config.KeyO:   hotkey.KeyO,
	config.KeyP:   hotkey.KeyP,
	config.KeyQ:   hotkey.KeyQ,
	config.KeyR:   hotkey.KeyR,
	config.KeyS:   hotkey.KeyS,
	config.KeyT:   hotkey.KeyT,
	config.KeyU:   hotkey.KeyU,
	config.KeyV:   hotkey.KeyV,
	config.KeyW:   hotkey.KeyW,
	config.KeyX:   hotkey.KeyX,
	config.KeyY:   hotkey.KeyY,
	config.KeyZ:   hotkey.KeyZ,
	config.KeyF1:  hotkey.KeyF1,
	config.KeyF2:  hotkey.KeyF2,
	config.KeyF3:  hotkey.KeyF3,
	config.KeyF4:  hotkey.KeyF4,
	config.KeyF5:  hotkey.KeyF5,
	config.KeyF6:  hotkey.KeyF6,
	config.KeyF7:  hotkey.KeyF7,
	config.KeyF8:  hotkey.KeyF8,
	config.KeyF9:  hotkey.KeyF9,
	config.KeyF10: hotkey.KeyF10,
	config.KeyF11: hotkey.KeyF11,
	config.KeyF12: hotkey.KeyF12,
}

// Package config предоставляет параметры запуска приложения и загрузку файла адресов.
package config

import (
	"fmt"
	"strings"
	"time"
)

// DefaultPath - путь к файлу адресов по умолчанию.
const DefaultPath = "./config/address.json"

// DefaultSettleDelay - пауза между нажатием Copy и чтением буфера обмена.
// Без неё в буфере могут оказаться старые данные.
const DefaultSettleDelay = time.Second

// Modifier представляет модификатор клавиши.
type Modifier string

const (
	ModCtrl  Modifier = "ctrl"
	ModShift Modifier = "shift"
	ModAlt   Modifier = "alt"
	ModSuper Modifier = "super" // Win/Cmd
)

// Key представляет клавишу.
type Key string

const (
	KeyA   Key = "a"
	KeyB   Key = "b"
	KeyC   Key = "c"
	KeyD   Key = "d"
	KeyE   Key = "e"
	KeyF   Key = "f"
	KeyG   Key = "g"
	KeyH   Key = "h"
	KeyI   Key = "i"
	KeyJ   Key = "j"
	KeyK   Key = "k"
	KeyL   Key = "l"
	KeyM   Key = "m"
	KeyN   Key = "n"
	KeyO   Key = "o"
	KeyP   Key = "p"
	KeyQ   Key = "q"
	KeyR   Key = "r"
	KeyS   Key = "s"
	KeyT   Key = "t"
	KeyU   Key = "u"
	KeyV   Key = "v"
	KeyW   Key = "w"
	KeyX   Key = "x"
	KeyY   Key = "y"
	KeyZ   Key = "z"
	KeyF1  Key = "f1"
	KeyF2  Key = "f2"
	KeyF3  Key = "f3"
	KeyF4  Key = "f4"
	KeyF5  Key = "f5"
	KeyF6  Key = "f6"
	KeyF7  Key = "f7"
	KeyF8  Key = "f8"
	KeyF9  Key = "f9"
	KeyF10 Key = "f10"
	KeyF11 Key = "f11"
	KeyF12 Key = "f12"
)

// HotkeyConfig хранит аккорд: один модификатор и одну клавишу.
type HotkeyConfig struct {
	Modifier Modifier `json:"modifier"`
	Key      Key      `json:"key"`
}

// String возвращает строковое представление горячей клавиши.
func (h HotkeyConfig) String() string {
	return string(h.Modifier) + "+" + string(h.Key)
}

// Options - параметры запуска. Заполняются из флагов командной строки.
type Options struct {
	// Path - файл со списком адресов (.json, .yaml, .yml).
	Path string
	// Hotkey - аккорд, по которому выполняется поиск.
	Hotkey HotkeyConfig
	// SettleDelay - ожидание после эмуляции копирования.
	SettleDelay time.Duration
	// UILanguage - язык уведомлений и меню.
	UILanguage string
	// Notifications - начальное состояние переключателя уведомлений в трее.
	Notifications bool
}

// Default возвращает параметры по умолчанию: Super/Cmd+J, ./config/address.json.
func Default() Options {
	return Options{
		Path: DefaultPath,
		Hotkey: HotkeyConfig{
			Modifier: ModSuper,
			Key:      KeyJ,
		},
		SettleDelay:   DefaultSettleDelay,
		UILanguage:    "en",
		Notifications: true,
	}
}

// Validate проверяет параметры после разбора флагов.
func (o Options) Validate() error {
	if strings.TrimSpace(o.Path) == "" {
		return fmt.Errorf("не задан путь к файлу адресов")
	}
	if _, err := ParseModifier(string(o.Hotkey.Modifier)); err != nil {
		return err
	}
	if _, err := ParseKey(string(o.Hotkey.Key)); err != nil {
		return err
	}
	if o.SettleDelay < 0 {
		return fmt.Errorf("отрицательная задержка: %s", o.SettleDelay)
	}
	return nil
}

// ParseModifier разбирает имя модификатора без учёта регистра.
// "cmd", "win" и "meta" считаются синонимами super.
func ParseModifier(s string) (Modifier, error) {
	switch m := Modifier(strings.ToLower(strings.TrimSpace(s))); m {
	case ModCtrl, ModShift, ModAlt, ModSuper:
		return m, nil
	case "cmd", "win", "meta", "command":
		return ModSuper, nil
	case "control":
		return ModCtrl, nil
	case "option":
		return ModAlt, nil
	}
	return "", fmt.Errorf("неизвестный модификатор: %q", s)
}

// ParseKey разбирает имя клавиши без учёта регистра.
func ParseKey(s string) (Key, error) {
	k := Key(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range AvailableKeys() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("неизвестная клавиша: %q", s)
}

// AvailableModifiers возвращает список доступных модификаторов.
func AvailableModifiers() []Modifier {
	return []Modifier{ModCtrl, ModShift, ModAlt, ModSuper}
}

// AvailableKeys возвращает список доступных клавиш.
func AvailableKeys() []Key {
	return []Key{
		KeyA, KeyB, KeyC, KeyD, KeyE, KeyF, KeyG, KeyH, KeyI, KeyJ, KeyK, KeyL, KeyM,
		KeyN, KeyO, KeyP, KeyQ, KeyR, KeyS, KeyT, KeyU, KeyV, KeyW, KeyX, KeyY, KeyZ,
		KeyF1, KeyF2, KeyF3, KeyF4, KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12,
	}
}

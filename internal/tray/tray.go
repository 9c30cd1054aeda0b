// Package tray предоставляет системный трей с меню.
package tray

import (
	"fmt"
	"sync"

	"github.com/getlantern/systray"

	"addrmemo/embedded"
	"addrmemo/internal/i18n"
)

// State представляет состояние приложения для отображения в трее.
type State int

const (
	StateIdle State = iota
	StateLookup
	StateError
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	OnNotificationsToggle func() bool
	OnReload              func()
	OnAbout               func()
	OnQuit                func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks  Callbacks
	mu         sync.Mutex
	records    int
	notifyOn   *systray.MenuItem
	status     *systray.MenuItem
	reloadBtn  *systray.MenuItem
	aboutBtn   *systray.MenuItem
	quitBtn    *systray.MenuItem
	notifyInit bool
}

// New создаёт новый Tray.
func New(callbacks Callbacks, notificationsOn bool) *Tray {
	return &Tray{
		callbacks:  callbacks,
		notifyInit: notificationsOn,
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(embedded.IconIdle)
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Статус
	t.mu.Lock()
	t.status = systray.AddMenuItem(t.statusTitle(), "")
	t.mu.Unlock()
	t.status.Disable()

	systray.AddSeparator()

	// Уведомления
	t.notifyOn = systray.AddMenuItemCheckbox(i18n.T("tray_notifications"), i18n.T("tray_notifications_hint"), t.notifyInit)

	// Перезагрузка и информация
	t.reloadBtn = systray.AddMenuItem(i18n.T("tray_reload"), i18n.T("tray_reload_hint"))
	t.aboutBtn = systray.AddMenuItem(i18n.T("tray_about"), i18n.T("tray_about_hint"))

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		// Уведомления
		case <-t.notifyOn.ClickedCh:
			if t.callbacks.OnNotificationsToggle != nil {
				if t.callbacks.OnNotificationsToggle() {
					t.notifyOn.Check()
				} else {
					t.notifyOn.Uncheck()
				}
			}

		case <-t.reloadBtn.ClickedCh:
			if t.callbacks.OnReload != nil {
				t.callbacks.OnReload()
			}

		case <-t.aboutBtn.ClickedCh:
			if t.callbacks.OnAbout != nil {
				t.callbacks.OnAbout()
			}

		// Выход
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			}
			systray.Quit()
			return
		}
	}
}

func (t *Tray) statusTitle() string {
	return fmt.Sprintf("%s: %d", i18n.T("tray_records"), t.records)
}

// SetRecords обновляет число загруженных адресов в меню.
func (t *Tray) SetRecords(n int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records = n
	if t.status != nil {
		t.status.SetTitle(t.statusTitle())
	}
}

// SetState устанавливает состояние приложения и обновляет иконку.
func (t *Tray) SetState(state State) {
	name := i18n.T("app_name")
	switch state {
	case StateIdle:
		systray.SetIcon(embedded.IconIdle)
		systray.SetTooltip(name + " - " + i18n.T("tray_ready"))
	case StateLookup:
		systray.SetIcon(embedded.IconLookup)
		systray.SetTooltip(name + " - " + i18n.T("app_tooltip"))
	case StateError:
		systray.SetIcon(embedded.IconError)
		systray.SetTooltip(name + " - " + i18n.T("error_reload"))
	}
}

func (t *Tray) onExit() {
	// Cleanup при выходе
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

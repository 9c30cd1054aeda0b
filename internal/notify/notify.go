// Package notify предоставляет системные уведомления.
package notify

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"

	"addrmemo/internal/i18n"
)

const appName = "AddrMemo"

// infoLimit - максимальная длина информационного уведомления в символах.
const infoLimit = 100

// ErrNotify - уведомление не удалось показать.
var ErrNotify = errors.New("не удалось показать уведомление")

// Sender отправляет одно уведомление. По умолчанию beeep.Notify.
type Sender func(title, message, icon string) error

// Notifier отправляет системные уведомления.
type Notifier struct {
	mu      sync.RWMutex
	enabled bool
	send    Sender
}

// New создаёт новый Notifier.
func New(enabled bool) *Notifier {
	return NewWithSender(enabled, beeep.Notify)
}

// NewWithSender создаёт Notifier с заданным способом отправки.
func NewWithSender(enabled bool, send Sender) *Notifier {
	return &Notifier{enabled: enabled, send: send}
}

// SetEnabled включает/выключает уведомления.
func (n *Notifier) SetEnabled(enabled bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
}

// Toggle переключает уведомления и возвращает новое состояние.
func (n *Notifier) Toggle() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = !n.enabled
	return n.enabled
}

// Enabled возвращает true если уведомления включены.
func (n *Notifier) Enabled() bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.enabled
}

// Show показывает результат поиска: заголовок - адрес, текст - описание.
func (n *Notifier) Show(title, message string) error {
	if !n.Enabled() {
		return nil
	}
	if err := n.send(title, message, ""); err != nil {
		return fmt.Errorf("%w: %w", ErrNotify, err)
	}
	return nil
}

// Error показывает уведомление об ошибке. Ошибки отправки игнорируются.
func (n *Notifier) Error(msg string) {
	_ = n.Show(appName+": "+i18n.T("notify_error"), msg)
}

// Info показывает информационное уведомление.
func (n *Notifier) Info(msg string) {
	if runes := []rune(msg); len(runes) > infoLimit {
		msg = string(runes[:infoLimit]) + "..."
	}
	_ = n.Show(appName, msg)
}

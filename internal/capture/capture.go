// Package capture получает выделенный текст через буфер обмена.
package capture

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atotto/clipboard"
)

var (
	// ErrCapture - общая ошибка получения выделенного текста.
	ErrCapture = errors.New("не удалось получить выделенный текст")
	// ErrNoSelection - после копирования буфер обмена пуст.
	ErrNoSelection = errors.New("нет выделенного текста")
)

// Capturer возвращает текст, выделенный в активном окне.
type Capturer interface {
	// Capture копирует выделение и возвращает его как текст.
	Capture(ctx context.Context) (string, error)
}

// Clipboard - системный буфер обмена.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Copier эмулирует нажатие "Копировать" в активном окне.
type Copier interface {
	Copy() error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// ClipboardCapturer копирует выделение через буфер обмена и всегда
// возвращает буферу исходное содержимое, даже если копирование не удалось.
type ClipboardCapturer struct {
	clip   Clipboard
	copier Copier
	settle time.Duration
}

// New создаёт платформо-специфичный Capturer.
// settle - пауза между эмуляцией копирования и чтением буфера.
func New(settle time.Duration) (Capturer, error) {
	if clipboard.Unsupported {
		return nil, fmt.Errorf("%w: буфер обмена недоступен на этой системе", ErrCapture)
	}
	copier, err := newCopier()
	if err != nil {
		return nil, err
	}
	return NewClipboardCapturer(systemClipboard{}, copier, settle), nil
}

// NewClipboardCapturer собирает Capturer из готовых частей.
func NewClipboardCapturer(clip Clipboard, copier Copier, settle time.Duration) *ClipboardCapturer {
	return &ClipboardCapturer{
		clip:   clip,
		copier: copier,
		settle: settle,
	}
}

// Capture сохраняет буфер, очищает его, копирует выделение, ждёт settle,
// читает результат и восстанавливает сохранённое содержимое.
//
// Если исходный буфер прочитать не удалось (пустой буфер или не текст,
// xclip и wl-paste в этом случае завершаются с ошибкой), восстанавливать нечего.
func (c *ClipboardCapturer) Capture(ctx context.Context) (text string, err error) {
	saved, backupErr := c.clip.ReadAll()
	if backupErr != nil {
		log.Printf("Буфер обмена не прочитан, восстановление пропущено: %v", backupErr)
	} else {
		defer func() {
			if restoreErr := c.clip.WriteAll(saved); restoreErr != nil {
				log.Printf("Не удалось восстановить буфер обмена: %v", restoreErr)
				if err == nil {
					err = fmt.Errorf("%w: восстановление буфера: %w", ErrCapture, restoreErr)
					text = ""
				}
			}
		}()
	}

	// Очищаем буфер, чтобы не принять старое содержимое за выделение.
	if err := c.clip.WriteAll(""); err != nil {
		return "", fmt.Errorf("%w: очистка буфера: %w", ErrCapture, err)
	}

	if err := c.copier.Copy(); err != nil {
		return "", fmt.Errorf("%w: копирование: %w", ErrCapture, err)
	}

	if c.settle > 0 {
		timer := time.NewTimer(c.settle)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("%w: %w", ErrCapture, ctx.Err())
		case <-timer.C:
		}
	}

	// Буфер был очищен: ошибка чтения значит, что копировать было нечего.
	text, err = c.clip.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w: %w", ErrCapture, ErrNoSelection, err)
	}
	if text == "" {
		return "", fmt.Errorf("%w: %w", ErrCapture, ErrNoSelection)
	}
	return text, nil
}

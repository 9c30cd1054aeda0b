// Package lookup связывает захват выделения, поиск в таблице и уведомление.
package lookup

import (
	"context"
	"log"

	"addrmemo/internal/addressbook"
	"addrmemo/internal/capture"
	"addrmemo/internal/i18n"
)

const (
	// titleLimit - начиная с этой длины заголовок сокращается.
	titleLimit  = 18
	titleHead   = 10
	titleTail   = 8
	titleMarker = "..."
)

// Notifier показывает результат поиска.
type Notifier interface {
	Show(title, message string) error
}

// Result - итог одного поиска.
type Result struct {
	Text    string
	Title   string
	Message string
	Found   bool
}

// Pipeline выполняет поиск по нажатию горячей клавиши.
type Pipeline struct {
	capturer capture.Capturer
	handle   *addressbook.Handle
	notifier Notifier
}

// New создаёт Pipeline.
func New(capturer capture.Capturer, handle *addressbook.Handle, notifier Notifier) *Pipeline {
	return &Pipeline{
		capturer: capturer,
		handle:   handle,
		notifier: notifier,
	}
}

// Run получает выделенный текст, ищет его в таблице и показывает уведомление.
// Возвращает false, если текст получить не удалось и уведомления не было.
func (p *Pipeline) Run(ctx context.Context) (Result, bool) {
	text, err := p.capturer.Capture(ctx)
	if err != nil {
		log.Printf("Ошибка получения выделенного текста: %v", err)
		return Result{}, false
	}

	res := Resolve(p.handle.Read(), text)
	if res.Found {
		log.Printf("Найден адрес %s: %s", addressbook.Normalize(text), res.Message)
	} else {
		log.Printf("%s не найден", addressbook.Normalize(text))
	}

	if err := p.notifier.Show(res.Title, res.Message); err != nil {
		log.Printf("Ошибка уведомления: %v", err)
	}
	return res, true
}

// Handle - обёртка для hotkey.Listener.
func (p *Pipeline) Handle(ctx context.Context) {
	p.Run(ctx)
}

// Resolve ищет текст в снимке таблицы и готовит заголовок и сообщение.
func Resolve(table *addressbook.Table, text string) Result {
	res := Result{
		Text:  text,
		Title: Title(text),
	}
	if r, ok := table.Lookup(text); ok {
		res.Found = true
		res.Message = r.Message()
	} else {
		res.Message = i18n.T("lookup_not_found")
	}
	return res
}

// Title сокращает длинный текст: первые 10 символов, "...", последние 8.
func Title(text string) string {
	runes := []rune(text)
	if len(runes) < titleLimit {
		return text
	}
	return string(runes[:titleHead]) + titleMarker + string(runes[len(runes)-titleTail:])
}

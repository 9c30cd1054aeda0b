// Package watcher следит за файлом адресов и перезагружает таблицу при его изменении.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"addrmemo/internal/addressbook"
	"addrmemo/internal/config"
)

// ErrReload - перезагрузка не удалась, действует прежняя версия таблицы.
var ErrReload = errors.New("не удалось перезагрузить адреса")

// DefaultDebounce - окно, в котором серия событий превращается в одну перезагрузку.
const DefaultDebounce = 100 * time.Millisecond

// Loader читает записи из файла. По умолчанию config.LoadRecords.
type Loader func(path string) ([]addressbook.Record, error)

// Options настраивает Watcher.
type Options struct {
	// Debounce - окно объединения событий. 0 - DefaultDebounce.
	Debounce time.Duration
	// Loader - чтение файла. nil - config.LoadRecords.
	Loader Loader
	// OnReload вызывается после успешной замены таблицы.
	OnReload func(*addressbook.Table)
	// OnError вызывается, если перезагрузка не удалась.
	OnError func(error)
}

// Watcher перечитывает файл адресов и подменяет таблицу в Handle.
//
// Следит за каталогом файла, а не за самим файлом: редакторы часто сохраняют
// через запись во временный файл и rename, и наблюдение за inode теряется.
type Watcher struct {
	path   string
	handle *addressbook.Handle
	opts   Options

	fsw      *fsnotify.Watcher
	reloadMu sync.Mutex
	stopOnce sync.Once
	done     chan struct{}
}

// New создаёт Watcher. Начальная таблица уже должна лежать в handle.
func New(path string, handle *addressbook.Handle, opts Options) (*Watcher, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.Loader == nil {
		opts.Loader = config.LoadRecords
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("наблюдение за %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:   abs,
		handle: handle,
		opts:   opts,
		fsw:    fsw,
		done:   make(chan struct{}),
	}, nil
}

// Path возвращает абсолютный путь к файлу адресов.
func (w *Watcher) Path() string {
	return w.path
}

// Run обрабатывает события до отмены ctx или вызова Stop.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.Stop()

	var timer *time.Timer
	var timerC <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			// Откладываем перезагрузку до конца серии событий
			if timer == nil {
				timer = time.NewTimer(w.opts.Debounce)
				timerC = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.opts.Debounce)
			}

		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := w.Reload(); err != nil {
				log.Printf("Ошибка перезагрузки: %v", err)
				if w.opts.OnError != nil {
					w.opts.OnError(err)
				}
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("Ошибка наблюдения за файлом: %v", err)
		}
	}
}

// relevant - событие относится к нашему файлу и меняет его содержимое.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// Reload синхронно перечитывает файл и подменяет таблицу.
// При ошибке таблица в handle не меняется.
func (w *Watcher) Reload() (*addressbook.Table, error) {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	records, err := w.opts.Loader(w.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReload, err)
	}

	table := addressbook.Build(records)
	for _, key := range table.Collisions() {
		log.Printf("Адрес %s встречается несколько раз, используется последняя запись", key)
	}
	w.handle.Swap(table)
	log.Printf("Адреса перезагружены: %d", table.Len())

	if w.opts.OnReload != nil {
		w.opts.OnReload(table)
	}
	return table, nil
}

// Stop закрывает системный watcher. Повторные вызовы безопасны.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

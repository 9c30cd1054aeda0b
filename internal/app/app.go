// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"addrmemo/internal/addressbook"
	"addrmemo/internal/capture"
	"addrmemo/internal/config"
	"addrmemo/internal/dialog"
	"addrmemo/internal/hotkey"
	"addrmemo/internal/hotkey/oshook"
	"addrmemo/internal/i18n"
	"addrmemo/internal/lookup"
	"addrmemo/internal/notify"
	"addrmemo/internal/tray"
	"addrmemo/internal/watcher"
)

// ErrStartupConfig - файл адресов не удалось загрузить при запуске.
// Без начальной таблицы приложение не стартует.
var ErrStartupConfig = errors.New("не удалось загрузить адреса при запуске")

// shutdownTimeout - сколько Close ждёт остановки фоновых горутин.
const shutdownTimeout = 2 * time.Second

// statusView - то, что приложение показывает в трее.
type statusView interface {
	SetState(tray.State)
	SetRecords(int)
}

type noopStatus struct{}

func (noopStatus) SetState(tray.State) {}
func (noopStatus) SetRecords(int)      {}

// SourceFactory создаёт источник событий для аккорда.
type SourceFactory func(config.HotkeyConfig) (hotkey.Source, error)

// Deps - внешние зависимости приложения. Пустые поля заполняются системными реализациями.
type Deps struct {
	Capturer capture.Capturer
	Notifier *notify.Notifier
	Source   SourceFactory
	Debounce time.Duration
}

// App представляет главное приложение.
type App struct {
	opts     config.Options
	handle   *addressbook.Handle
	watcher  *watcher.Watcher
	pipeline *lookup.Pipeline
	listener *hotkey.Listener
	notifier *notify.Notifier
	source   SourceFactory
	tray     *tray.Tray
	status   statusView

	ctx       context.Context
	cancel    context.CancelFunc
	serving   sync.WaitGroup
	closeOnce sync.Once
}

// New создаёт приложение с системными зависимостями.
func New(opts config.Options) (*App, error) {
	capturer, err := capture.New(opts.SettleDelay)
	if err != nil {
		return nil, err
	}

	a, err := NewWithDeps(opts, Deps{
		Capturer: capturer,
		Notifier: notify.New(opts.Notifications),
		Source: func(chord config.HotkeyConfig) (hotkey.Source, error) {
			return oshook.NewSource(chord)
		},
	})
	if err != nil {
		return nil, err
	}

	// Создаём системный трей с обработчиками
	a.tray = tray.New(tray.Callbacks{
		OnNotificationsToggle: a.notifier.Toggle,
		OnReload:              a.reload,
		OnAbout: func() {
			dialog.ShowAbout(a.About())
		},
		OnQuit: func() {
			a.Close()
		},
	}, opts.Notifications)
	a.status = a.tray
	a.status.SetRecords(a.handle.Read().Len())

	return a, nil
}

// NewWithDeps загружает начальную таблицу и связывает компоненты.
func NewWithDeps(opts config.Options, deps Deps) (*App, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if uiLang := opts.UILanguage; uiLang != "" {
		i18n.SetLanguage(i18n.Language(uiLang))
	}

	handle, err := LoadInitial(opts.Path)
	if err != nil {
		return nil, err
	}

	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.New(opts.Notifications)
	}

	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		opts:     opts,
		handle:   handle,
		notifier: notifier,
		source:   deps.Source,
		status:   noopStatus{},
		listener: hotkey.NewListener(hotkey.NewMachine(opts.Hotkey)),
		ctx:      ctx,
		cancel:   cancel,
	}
	a.pipeline = lookup.New(deps.Capturer, handle, notifier)

	a.watcher, err = watcher.New(opts.Path, handle, watcher.Options{
		Debounce: deps.Debounce,
		OnReload: func(t *addressbook.Table) {
			a.status.SetRecords(t.Len())
			a.status.SetState(tray.StateIdle)
		},
		OnError: func(err error) {
			a.status.SetState(tray.StateError)
			a.notifier.Error(i18n.T("error_reload"))
		},
	})
	if err != nil {
		cancel()
		return nil, err
	}

	return a, nil
}

// LoadInitial синхронно строит первую версию таблицы.
func LoadInitial(path string) (*addressbook.Handle, error) {
	records, err := config.LoadRecords(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStartupConfig, err)
	}
	table := addressbook.Build(records)
	for _, key := range table.Collisions() {
		log.Printf("Адрес %s встречается несколько раз, используется последняя запись", key)
	}
	log.Printf("Загружено адресов: %d из %s", table.Len(), path)
	return addressbook.NewHandle(table), nil
}

// Handle возвращает разделяемую таблицу адресов.
func (a *App) Handle() *addressbook.Handle {
	return a.handle
}

// Run запускает приложение. Блокирует до выхода из трея.
func (a *App) Run() {
	a.tray.Run(func() {
		// Регистрируем горячую клавишу после инициализации трея
		if err := a.Start(); err != nil {
			log.Printf("Ошибка регистрации горячей клавиши: %v", err)
			a.notifier.Error(i18n.T("error_hotkey_register"))
			return
		}
		a.notifier.Info(i18n.T("notify_ready"))
	})
}

// Start регистрирует горячую клавишу и запускает фоновые горутины.
// Если горячую клавишу зарегистрировать не удалось, файл адресов
// всё равно отслеживается, а ошибка возвращается.
func (a *App) Start() error {
	src, err := a.source(a.opts.Hotkey)
	if err != nil {
		a.serving.Add(1)
		go func() {
			defer a.serving.Done()
			if err := a.watcher.Run(a.ctx); err != nil {
				log.Printf("Наблюдение за файлом завершилось с ошибкой: %v", err)
			}
		}()
		return err
	}

	a.serving.Add(1)
	go func() {
		defer a.serving.Done()
		if err := a.Serve(a.ctx, src); err != nil {
			log.Printf("Фоновая обработка завершилась с ошибкой: %v", err)
		}
	}()
	return nil
}

// Serve запускает watcher и обработку горячей клавиши и ждёт их завершения.
// Источник событий закрывается при выходе.
func (a *App) Serve(ctx context.Context, src hotkey.Source) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.watcher.Run(gctx)
	})
	g.Go(func() error {
		return a.listener.Run(gctx, src, a.onFire)
	})
	g.Go(func() error {
		<-gctx.Done()
		return src.Close()
	})

	return g.Wait()
}

func (a *App) onFire(ctx context.Context) {
	a.status.SetState(tray.StateLookup)
	defer a.status.SetState(tray.StateIdle)
	a.pipeline.Handle(ctx)
}

func (a *App) reload() {
	table, err := a.watcher.Reload()
	if err != nil {
		log.Printf("Ошибка перезагрузки: %v", err)
		a.status.SetState(tray.StateError)
		a.notifier.Error(i18n.T("error_reload"))
		return
	}
	a.notifier.Info(fmt.Sprintf("%s: %d", i18n.T("notify_reloaded"), table.Len()))
}

// About возвращает данные для окна "О программе".
func (a *App) About() dialog.AboutInfo {
	return dialog.AboutInfo{
		Hotkey:  a.opts.Hotkey.String(),
		Path:    a.watcher.Path(),
		Records: a.handle.Read().Len(),
	}
}

// Close останавливает фоновые горутины и закрывает трей.
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.cancel()
		a.watcher.Stop()

		done := make(chan struct{})
		go func() {
			a.serving.Wait()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(shutdownTimeout):
			log.Printf("Фоновые горутины не остановились за %s", shutdownTimeout)
		}

		if a.tray != nil {
			a.tray.Quit()
		}
	})
}

package hotkey

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
)

// Source - блокирующий поток событий клавиатуры.
type Source interface {
	// Events возвращает канал событий. Канал закрывается, когда источник остановлен.
	Events() <-chan Event
	// Close останавливает источник и освобождает системный хук.
	Close() error
}

// Listener читает события из Source, прогоняет их через Machine
// и по Fire запускает обработчик в отдельной горутине-воркере.
//
// Очередь на одно задание: цикл событий никогда не ждёт обработчик.
// Если воркер ещё занят, новое срабатывание отбрасывается.
type Listener struct {
	machine *Machine
	dropped atomic.Int64
}

// NewListener создаёт слушателя для автомата.
func NewListener(m *Machine) *Listener {
	return &Listener{machine: m}
}

// Dropped возвращает число срабатываний, отброшенных из-за занятого воркера.
func (l *Listener) Dropped() int64 {
	return l.dropped.Load()
}

// Run блокирует до отмены ctx или закрытия источника.
// onFire вызывается из воркера, по одному вызову за раз.
func (l *Listener) Run(ctx context.Context, src Source, onFire func(context.Context)) error {
	jobs := make(chan struct{}, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range jobs {
			if ctx.Err() != nil {
				continue
			}
			onFire(ctx)
		}
	}()
	defer func() {
		close(jobs)
		wg.Wait()
	}()

	events := src.Events()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				log.Printf("Источник событий клавиатуры закрыт")
				return nil
			}
			if l.machine.Handle(ev) != Fire {
				continue
			}
			select {
			case jobs <- struct{}{}:
			default:
				l.dropped.Add(1)
				log.Printf("Поиск ещё выполняется, нажатие пропущено")
			}
		}
	}
}

package addressbook

import "sync"

// Handle хранит текущую версию таблицы и позволяет атомарно её заменить.
//
// Писатель один (watcher или ручная перезагрузка из трея), читателей сколько угодно.
// Блокировка держится только на время копирования указателя: сам поиск идёт
// по неизменяемому снимку уже без блокировки.
type Handle struct {
	mu      sync.RWMutex
	current *Table
}

// NewHandle создаёт handle с начальной версией таблицы.
func NewHandle(initial *Table) *Handle {
	if initial == nil {
		initial = Build(nil)
	}
	return &Handle{current: initial}
}

// Read возвращает снимок текущей версии.
func (h *Handle) Read() *Table {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

// Swap заменяет текущую версию и возвращает предыдущую.
// nil игнорируется: handle никогда не остаётся пустым.
func (h *Handle) Swap(next *Table) *Table {
	if next == nil {
		return h.Read()
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.current
	h.current = next
	return prev
}

// Lookup - удобная обёртка: Read + Table.Lookup.
func (h *Handle) Lookup(text string) (Record, bool) {
	return h.Read().Lookup(text)
}

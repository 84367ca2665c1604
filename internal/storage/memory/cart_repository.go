package memory

import (
	"strings"
	"sync"

	"github.com/vladislavdragonenkov/bistro/internal/domain"
)

// cartRepositoryInMemory хранит единственную корзину процесса и рассылает её изменения подписчикам.
type cartRepositoryInMemory struct {
	mu    sync.RWMutex
	lines []domain.CartLine

	subsMu  sync.Mutex
	nextSub int
	subs    map[int]func(domain.Cart)
}

// NewCartRepository возвращает пустую in-memory корзину.
func NewCartRepository() domain.CartRepository {
	return &cartRepositoryInMemory{
		subs: make(map[int]func(domain.Cart)),
	}
}

// Add увеличивает количество существующей позиции или добавляет новую в конец.
func (r *cartRepositoryInMemory) Add(name string, priceMinor int64) (domain.CartLine, error) {
	if strings.TrimSpace(name) == "" {
		return domain.CartLine{}, domain.ErrLineNameRequired
	}
	if priceMinor < 0 {
		return domain.CartLine{}, domain.ErrLinePriceInvalid
	}

	r.mu.Lock()
	var line domain.CartLine
	if idx := r.indexLocked(name); idx >= 0 {
		r.lines[idx].Qty++
		line = r.lines[idx]
	} else {
		line = domain.CartLine{Name: name, PriceMinor: priceMinor, Qty: 1}
		r.lines = append(r.lines, line)
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(snapshot)
	return line, nil
}

// Remove удаляет позицию по имени; возвращает false, если её не было.
func (r *cartRepositoryInMemory) Remove(name string) bool {
	r.mu.Lock()
	idx := r.indexLocked(name)
	if idx < 0 {
		r.mu.Unlock()
		return false
	}
	r.lines = append(r.lines[:idx], r.lines[idx+1:]...)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(snapshot)
	return true
}

// UpdateQuantity применяет delta; при количестве <= 0 позиция удаляется.
// Второе значение false, если позиции с таким именем нет.
func (r *cartRepositoryInMemory) UpdateQuantity(name string, delta int) (domain.CartLine, bool) {
	r.mu.Lock()
	idx := r.indexLocked(name)
	if idx < 0 {
		r.mu.Unlock()
		return domain.CartLine{}, false
	}

	line := r.lines[idx]
	line.Qty += delta
	if line.Qty <= 0 {
		r.lines = append(r.lines[:idx], r.lines[idx+1:]...)
	} else {
		r.lines[idx] = line
	}
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.publish(snapshot)
	return line, true
}

// Reset очищает корзину.
func (r *cartRepositoryInMemory) Reset() {
	r.mu.Lock()
	r.lines = nil
	r.mu.Unlock()

	r.publish(domain.Cart{})
}

// Snapshot возвращает копию позиций в порядке добавления.
func (r *cartRepositoryInMemory) Snapshot() domain.Cart {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

// Subscribe регистрирует обработчик изменений.
func (r *cartRepositoryInMemory) Subscribe(fn func(domain.Cart)) func() {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn

	return func() {
		r.subsMu.Lock()
		defer r.subsMu.Unlock()
		delete(r.subs, id)
	}
}

func (r *cartRepositoryInMemory) indexLocked(name string) int {
	for i, line := range r.lines {
		if line.Name == name {
			return i
		}
	}
	return -1
}

func (r *cartRepositoryInMemory) snapshotLocked() domain.Cart {
	result := make(domain.Cart, len(r.lines))
	copy(result, r.lines)
	return result
}

// publish вызывает подписчиков вне блокировки корзины.
func (r *cartRepositoryInMemory) publish(snapshot domain.Cart) {
	r.subsMu.Lock()
	subs := make([]func(domain.Cart), 0, len(r.subs))
	for _, fn := range r.subs {
		subs = append(subs, fn)
	}
	r.subsMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)

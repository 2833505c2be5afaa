package repository

import (
	"context"
	"sync"
	"time"
)

const (
	cacheSweepInterval     = time.Minute
	defaultCacheMaxEntries = 10_000
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache es la caché en proceso usada cuando no hay Redis configurado
// y en las pruebas. Tiene un máximo de entradas y una limpieza periódica de
// las vencidas; al llenarse descarta la entrada más próxima a vencer.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]memoryEntry
	maxEntries int
	now        func() time.Time
	done       chan struct{}
	stopOnce   sync.Once
}

// NewMemoryCache crea la caché y arranca la limpieza. Un máximo no positivo
// usa 10000. Llame a Stop al terminar.
func NewMemoryCache(maxEntries int) *MemoryCache {
	m := newMemoryCache(maxEntries, time.Now)
	go m.sweepLoop()
	return m
}

func newMemoryCache(maxEntries int, now func() time.Time) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheMaxEntries
	}
	return &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        now,
		done:       make(chan struct{}),
	}
}

func (m *MemoryCache) sweepLoop() {
	ticker := time.NewTicker(cacheSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

// sweep elimina las entradas vencidas y devuelve cuántas quitó.
func (m *MemoryCache) sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(m.now())
}

func (m *MemoryCache) sweepLocked(now time.Time) int {
	removed := 0
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
			removed++
		}
	}
	return removed
}

// Stop detiene la limpieza periódica. Es seguro llamarlo más de una vez.
func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if _, exists := m.data[key]; !exists && len(m.data) >= m.maxEntries {
		if m.sweepLocked(now) == 0 {
			m.evictSoonestLocked()
		}
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// evictSoonestLocked quita la entrada que vence primero; las entradas sin
// vencimiento se quitan al final.
func (m *MemoryCache) evictSoonestLocked() {
	var (
		victim  string
		soonest time.Time
		found   bool
	)
	for key, entry := range m.data {
		if !found || soonerThan(entry.expiresAt, soonest) {
			victim, soonest, found = key, entry.expiresAt, true
		}
	}
	if found {
		delete(m.data, victim)
	}
}

func soonerThan(a, b time.Time) bool {
	switch {
	case a.IsZero():
		return false
	case b.IsZero():
		return true
	default:
		return a.Before(b)
	}
}

// Len devuelve el número de entradas, vencidas o no.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

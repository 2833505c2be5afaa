package repository

import (
	"sync"

	"github.com/pkg/errors"

	"credit-advisor/domain"
)

// AdviceRepositoryMemory es una implementación en memoria de
// AdviceRepository con capacidad fija; al llenarse descarta la sesión más
// antigua.
type AdviceRepositoryMemory struct {
	mu       sync.RWMutex
	capacity int
	order    []string
	data     map[string]domain.Advice
}

// NewAdviceRepositoryMemory crea el repositorio. Una capacidad no positiva
// usa 1000.
func NewAdviceRepositoryMemory(capacity int) *AdviceRepositoryMemory {
	if capacity <= 0 {
		capacity = 1000
	}
	return &AdviceRepositoryMemory{
		capacity: capacity,
		order:    []string{},
		data:     make(map[string]domain.Advice),
	}
}

// Save guarda o reemplaza la recomendación de la sesión.
func (r *AdviceRepositoryMemory) Save(sessionID string, advice domain.Advice) error {
	if sessionID == "" {
		return errors.New("session id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.data[sessionID]; !exists {
		if len(r.order) >= r.capacity {
			oldest := r.order[0]
			r.order = r.order[1:]
			delete(r.data, oldest)
		}
		r.order = append(r.order, sessionID)
	}
	r.data[sessionID] = advice
	return nil
}

// Find devuelve la recomendación guardada para la sesión.
func (r *AdviceRepositoryMemory) Find(sessionID string) (domain.Advice, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	advice, ok := r.data[sessionID]
	return advice, ok
}

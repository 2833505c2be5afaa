package http

import (
	"sync"
	"time"
)

const (
	staleBucketAfter = time.Hour
	sweepInterval    = 30 * time.Minute
)

// bucket guarda los tokens de un cliente dentro de la ventana actual.
type bucket struct {
	remaining   int
	windowStart time.Time
	lastSeen    time.Time
}

// RateLimiter es un token bucket por cliente: al cumplirse la ventana se
// repone la capacidad completa.
type RateLimiter struct {
	mu       sync.Mutex
	capacity int
	window   time.Duration
	clients  map[string]*bucket
	now      func() time.Time
	done     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter crea el limitador y arranca la limpieza de clientes
// inactivos. Llame a Stop al apagar el servidor.
func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := newRateLimiter(capacity, window, time.Now)
	go rl.sweepLoop()
	return rl
}

func newRateLimiter(capacity int, window time.Duration, now func() time.Time) *RateLimiter {
	if capacity <= 0 {
		capacity = 1
	}
	return &RateLimiter{
		capacity: capacity,
		window:   window,
		clients:  make(map[string]*bucket),
		now:      now,
		done:     make(chan struct{}),
	}
}

func (r *RateLimiter) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			r.cleanup()
		}
	}
}

// cleanup olvida a los clientes sin solicitudes en staleBucketAfter.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-staleBucketAfter)
	for client, b := range r.clients {
		if b.lastSeen.Before(cutoff) {
			delete(r.clients, client)
		}
	}
}

// Stop detiene la limpieza periódica. Es seguro llamarlo más de una vez.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.done) })
}

// Allow consume un token del cliente. Cuando lo rechaza, el segundo valor es
// el tiempo que falta para la recarga.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	b, ok := r.clients[client]
	if !ok {
		b = &bucket{remaining: r.capacity, windowStart: now}
		r.clients[client] = b
	}
	b.lastSeen = now

	if elapsed := now.Sub(b.windowStart); elapsed >= r.window {
		b.remaining = r.capacity
		b.windowStart = now
	}

	return b.take(r.window, now)
}

func (b *bucket) take(window time.Duration, now time.Time) (bool, time.Duration) {
	if b.remaining == 0 {
		return false, window - now.Sub(b.windowStart)
	}
	b.remaining--
	return true, 0
}

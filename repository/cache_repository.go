package repository

import (
	"context"
	"time"
)

// CacheRepository guarda respuestas serializadas del motor de inferencia.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

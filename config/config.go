package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type InferenceConfig struct {
	BaseURL      string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
}

type RateLimitConfig struct {
	Capacity int
	Window   time.Duration
}

type Config struct {
	HTTPAddr          string
	Inference         InferenceConfig
	RedisAddr         string // vacío = caché en memoria
	CacheTTL          time.Duration
	CacheMaxEntries   int
	RateLimit         RateLimitConfig
	TrustedProxies    []string // IPs o CIDR cuyo X-Forwarded-For se acepta
	AdviceHistorySize int
	LogLevel          string
	LogFormat         string
	ShutdownTimeout   time.Duration
}

// Load lee la configuración desde variables de entorno con valores por
// defecto para desarrollo.
func Load() Config {
	return Config{
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Inference: InferenceConfig{
			BaseURL:      getEnv("INFERENCE_ENGINE_URL", "http://localhost:8000"),
			Timeout:      getEnvDuration("INFERENCE_TIMEOUT", 30*time.Second),
			MaxRetries:   getEnvInt("INFERENCE_MAX_RETRIES", 2),
			RetryBackoff: getEnvDuration("INFERENCE_RETRY_BACKOFF", 200*time.Millisecond),
		},
		RedisAddr:       getEnv("REDIS_ADDR", ""),
		CacheTTL:        getEnvDuration("CACHE_TTL", 10*time.Minute),
		CacheMaxEntries: getEnvInt("CACHE_MAX_ENTRIES", 10_000),
		RateLimit: RateLimitConfig{
			Capacity: getEnvInt("RATE_LIMIT_CAPACITY", 30),
			Window:   getEnvDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		TrustedProxies:    getEnvList("TRUSTED_PROXIES"),
		AdviceHistorySize: getEnvInt("ADVICE_HISTORY_SIZE", 1000),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		ShutdownTimeout:   getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// Validate checks that the configuration can start the server.
func (c Config) Validate() error {
	if strings.TrimSpace(c.HTTPAddr) == "" {
		return errors.New("HTTP_ADDR is required")
	}
	if strings.TrimSpace(c.Inference.BaseURL) == "" {
		return errors.New("INFERENCE_ENGINE_URL is required")
	}
	if c.Inference.MaxRetries < 0 {
		return errors.Errorf("INFERENCE_MAX_RETRIES must be >= 0, got %d", c.Inference.MaxRetries)
	}
	if c.RateLimit.Capacity <= 0 {
		return errors.Errorf("RATE_LIMIT_CAPACITY must be > 0, got %d", c.RateLimit.Capacity)
	}
	if c.CacheMaxEntries <= 0 {
		return errors.Errorf("CACHE_MAX_ENTRIES must be > 0, got %d", c.CacheMaxEntries)
	}
	if c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT_WINDOW must be a positive duration")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// getEnvList separa por comas y descarta elementos vacíos.
func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

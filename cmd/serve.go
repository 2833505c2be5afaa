package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"credit-advisor/config"
	httpLayer "credit-advisor/http"
	"credit-advisor/inference"
	"credit-advisor/observability"
	"credit-advisor/repository"
	"credit-advisor/service"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveAddr string

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Inicia la API HTTP",
	Long: `Inicia la API HTTP. La configuración se lee de variables de entorno
(HTTP_ADDR, INFERENCE_ENGINE_URL, REDIS_ADDR, TRUSTED_PROXIES, LOG_LEVEL,
...); --addr reemplaza a HTTP_ADDR.`,
	RunE: runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "dirección de escucha (reemplaza a HTTP_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) (err error) {
	cfg := config.Load()
	if serveAddr != "" {
		cfg.HTTPAddr = serveAddr
	}
	if getVerbose() {
		cfg.LogLevel = "debug"
	}
	err = cfg.Validate()
	if err != nil {
		err = errors.Wrap(err, "configuración inválida")
		return err
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	metrics := observability.NewMetrics()

	engine, err := inference.NewClient(inference.Config{
		BaseURL:      cfg.Inference.BaseURL,
		Timeout:      cfg.Inference.Timeout,
		MaxRetries:   cfg.Inference.MaxRetries,
		RetryBackoff: cfg.Inference.RetryBackoff,
	}, nil, logger)
	if err != nil {
		return err
	}

	memoryCache := repository.NewMemoryCache(cfg.CacheMaxEntries)
	defer memoryCache.Stop()

	var cache repository.CacheRepository = memoryCache
	if cfg.RedisAddr != "" {
		redisCache := repository.NewRedisCache(cfg.RedisAddr, logger)
		defer redisCache.Close()

		pingCtx, cancel := context.WithTimeout(cmd.Context(), 3*time.Second)
		defer cancel()
		if pingErr := redisCache.Ping(pingCtx); pingErr != nil {
			logger.Warn("redis unavailable, using in-memory cache", "addr", cfg.RedisAddr, "error", pingErr)
		} else {
			cache = redisCache
		}
	}

	history := repository.NewAdviceRepositoryMemory(cfg.AdviceHistorySize)
	advisor := service.NewAdvisorService(engine, cache, history, metrics, logger, cfg.CacheTTL)
	handler := httpLayer.NewCreditHandler(advisor, logger)

	proxies, err := httpLayer.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		err = errors.Wrap(err, "TRUSTED_PROXIES inválido")
		return err
	}

	rateLimiter := httpLayer.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimit.Window)
	defer rateLimiter.Stop()

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpLayer.NewRouter(handler, rateLimiter, proxies, metrics),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Inference.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", cfg.HTTPAddr, "inference_engine", cfg.Inference.BaseURL)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-serverErr:
		err = errors.Wrap(err, "no se pudo iniciar el servidor")
		return err
	case <-quit:
		logger.Info("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	err = server.Shutdown(ctx)
	if err != nil {
		err = errors.Wrap(err, "error al apagar el servidor")
		return err
	}

	logger.Info("server exited")
	return nil
}

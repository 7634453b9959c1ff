package application

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eugenenazirov/roman-numerals/internal/api"
	"github.com/eugenenazirov/roman-numerals/internal/cache"
	"github.com/eugenenazirov/roman-numerals/internal/config"
	"github.com/eugenenazirov/roman-numerals/internal/numeral"
	"github.com/eugenenazirov/roman-numerals/internal/storage"
)

const redisConnectTimeout = 3 * time.Second

// App encapsulates the application dependencies and HTTP server.
type App struct {
	history   storage.History
	converter *cache.CachingConverter
	redis     *redis.Client
	handler   *api.Handler
	router    http.Handler
	logger    *zap.Logger
	server    *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	history, err := storage.NewMemoryHistory(cfg.HistorySize)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversion history: %w", err)
	}

	var rdb *redis.Client
	if cfg.Cache.Addr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		defer cancel()

		rdb, err = cache.NewRedisClient(ctx, cfg.Cache.Addr, cfg.Cache.Password, cfg.Cache.DB)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to conversion cache: %w", err)
		}
		logger.Info("conversion cache enabled",
			zap.String("addr", cfg.Cache.Addr),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
	}

	conv := cache.NewCachingConverter(rdb, cfg.Cache.TTL, numeral.New(), cfg.Cache.Namespace)
	handler := api.NewHandler(conv, history)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		history:   history,
		converter: conv,
		redis:     rdb,
		handler:   handler,
		router:    apiRouter,
		logger:    logger,
		server:    NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler mounts the API under /api/ and answers everything else with 404.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening",
			zap.String("addr", a.server.Addr),
			zap.Bool("cache_enabled", a.converter.Enabled()),
		)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}

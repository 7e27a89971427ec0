package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/bonfilet/quoteapi/internal/api"
	"github.com/bonfilet/quoteapi/internal/cache"
	"github.com/bonfilet/quoteapi/internal/catalog"
	"github.com/bonfilet/quoteapi/internal/config"
	"github.com/bonfilet/quoteapi/internal/currency"
	"github.com/bonfilet/quoteapi/internal/repository"
	"github.com/bonfilet/quoteapi/internal/repository/postgres"
	"github.com/bonfilet/quoteapi/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Quote log is optional
	repos := repository.NewNoopRepositories()
	if cfg.Database.Enabled() {
		db, err := postgres.NewConnection(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()
		repos = postgres.NewRepositories(db, logger)
		logger.Info("Quote log enabled", zap.String("host", cfg.Database.Host))
	}

	// Quote cache is optional
	var quotes cache.QuoteCache = cache.NopQuoteCache{}
	if cfg.Redis.Enabled() && cfg.CatalogCacheBypass() {
		logger.Info("Quote cache disabled while catalog files are re-read on every request")
	} else if cfg.Redis.Enabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		defer rdb.Close()
		quotes = cache.NewRedisQuoteCache(rdb, cfg.QuoteCacheTTL, logger)
		logger.Info("Quote cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.QuoteCacheTTL))
	}

	provider := catalog.NewFileProvider(cfg.DataDir, catalog.NewCache(cfg.CatalogCacheBypass()), logger)
	quoteService := service.NewQuoteService(provider, currency.NewConverter(), repos, quotes, logger)
	services := &api.Services{
		Quotes:  quoteService,
		Catalog: service.NewCatalogService(provider, quoteService.Engine(), logger),
	}

	router := api.NewRouter(cfg, services, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("data_dir", cfg.DataDir),
			zap.Bool("catalog_cache_bypass", cfg.CatalogCacheBypass()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}
}

func initLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Environment == "production" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = level

	return zapCfg.Build()
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/lfmorais/stockledger/internal/adapter/handler"
	"github.com/lfmorais/stockledger/internal/adapter/storage"
	"github.com/lfmorais/stockledger/internal/config"
	"github.com/lfmorais/stockledger/internal/core/service"
	"github.com/lfmorais/stockledger/internal/core/store"
	"github.com/lfmorais/stockledger/internal/port"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	blobs, closeBlobs, err := openBlobStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open blob store", zap.Error(err))
	}
	defer closeBlobs()

	catalog, err := store.OpenCatalog(ctx, blobs, cfg.CatalogKey, logger)
	if err != nil {
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	ledger, err := store.OpenLedger(ctx, blobs, cfg.LedgerKey, logger)
	if err != nil {
		logger.Fatal("failed to load ledger", zap.Error(err))
	}
	logger.Info("collections loaded",
		zap.Int("products", len(catalog.List())),
		zap.Int("sales", len(ledger.List())),
	)

	sales := service.NewSaleService(catalog, ledger, logger)
	h := handler.NewHandler(catalog, ledger, sales, logger)

	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.NewRouter(h, logger),
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown error", zap.Error(err))
	}
	logger.Info("HTTP server stopped")
}

// openBlobStore builds the configured persistence adapter and verifies it is
// reachable before any collection loads from it.
func openBlobStore(ctx context.Context, cfg config.Config, logger *zap.Logger) (port.BlobStore, func(), error) {
	switch cfg.StorageBackend {
	case config.BackendRedis:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		return storage.NewRedisAdapter(rdb), func() { rdb.Close() }, nil

	case config.BackendMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("open mysql: %w", err)
		}
		db.SetMaxOpenConns(10)
		db.SetConnMaxLifetime(5 * time.Minute)
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("ping mysql: %w", err)
		}
		adapter := storage.NewMySQLAdapter(db)
		if err := adapter.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("connected to mysql")
		return adapter, func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}

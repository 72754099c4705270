package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/httpx"
	"bookstore/internal/logging"
	"bookstore/internal/platform/database"
	"bookstore/internal/server"

	"github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookstore: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		return err
	}
	defer st.close()

	bookService := book.NewService(st.repo, logger.Named("book"))
	bookHandler := book.NewHTTPHandler(bookService, logger.Named("http"))

	deps := server.Deps{
		Books:          bookHandler,
		Logger:         logger,
		Metrics:        httpx.NewMetrics("bookstore"),
		Ready:          st.ping,
		MaxBodyBytes:   cfg.Server.MaxBodyBytes,
		EnableHSTS:     cfg.Server.EnableHSTS,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}
	if cfg.RateLimit.RPS > 0 {
		deps.RateLimiter = httpx.NewRateLimitMiddleware(ctx, cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      server.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", cfg.Addr), zap.String("driver", cfg.Database.Driver))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type backend struct {
	repo  book.Repository
	ping  func(ctx context.Context) error
	close func()
}

func openStore(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		sqlDB, err := database.OpenSQLite(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, cfg.Driver, sqlDB, logger); err != nil {
				sqlDB.Close()
				return nil, err
			}
		}
		return &backend{
			repo:  book.NewSQLiteRepo(sqlDB, cfg.Timeout),
			ping:  sqlDB.PingContext,
			close: func() { _ = sqlDB.Close() },
		}, nil
	default:
		pool, err := database.OpenPostgres(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		if cfg.AutoMigrate {
			// the *sql.DB borrows connections from pool and is not closed separately
			if err := database.Migrate(ctx, cfg.Driver, stdlib.OpenDBFromPool(pool), logger); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &backend{
			repo:  book.NewPostgresRepo(pool, cfg.Timeout),
			ping:  pool.Ping,
			close: pool.Close,
		}, nil
	}
}

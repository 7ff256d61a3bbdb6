package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/OctaInsight/kpi-dashboard/internal/config"
	"github.com/OctaInsight/kpi-dashboard/internal/csvstore"
	"github.com/OctaInsight/kpi-dashboard/internal/domain/kpi"
	"github.com/OctaInsight/kpi-dashboard/internal/domain/session"
	"github.com/OctaInsight/kpi-dashboard/internal/sqlite"
	"github.com/OctaInsight/kpi-dashboard/internal/store"
	"github.com/OctaInsight/kpi-dashboard/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	recordStore, cleanup, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	recordSvc := kpi.NewService(recordStore, logger)
	sessionSvc := session.NewService(cfg.Projects, logger)

	router := transport.NewServer(recordSvc, sessionSvc, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr, "backend", cfg.Storage.Backend)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func openStore(cfg config.Config, logger *slog.Logger) (store.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		if err := ensureDBDir(cfg.Storage.SQLitePath); err != nil {
			return nil, nil, fmt.Errorf("preparing database path: %w", err)
		}
		db, err := sqlite.New(cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			db.Close()
			return nil, nil, err
		}
		logger.Info("using sqlite store", "path", cfg.Storage.SQLitePath)
		return sqlite.NewRecordStore(db), func() { db.Close() }, nil
	default:
		s, err := csvstore.New(cfg.Storage.CSVDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using csv store", "dir", cfg.Storage.CSVDir)
		return s, func() {}, nil
	}
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

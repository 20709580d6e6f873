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

	"loadboard/cmd"
	httpin "loadboard/internal/adapters/in/http"
	"loadboard/internal/adapters/out/postgres"
	"loadboard/internal/adapters/out/postgres/migrations"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("loadboard: %v", err)
	}
}

func run() error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	logger, logCloser, err := cmd.NewLogger(configs)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	dsn := postgres.DSN(configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)
	gormDB, sqlDB, err := postgres.Open(dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err = migrations.Up(sqlDB); err != nil {
		return err
	}
	logger.Info("Database schema is up to date")

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Error("Failed to close notification publisher", "error", closeErr)
		}
	}()

	auth, err := httpin.NewAuthenticator(configs.AuthJWTSecret, configs.AuthJWTIssuer)
	if err != nil {
		return err
	}
	e, err := httpin.NewRouter(app.CreateHTTPServer(), auth, httpin.RouterConfig{
		RequestTimeout: configs.StoreTimeout,
		Health:         sqlDB,
	}, logger)
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)
		logger.Info("HTTP server listening", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"cuentas/internal/backend"
	"cuentas/internal/cli"
	"cuentas/internal/core"
	apphttp "cuentas/internal/http"
)

func main() {
	logger := cli.SetupLogger()
	cli.LoadEnvFile()
	cfg := cli.LoadAndValidateConfig(logger)

	engine, err := core.NewEngine(cfg.Settings())
	if err != nil {
		logger.Error("Failed to build ledger engine", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(cfg.Settings(), logger)
	result, err := factory.CreateBackend(context.Background(), backend.Config{
		Type:                backend.BackendType(cfg.DataBackend),
		SQLiteDBPath:        cfg.SQLiteDBPath,
		AMQPURL:             cfg.AMQPURL,
		AMQPExchange:        cfg.AMQPExchange,
		AMQPQueue:           cfg.AMQPQueue,
		GoogleSpreadsheetID: cfg.GoogleSpreadsheetID,
		GoogleSheetName:     cfg.GoogleSheetName,
	})
	if err != nil {
		logger.Error("Failed to initialize backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, engine, result.Backend, logger)

	ctx, shutdown := cli.SignalContext(logger, 30*time.Second, func() {
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})
	defer shutdown()

	// Stop accepting connections once the signal context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("Starting cuentas server",
		"port", cfg.Port,
		"backend", cfg.DataBackend,
		"members", cfg.Members)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"tddbank/internal/amqp"
	"tddbank/internal/auth"
	"tddbank/internal/backend"
	"tddbank/internal/cli"
	apphttp "tddbank/internal/http"
	"tddbank/internal/log"
	"tddbank/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting bankd")

	cfg := cli.LoadAndValidateConfig(logger)

	// Select the data backend (default: memory).
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Backend configuration invalid", log.FieldError, err)
		os.Exit(1)
	}
	if err := backendCfg.Validate(); err != nil {
		logger.Error("Backend configuration invalid", log.FieldError, err)
		os.Exit(1)
	}
	factory := backend.NewFactory(logger.Logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to initialize backend",
			log.FieldError, err, "backend", backendCfg.Type.String())
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() { _ = result.Cleanup() }()
	}
	logger.Info("Backend initialized", "backend", backendCfg.Type.String())

	// AMQP is optional; without it audit events are simply not published.
	var auditPublisher services.AuditPublisher
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, audit events disabled",
				log.FieldError, err)
		} else {
			defer amqpClient.Close()
			auditPublisher = amqpClient
			logger.Info("AMQP client initialized, audit events enabled")
		}
	} else {
		logger.Info("AMQP disabled, audit events will not be published")
	}

	sessions := auth.NewService(cfg.SessionSecret, result.Backend, logger)
	checker := auth.NewChecker(auth.AuthorizedCredentials, cfg.SignInLatency)
	accounts := services.NewAccountService(result.Backend, auditPublisher)

	srv := apphttp.NewServer(apphttp.Options{
		Addr:                ":" + cfg.Port,
		Sessions:            sessions,
		Checker:             checker,
		Accounts:            accounts,
		Backend:             result.Backend,
		Logger:              logger,
		SignInRatePerMinute: cfg.SignInRatePerMinute,
	})

	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", log.FieldError, err)
		}
	})

	logger.Info("Starting bankd server", "port", cfg.Port, "backend", backendCfg.Type.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", log.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/olliswe/bcp-to-t3-api/httpapp"
	"github.com/olliswe/bcp-to-t3-api/internal/api/http/handlers"
	"github.com/olliswe/bcp-to-t3-api/internal/app"
	"github.com/olliswe/bcp-to-t3-api/internal/config"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/tracing"
	"go.uber.org/zap"
)

const serviceName = "bcp-to-t3"

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := app.SetupLogger(cfg.Log.Level)
	defer func() {
		_ = log.Sync()
	}()

	tp, err := tracing.InitTracer(serviceName, cfg.Jaeger.Address)
	if err != nil {
		log.Warn("tracing disabled", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracing.Shutdown(ctx, tp); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	log.Info("bcp-to-t3 starting",
		zap.String("env", cfg.Env),
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.Bool("remote_browser", cfg.Browser.RemoteURL != ""),
	)

	aggregator := app.NewAggregator(log, cfg)
	nicknameHandler := handlers.NewNicknameHandler(log, aggregator)
	eventHandler := handlers.NewEventHandler(log, aggregator)

	server := httpapp.New(log, httpapp.Options{
		Host:            cfg.HTTP.Host,
		Port:            cfg.HTTP.Port,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, func(r chi.Router) {
		handlers.Register(r, nicknameHandler, eventHandler)
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
		server.Stop()
	case err := <-errCh:
		if err != nil {
			log.Error("http server stopped", zap.Error(err))
		}
	}
}

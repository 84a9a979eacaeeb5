// Package app assembles the aggregator from configuration.
package app

import (
	"strings"

	"github.com/olliswe/bcp-to-t3-api/internal/application/service"
	"github.com/olliswe/bcp-to-t3-api/internal/config"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp"
	bcpclient "github.com/olliswe/bcp-to-t3-api/internal/infrastructures/bcp/http/client"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/browser"
	"github.com/olliswe/bcp-to-t3-api/internal/infrastructures/t3"
	t3client "github.com/olliswe/bcp-to-t3-api/internal/infrastructures/t3/http/client"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewAggregator(log *zap.Logger, cfg *config.Config) *service.AggregatorService {
	events := bcp.NewSource(
		bcpclient.NewClient(cfg.BCP.BaseURL, nil, cfg.BCP.Timeout),
		cfg.BCP.PageSize,
		cfg.BCP.MaxPages,
	)
	nicknames := t3.NewSource(t3client.NewClient(cfg.T3.SearchURL, nil, cfg.T3.Timeout))

	chrome := browser.New(log.Named("browser"), browser.Config{
		RemoteURL:   cfg.Browser.RemoteURL,
		Headless:    cfg.Browser.Headless,
		WaitTimeout: cfg.Browser.WaitTimeout,
	})
	roster := service.NewRosterExtractor(log, chrome)

	return service.NewAggregatorService(log, roster, nicknames, events, cfg.Aggregator.LookupConcurrency)
}

func SetupLogger(level string) *zap.Logger {
	zapLevel := ParseLogLevel(level)
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)

	log, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return log
}

func ParseLogLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Package main runs the strategy analysis HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"stock-strategy-lab/internal/analysis"
	"stock-strategy-lab/internal/config"
	"stock-strategy-lab/internal/httpapi"
	"stock-strategy-lab/internal/lookup"
	"stock-strategy-lab/internal/marketdata"
	"stock-strategy-lab/internal/marketdata/stub"
)

func main() {
	cfg := config.Load()

	// Flags override environment values.
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	providerURL := flag.String("provider-url", cfg.ProviderBaseURL, "Market data provider base URL")
	catalogPath := flag.String("catalog", cfg.CatalogPath, "Stock catalog YAML file (empty for built-in)")
	useStub := flag.Bool("use-stub", cfg.UseStub, "Use the synthetic market data source")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := newLogger(*logLevel)

	catalog := lookup.DefaultCatalog()
	if *catalogPath != "" {
		loaded, err := lookup.LoadCatalog(*catalogPath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", *catalogPath).Msg("load catalog")
		}
		catalog = loaded
	}

	var source marketdata.Source
	switch {
	case *useStub:
		logger.Info().Msg("using synthetic market data source")
		source = stub.NewSource()
	case *providerURL != "":
		clientCfg := marketdata.DefaultClientConfig(*providerURL)
		clientCfg.RequestTimeout = cfg.ProviderTimeout
		source = marketdata.NewClient(clientCfg)
	default:
		logger.Fatal().Msg("either --provider-url or --use-stub is required")
	}

	svc := analysis.NewService(source, catalog, logger)
	server := httpapi.NewServer(svc, logger, httpapi.DefaultOptions(*addr))

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		logger.Error().Err(err).Msg("server stopped")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown incomplete")
	}
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}

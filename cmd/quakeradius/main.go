package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/quake-radius/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/quake-radius/internal/adapter/kafka"
	"github.com/couchcryptid/quake-radius/internal/adapter/usgs"
	"github.com/couchcryptid/quake-radius/internal/config"
	"github.com/couchcryptid/quake-radius/internal/domain"
	"github.com/couchcryptid/quake-radius/internal/observability"
	"github.com/couchcryptid/quake-radius/internal/report"
	"github.com/couchcryptid/quake-radius/internal/search"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	opts, err := applyFlags(cfg, os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("invalid arguments", "error", err)
		os.Exit(2)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	geocoder := newGeocoder(cfg, metrics, logger)
	feed := usgs.NewClient(cfg.FeedURL, cfg.FeedTimeout, logger, metrics)

	var publisher search.Publisher
	var writer *kafkaadapter.Writer
	if len(cfg.KafkaBrokers) > 0 {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaTopic, logger)
		publisher = writer
		logger.Info("kafka publishing enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaTopic)
	}

	runner := search.New(feed, geocoder, publisher, search.Options{
		Address:       cfg.Address,
		DefaultOrigin: domain.GeoPoint{Lat: cfg.DefaultLat, Lon: cfg.DefaultLon},
		RadiusMiles:   cfg.RadiusMiles,
		WindowDays:    cfg.WindowDays,
	}, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var code int
	if cfg.Watching() {
		watch(ctx, cfg, runner, logger)
	} else {
		code = searchOnce(ctx, runner, opts, os.Stdout, os.Stderr, logger)
	}

	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}
	stop()
	os.Exit(code)
}

// searchOnce runs a single search and prints it. It returns the process exit code.
func searchOnce(ctx context.Context, runner *search.Runner, opts cliOptions, stdout, stderr io.Writer, logger *slog.Logger) int {
	result, err := runner.Search(ctx)
	if err != nil && result.RunID == "" {
		fmt.Fprintln(stderr, err)
		return 1
	}

	write := report.Write
	if opts.json {
		write = report.WriteJSON
	}
	if werr := write(stdout, result); werr != nil {
		logger.Error("write report failed", "error", werr)
		return 1
	}

	if err != nil {
		logger.Error("search completed but publishing failed", "error", err)
		return 1
	}
	return 0
}

// watch serves HTTP and repeats the search until a shutdown signal arrives.
func watch(ctx context.Context, cfg *config.Config, runner *search.Runner, logger *slog.Logger) {
	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, runner, logger)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	if err := runner.Watch(ctx, cfg.WatchInterval); err != nil {
		logger.Error("watch error", "error", err)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

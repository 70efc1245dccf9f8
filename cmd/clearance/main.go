package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/launch-clearance/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/launch-clearance/internal/adapter/kafka"
	"github.com/couchcryptid/launch-clearance/internal/adapter/meteomatics"
	"github.com/couchcryptid/launch-clearance/internal/adapter/spacetrack"
	"github.com/couchcryptid/launch-clearance/internal/adapter/swpc"
	"github.com/couchcryptid/launch-clearance/internal/config"
	"github.com/couchcryptid/launch-clearance/internal/decision"
	"github.com/couchcryptid/launch-clearance/internal/observability"
	"github.com/couchcryptid/launch-clearance/internal/sites"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	registry, err := sites.Load(cfg.SitesFile)
	if err != nil {
		logger.Error("failed to load site registry", "error", err)
		os.Exit(1)
	}
	logger.Info("site registry loaded", "sites", registry.Codes())

	weather := meteomatics.NewClient(cfg.MeteomaticsBaseURL, cfg.MeteomaticsUsername, cfg.MeteomaticsPassword, cfg.MeteomaticsTimeout, logger)
	spaceWeather := swpc.NewClient(cfg.SWPCBaseURL, cfg.SWPCTimeout, logger)
	conjunction := spacetrack.NewClient(cfg.SpaceTrackBaseURL, cfg.SpaceTrackUsername, cfg.SpaceTrackPassword, cfg.SpaceTrackTimeout, logger)

	// Decision publishing is feature-flagged via KAFKA_ENABLED.
	var publisher decision.Publisher
	var writer *kafkaadapter.Writer
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		publisher = writer
		metrics.PublisherEnabled.Set(1)
		logger.Info("decision publisher enabled", "topic", cfg.KafkaDecisionTopic, "brokers", cfg.KafkaBrokers)
	} else {
		logger.Info("decision publisher disabled")
	}

	decider := decision.New(registry, weather, spaceWeather, conjunction, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, decider, registry, decider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

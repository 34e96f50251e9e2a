package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/reliantgeo/tank-compliance-etl/internal/adapter/http"
	kafkaadapter "github.com/reliantgeo/tank-compliance-etl/internal/adapter/kafka"
	"github.com/reliantgeo/tank-compliance-etl/internal/adapter/mapbox"
	"github.com/reliantgeo/tank-compliance-etl/internal/config"
	"github.com/reliantgeo/tank-compliance-etl/internal/domain"
	"github.com/reliantgeo/tank-compliance-etl/internal/observability"
	"github.com/reliantgeo/tank-compliance-etl/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	opts := domain.Options{
		MinSeparationFeet:     cfg.MinSeparationFeet,
		GallonsPerCubicFoot:   cfg.GallonsPerCubicFoot,
		NameHeuristicFallback: cfg.BoundaryNameFallback,
	}
	// A configured origin pins the projection for all sites; otherwise each
	// site projects around its own boundary centroid.
	if cfg.ProjectionOriginLat != 0 || cfg.ProjectionOriginLon != 0 {
		opts.Projection = domain.NewLocalTangentProjection(domain.Point{
			Lat: cfg.ProjectionOriginLat,
			Lon: cfg.ProjectionOriginLon,
		})
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(geocoder, opts, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start ETL pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

package pipeline

import (
	"context"
	"log/slog"

	"github.com/reliantgeo/tank-compliance-etl/internal/domain"
	"github.com/reliantgeo/tank-compliance-etl/internal/observability"
)

// SiteTransformer implements Transformer by parsing a raw site document,
// resolving pending tank locations, and running the analysis engine.
type SiteTransformer struct {
	geocoder domain.Geocoder
	opts     domain.Options
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a SiteTransformer. Pass a nil geocoder to disable
// address resolution for tanks without surveyed coordinates.
func NewTransformer(geocoder domain.Geocoder, opts domain.Options, logger *slog.Logger, metrics *observability.Metrics) *SiteTransformer {
	return &SiteTransformer{
		geocoder: geocoder,
		opts:     opts,
		logger:   logger,
		metrics:  metrics,
	}
}

func (t *SiteTransformer) Transform(ctx context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	batch, err := domain.ParseRawEvent(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	batch = domain.ResolveLocations(ctx, batch, t.geocoder, t.logger)

	report, err := domain.AnalyzeBatch(batch, t.opts)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	t.observe(batch, report)

	return domain.SerializeReport(report)
}

// observe records per-site analysis metrics.
func (t *SiteTransformer) observe(batch domain.SiteBatch, report domain.AnalysisReport) {
	t.metrics.TanksAnalyzed.Add(float64(len(batch.Tanks)))
	t.metrics.PolygonsSkipped.Add(float64(len(batch.SkippedPolygons)))

	for _, u := range report.Unresolved {
		t.metrics.TanksUnresolved.WithLabelValues(u.Reason).Inc()
	}
	for _, d := range report.Distances {
		if !d.MeetsSeparation {
			t.metrics.SeparationViolations.Inc()
		}
	}
}

package domain

import "strings"

// Options are the explicit engine parameters — no hidden global state.
type Options struct {
	// MinSeparationFeet is the regulatory minimum separation threshold.
	MinSeparationFeet float64

	// GallonsPerCubicFoot overrides the cubic-feet-to-gallons constant.
	// Zero means DefaultGallonsPerCubicFoot.
	GallonsPerCubicFoot float64

	// NameHeuristicFallback enables the legacy boundary-selection fallback
	// that skips polygons whose name contains a buffer marker. Only
	// consulted when no polygon carries a role tag.
	NameHeuristicFallback bool

	// Projection overrides the planar projection. Nil means a local
	// tangent projection centered on the boundary polygon's centroid.
	Projection Projection
}

// Analyze composes distance and volume computation over one site batch and
// returns the enriched record set.
//
// Tanks are processed independently in input order: one tank's failure is
// recorded in Unresolved with its reason and processing continues. Output
// order matches input tank order so downstream reporting is reproducible.
// The only batch-fatal condition is a nil collection.
func Analyze(tanks []Tank, polygons []Polygon, opts Options) (AnalysisReport, error) {
	if tanks == nil || polygons == nil {
		return AnalysisReport{}, ErrNilInput
	}

	report := AnalysisReport{
		MinSeparationFeet: opts.MinSeparationFeet,
		Distances:         []DistanceFact{},
		Volumes:           []VolumeFact{},
		Unresolved:        []Unresolved{},
		AnalyzedAt:        clock.Now(),
	}

	boundary, boundaryErr := SelectBoundary(polygons, opts.NameHeuristicFallback)
	var proj Projection
	if boundaryErr == nil {
		report.BoundaryName = boundary.Name
		proj = opts.Projection
		if proj == nil {
			proj = NewLocalTangentProjection(boundary.Centroid())
		}
	}

	for _, t := range tanks {
		fact, err := ComputeVolume(t, opts.GallonsPerCubicFoot)
		report.Volumes = append(report.Volumes, fact)
		if err != nil {
			report.Unresolved = append(report.Unresolved, Unresolved{ID: t.ID, Reason: ReasonFor(err)})
		}

		if boundaryErr != nil {
			report.Unresolved = append(report.Unresolved, Unresolved{ID: t.ID, Reason: ReasonFor(boundaryErr)})
			continue
		}

		dist, err := ComputeDistance(t, boundary, proj, opts.MinSeparationFeet)
		if err != nil {
			report.Unresolved = append(report.Unresolved, Unresolved{ID: t.ID, Reason: ReasonFor(err)})
			continue
		}
		report.Distances = append(report.Distances, dist)
	}

	return report, nil
}

// AnalyzeBatch runs Analyze over a parsed site batch and folds in the
// polygons skipped at ingestion so the report discloses them.
func AnalyzeBatch(batch SiteBatch, opts Options) (AnalysisReport, error) {
	report, err := Analyze(batch.Tanks, batch.Polygons, opts)
	if err != nil {
		return AnalysisReport{}, err
	}
	report.Site = batch.Site
	report.Unresolved = append(report.Unresolved, batch.SkippedPolygons...)
	return report, nil
}

// SelectBoundary picks the primary boundary polygon.
//
// Precedence: a polygon explicitly tagged with the boundary role always
// wins (first such polygon in input order). The naming heuristic — skip
// polygons whose name contains a buffer marker — runs only when no polygon
// carries a role tag at all, and only when enabled; matching human-entered
// names is a documented, imprecise fallback, not a guaranteed path.
func SelectBoundary(polygons []Polygon, nameFallback bool) (Polygon, error) {
	anyTagged := false
	for _, pg := range polygons {
		switch pg.Role {
		case RoleBoundary:
			return pg, nil
		case RoleBuffer:
			anyTagged = true
		}
	}

	if !anyTagged && nameFallback {
		for _, pg := range polygons {
			if !looksLikeBuffer(pg.Name) {
				return pg, nil
			}
		}
	}

	return Polygon{}, &NoBoundaryPolygonError{Considered: len(polygons)}
}

func looksLikeBuffer(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "buffer") || strings.Contains(lower, "mile")
}

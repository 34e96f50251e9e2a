// Command verify performs integrity checks over the mock site-document
// fixture: parsing determinism, volume fact invariants, and analysis
// reproducibility. It re-runs the actual analysis engine, so a failure here
// means the fixture and the engine have drifted apart.
//
// Usage:
//
//	go run ./cmd/verify -docs data/mock/site_documents.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/reliantgeo/tank-compliance-etl/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	docsPath := flag.String("docs", "", "path to the site-document JSON fixture")
	flag.Parse()

	if *docsPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*docsPath); code != 0 {
		os.Exit(code)
	}
}

func run(docsPath string) int {
	// Fix the clock so analyzed_at is identical across the reproducibility runs.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	fmt.Println("=== Tank Analysis Integrity Verification ===")
	fmt.Println()

	docs, err := loadDocuments(docsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load site documents: %v\n", err)
		return 1
	}

	batches := make([]domain.SiteBatch, 0, len(docs))
	parsePhase := &phase{name: "Phase 1: Parsing & ID Determinism"}
	for i, doc := range docs {
		batch, ok := parseDocument(parsePhase, i, doc)
		if ok {
			batches = append(batches, batch)
		}
	}

	opts := domain.Options{
		MinSeparationFeet:     50,
		NameHeuristicFallback: true,
	}

	phases := []*phase{
		parsePhase,
		verifyVolumeInvariants(batches, opts),
		verifyDistanceInvariants(batches, opts),
		verifyReproducibility(batches, opts),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-44s %s\n", p.name, status)
	}

	tankCount := 0
	for _, b := range batches {
		tankCount += len(b.Tanks)
	}
	fmt.Println()
	fmt.Printf("Sites: %d, Tanks: %d\n", len(batches), tankCount)

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll verifications passed.")
		return 0
	}
	fmt.Println("\nVerification FAILED.")
	return 1
}

func loadDocuments(path string) ([]domain.RawSiteDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []domain.RawSiteDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// parseDocument parses a document twice and checks the results agree:
// reprocessing the same document must yield the same tank IDs.
func parseDocument(p *phase, i int, doc domain.RawSiteDocument) (domain.SiteBatch, bool) {
	payload, err := json.Marshal(doc)
	if err != nil {
		p.errorf("doc %d (%s): marshal: %v", i, doc.Site, err)
		return domain.SiteBatch{}, false
	}

	first, err := domain.ParseRawEvent(domain.RawEvent{Value: payload})
	if err != nil {
		p.errorf("doc %d (%s): parse: %v", i, doc.Site, err)
		return domain.SiteBatch{}, false
	}

	second, err := domain.ParseRawEvent(domain.RawEvent{Value: payload})
	if err != nil {
		p.errorf("doc %d (%s): reparse: %v", i, doc.Site, err)
		return domain.SiteBatch{}, false
	}

	if len(first.Tanks) != len(doc.Tanks) {
		p.errorf("%s: expected %d tanks, parsed %d", doc.Site, len(doc.Tanks), len(first.Tanks))
	}
	for j := range first.Tanks {
		if first.Tanks[j].ID != second.Tanks[j].ID {
			p.errorf("%s: tank %q ID not deterministic: %s vs %s",
				doc.Site, first.Tanks[j].Name, first.Tanks[j].ID, second.Tanks[j].ID)
		}
	}

	// Every polygon must land in Polygons or SkippedPolygons, never vanish.
	if got := len(first.Polygons) + len(first.SkippedPolygons); got != len(doc.Polygons) {
		p.errorf("%s: %d polygons in document, %d accounted for", doc.Site, len(doc.Polygons), got)
	}

	return first, true
}

// verifyVolumeInvariants checks that every tank gets exactly one volume fact
// and that unavailable facts never carry a number.
func verifyVolumeInvariants(batches []domain.SiteBatch, opts domain.Options) *phase {
	p := &phase{name: "Phase 2: Volume Fact Invariants"}

	for _, batch := range batches {
		report, err := domain.AnalyzeBatch(batch, opts)
		if err != nil {
			p.errorf("%s: analyze: %v", batch.Site, err)
			continue
		}

		if len(report.Volumes) != len(batch.Tanks) {
			p.errorf("%s: %d tanks but %d volume facts", batch.Site, len(batch.Tanks), len(report.Volumes))
		}

		seen := map[string]bool{}
		for _, v := range report.Volumes {
			if seen[v.TankID] {
				p.errorf("%s: duplicate volume fact for %s", batch.Site, v.TankID)
			}
			seen[v.TankID] = true

			switch v.Source {
			case domain.VolumeUnavailable:
				if v.Gallons != nil {
					p.errorf("%s: %s unavailable but carries %.2f gal", batch.Site, v.TankID, *v.Gallons)
				}
			case domain.VolumeComputed, domain.VolumeProvided:
				if v.Gallons == nil {
					p.errorf("%s: %s source %s but no gallons value", batch.Site, v.TankID, v.Source)
				} else if *v.Gallons < 0 || math.IsNaN(*v.Gallons) {
					p.errorf("%s: %s has invalid gallons %v", batch.Site, v.TankID, *v.Gallons)
				}
			default:
				p.errorf("%s: %s has unknown volume source %q", batch.Site, v.TankID, v.Source)
			}
		}
	}
	return p
}

// verifyDistanceInvariants checks boundary selection and the rounding
// relationship between the full-precision and reported distances.
func verifyDistanceInvariants(batches []domain.SiteBatch, opts domain.Options) *phase {
	p := &phase{name: "Phase 3: Distance Fact Invariants"}

	for _, batch := range batches {
		report, err := domain.AnalyzeBatch(batch, opts)
		if err != nil {
			p.errorf("%s: analyze: %v", batch.Site, err)
			continue
		}

		if report.BoundaryName == "" && len(report.Distances) > 0 {
			p.errorf("%s: distance facts without a boundary", batch.Site)
		}

		for _, d := range report.Distances {
			if d.DistanceFeet < 0 {
				p.errorf("%s: %s negative distance %g", batch.Site, d.TankID, d.DistanceFeet)
			}
			if want := math.Round(d.DistanceFeet*10) / 10; d.ReportedFeet != want {
				p.errorf("%s: %s reported %g, expected %g", batch.Site, d.TankID, d.ReportedFeet, want)
			}
			if got := d.DistanceFeet >= report.MinSeparationFeet; got != d.MeetsSeparation {
				p.errorf("%s: %s meets_separation=%v inconsistent with %.4f ft vs %.1f ft threshold",
					batch.Site, d.TankID, d.MeetsSeparation, d.DistanceFeet, report.MinSeparationFeet)
			}
		}

		// Located tanks either have a distance fact or an unresolved entry.
		distanceByID := map[string]bool{}
		for _, d := range report.Distances {
			distanceByID[d.TankID] = true
		}
		unresolvedByID := map[string]bool{}
		for _, u := range report.Unresolved {
			unresolvedByID[u.ID] = true
		}
		for _, tank := range batch.Tanks {
			if !distanceByID[tank.ID] && !unresolvedByID[tank.ID] {
				p.errorf("%s: tank %s has neither distance fact nor unresolved entry", batch.Site, tank.ID)
			}
		}
	}
	return p
}

// verifyReproducibility re-runs the analysis with the tank order reversed and
// confirms the per-tank facts are identical.
func verifyReproducibility(batches []domain.SiteBatch, opts domain.Options) *phase {
	p := &phase{name: "Phase 4: Analysis Reproducibility"}

	for _, batch := range batches {
		forward, err := domain.AnalyzeBatch(batch, opts)
		if err != nil {
			p.errorf("%s: analyze: %v", batch.Site, err)
			continue
		}

		reversed := batch
		reversed.Tanks = make([]domain.Tank, len(batch.Tanks))
		for i, t := range batch.Tanks {
			reversed.Tanks[len(batch.Tanks)-1-i] = t
		}

		backward, err := domain.AnalyzeBatch(reversed, opts)
		if err != nil {
			p.errorf("%s: analyze reversed: %v", batch.Site, err)
			continue
		}

		if forward.BoundaryName != backward.BoundaryName {
			p.errorf("%s: boundary differs across runs: %q vs %q", batch.Site, forward.BoundaryName, backward.BoundaryName)
		}

		fwd := distancesByID(forward)
		for _, d := range backward.Distances {
			orig, ok := fwd[d.TankID]
			if !ok {
				p.errorf("%s: %s only present in reversed run", batch.Site, d.TankID)
				continue
			}
			if orig.DistanceFeet != d.DistanceFeet || orig.Inside != d.Inside {
				p.errorf("%s: %s facts differ across tank orderings", batch.Site, d.TankID)
			}
		}
	}
	return p
}

func distancesByID(report domain.AnalysisReport) map[string]domain.DistanceFact {
	m := make(map[string]domain.DistanceFact, len(report.Distances))
	for _, d := range report.Distances {
		m[d.TankID] = d
	}
	return m
}

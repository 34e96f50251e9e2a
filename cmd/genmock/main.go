// Command genmock writes the mock site-document fixture used by the pipeline
// and integration test suites, and prints the analysis results the fixture
// produces so test assertions can be updated alongside it. It runs the actual
// analysis engine so the printed expectations match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/site_documents.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/reliantgeo/tank-compliance-etl/internal/domain"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the site-document JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Fix the clock for reproducible analyzed_at timestamps.
	domain.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.March, 14, 9, 0, 0, 0, time.UTC),
	))
	defer domain.SetClock(nil)

	docs := mockSiteDocuments()

	if err := writeJSON(*out, docs); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d site documents: %s", len(docs), *out)

	opts := domain.Options{
		MinSeparationFeet:     50,
		NameHeuristicFallback: true,
	}

	for _, doc := range docs {
		payload, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", doc.Site, err)
		}
		batch, err := domain.ParseRawEvent(domain.RawEvent{Value: payload})
		if err != nil {
			return fmt.Errorf("parse %s: %w", doc.Site, err)
		}
		report, err := domain.AnalyzeBatch(batch, opts)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", doc.Site, err)
		}
		printReport(report)
	}

	return nil
}

// mockSiteDocuments builds one document per ingestion scenario: a tagged
// boundary with a pending tank, untagged polygons resolved by the naming
// heuristic, and a site with an incomplete measurement plus a degenerate
// polygon.
func mockSiteDocuments() []domain.RawSiteDocument {
	return []domain.RawSiteDocument{
		{
			Site: "Vista Verde Tank Farm",
			Tanks: []domain.RawTankRecord{
				{
					Name:  "AST-1",
					Lat:   "29.76010",
					Lon:   "-95.36990",
					Shape: "rectangular",
					Dimensions: map[string]string{
						"length": "10", "width": "8", "height": "8",
					},
				},
				{
					Name:     "AST-2",
					Lat:      "29.76020",
					Lon:      "-95.36960",
					Capacity: "550",
				},
				{
					Name:    "AST-3",
					Address: "4800 Fournace Pl, Bellaire, TX",
				},
			},
			Polygons: []domain.RawPolygonRecord{
				{
					Name: "Half Mile Buffer",
					Role: "buffer",
					Vertices: [][]float64{
						{-95.375, 29.755}, {-95.364, 29.755},
						{-95.364, 29.766}, {-95.375, 29.766},
					},
				},
				{
					Name: "Site Boundary",
					Role: "boundary",
					Vertices: [][]float64{
						{-95.370, 29.760}, {-95.369, 29.760},
						{-95.369, 29.7609}, {-95.370, 29.7609},
					},
				},
			},
		},
		{
			Site: "Pecan Grove Terminal",
			Tanks: []domain.RawTankRecord{
				{
					Name:  "T-100",
					Lat:   "31.54910",
					Lon:   "-97.14590",
					Shape: "vertical cylinder",
					Dimensions: map[string]string{
						"diameter": "1.22", "height": "1.52",
					},
					DimensionUnit: "m",
				},
				{
					Name:         "T-200",
					Lat:          "31.54920",
					Lon:          "-97.14580",
					Capacity:     "1,200",
					CapacityUnit: "gal",
				},
			},
			Polygons: []domain.RawPolygonRecord{
				{
					Name: "Property Line",
					Vertices: [][]float64{
						{-97.1460, 31.5490}, {-97.1457, 31.5490},
						{-97.1457, 31.5493}, {-97.1460, 31.5493},
					},
				},
				{
					Name: "Quarter Mile Review Area",
					Vertices: [][]float64{
						{-97.1470, 31.5485}, {-97.1447, 31.5485},
						{-97.1447, 31.5498}, {-97.1470, 31.5498},
					},
				},
			},
		},
		{
			Site: "Juniper Flats Storage",
			Tanks: []domain.RawTankRecord{
				{
					Name:  "JF-1",
					Lat:   "35.22205",
					Lon:   "-101.83095",
					Shape: "cylinder-horizontal",
					Dimensions: map[string]string{
						"diameter": "6",
					},
					Capacity: "5000",
				},
			},
			Polygons: []domain.RawPolygonRecord{
				{
					Name: "Sliver",
					Role: "buffer",
					Vertices: [][]float64{
						{-101.831, 35.222}, {-101.831, 35.222}, {-101.8305, 35.2225},
					},
				},
				{
					Name: "Lease Boundary",
					Role: "boundary",
					Vertices: [][]float64{
						{-101.8310, 35.2220}, {-101.8305, 35.2220},
						{-101.8305, 35.2223}, {-101.8310, 35.2223},
					},
				},
			},
		},
	}
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printReport(report domain.AnalysisReport) {
	fmt.Printf("\n=== %s ===\n", report.Site)
	fmt.Printf("Boundary: %s\n", report.BoundaryName)

	for _, v := range report.Volumes {
		if v.Gallons != nil {
			fmt.Printf("  volume  %s  %.2f gal (%s)\n", v.TankID, domain.RoundGallons(*v.Gallons), v.Source)
		} else {
			fmt.Printf("  volume  %s  unavailable\n", v.TankID)
		}
	}
	for _, d := range report.Distances {
		fmt.Printf("  distance %s  %.1f ft inside=%v meets_separation=%v\n",
			d.TankID, d.ReportedFeet, d.Inside, d.MeetsSeparation)
	}
	for _, u := range report.Unresolved {
		fmt.Printf("  unresolved %s  %s\n", u.ID, u.Reason)
	}
}

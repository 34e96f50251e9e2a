package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseRawEvent deserializes a RawEvent's value into a SiteBatch. It expects
// the flat JSON site document produced by the KMZ extraction service, and
// makes every presence decision — location, measurement, capacity — once
// here, so downstream code never re-derives "is this value really there"
// from sentinel strings.
func ParseRawEvent(raw RawEvent) (SiteBatch, error) {
	var doc RawSiteDocument
	if err := json.Unmarshal(raw.Value, &doc); err != nil {
		return SiteBatch{}, fmt.Errorf("parse site document: %w", err)
	}

	batch := SiteBatch{
		Site:       doc.Site,
		Tanks:      make([]Tank, 0, len(doc.Tanks)),
		Polygons:   make([]Polygon, 0, len(doc.Polygons)),
		RawPayload: raw.Value,
	}

	for _, rec := range doc.Tanks {
		batch.Tanks = append(batch.Tanks, parseTank(doc.Site, rec))
	}

	for _, rec := range doc.Polygons {
		pg, err := parsePolygon(rec)
		if err != nil {
			batch.SkippedPolygons = append(batch.SkippedPolygons, Unresolved{
				ID:     rec.Name,
				Reason: ReasonFor(err),
			})
			continue
		}
		batch.Polygons = append(batch.Polygons, pg)
	}

	return batch, nil
}

func parseTank(site string, rec RawTankRecord) Tank {
	t := Tank{
		ID:      generateTankID(site, rec.Name),
		Name:    rec.Name,
		Address: strings.TrimSpace(rec.Address),
	}

	if lat, lon, ok := parseCoordinates(rec.Lat, rec.Lon); ok {
		t.Location = &Point{Lat: lat, Lon: lon}
		t.LocationSource = "surveyed"
	}

	t.Measurement = parseMeasurement(rec)
	t.Capacity = parseCapacity(rec)
	return t
}

// parseCoordinates parses string-typed spreadsheet coordinates. Empty or
// unparseable values mean the siting is pending, not (0, 0).
func parseCoordinates(latStr, lonStr string) (lat, lon float64, ok bool) {
	latStr = strings.TrimSpace(latStr)
	lonStr = strings.TrimSpace(lonStr)
	if latStr == "" || lonStr == "" {
		return 0, 0, false
	}
	lat, errLat := strconv.ParseFloat(latStr, 64)
	lon, errLon := strconv.ParseFloat(lonStr, 64)
	if errLat != nil || errLon != nil {
		return 0, 0, false
	}
	return lat, lon, true
}

// parseMeasurement builds the tagged measurement variant. Returns nil when
// the record declares no shape and no dimensions at all; dimension values
// declared in meters are converted to feet here, once.
func parseMeasurement(rec RawTankRecord) *Measurement {
	shape := normalizeShape(rec.Shape)
	if shape == ShapeUnknown && len(rec.Dimensions) == 0 {
		return nil
	}

	dims := make(map[Dimension]float64, len(rec.Dimensions))
	for name, valStr := range rec.Dimensions {
		dim, ok := normalizeDimension(name)
		if !ok {
			continue
		}
		val, err := strconv.ParseFloat(strings.TrimSpace(valStr), 64)
		if err != nil {
			continue
		}
		if isMeters(rec.DimensionUnit) {
			val = MetersToFeet(val)
		}
		dims[dim] = val
	}

	return &Measurement{Shape: shape, Dimensions: dims}
}

// parseCapacity builds the declared-capacity variant. An empty or
// unparseable value means no capacity was declared — it never becomes zero.
func parseCapacity(rec RawTankRecord) *Capacity {
	s := strings.TrimSpace(rec.Capacity)
	if s == "" {
		return nil
	}
	// Spreadsheet exports sometimes keep thousands separators.
	s = strings.ReplaceAll(s, ",", "")
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(rec.CapacityUnit), "l") {
		val = LitersToGallons(val)
	}
	return &Capacity{Gallons: val}
}

func parsePolygon(rec RawPolygonRecord) (Polygon, error) {
	vertices := make([]Point, 0, len(rec.Vertices))
	for _, pair := range rec.Vertices {
		if len(pair) < 2 {
			continue
		}
		// KML vertex order is [lon, lat].
		vertices = append(vertices, Point{Lon: pair[0], Lat: pair[1]})
	}
	return NewPolygon(rec.Name, normalizeRole(rec.Role), vertices)
}

// normalizeShape maps the spreadsheet's shape column onto a shape tag.
// Accepts a few legacy spellings seen in survey exports.
func normalizeShape(value string) Shape {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "rectangular", "rectangle", "rect":
		return ShapeRectangular
	case "cylindrical-vertical", "vertical cylinder", "cylinder-vertical":
		return ShapeCylindricalVertical
	case "cylindrical-horizontal", "horizontal cylinder", "cylinder-horizontal":
		return ShapeCylindricalHorizontal
	default:
		return ShapeUnknown
	}
}

func normalizeDimension(name string) (Dimension, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "length":
		return DimLength, true
	case "width":
		return DimWidth, true
	case "height":
		return DimHeight, true
	case "diameter":
		return DimDiameter, true
	default:
		return "", false
	}
}

// normalizeRole maps the document's role field onto a role tag. Anything
// unrecognized stays untagged so the orchestrator's fallback can apply.
func normalizeRole(value string) Role {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "boundary":
		return RoleBoundary
	case "buffer":
		return RoleBuffer
	default:
		return RoleUnknown
	}
}

func isMeters(unit string) bool {
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "m", "meter", "meters":
		return true
	default:
		return false
	}
}

// generateTankID produces a deterministic ID from the tank's key fields.
// Reprocessing the same site document yields the same IDs, so fact lists
// can be diffed across runs.
func generateTankID(site, name string) string {
	input := fmt.Sprintf("%s|%s", site, name)
	hash := sha256.Sum256([]byte(input))
	short := hex.EncodeToString(hash[:8])
	return "tank-" + short
}

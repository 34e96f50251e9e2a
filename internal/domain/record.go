package domain

import (
	"context"
	"time"
)

// RawEvent represents an unprocessed message from the source topic.
type RawEvent struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RawSiteDocument is the flat JSON structure produced by the KMZ extraction
// service. Numeric tank fields are string-typed because they come straight
// out of the survey spreadsheet.
type RawSiteDocument struct {
	Site     string             `json:"site"`
	Tanks    []RawTankRecord    `json:"tanks"`
	Polygons []RawPolygonRecord `json:"polygons"`
}

// RawTankRecord is one tank row from the survey spreadsheet.
type RawTankRecord struct {
	Name          string            `json:"name"`
	Lat           string            `json:"lat"` // empty when siting is pending
	Lon           string            `json:"lon"`
	Address       string            `json:"address,omitempty"` // fallback for pending locations
	Shape         string            `json:"shape,omitempty"`
	Dimensions    map[string]string `json:"dimensions,omitempty"` // length, width, height, diameter
	DimensionUnit string            `json:"dimension_unit,omitempty"` // "ft" (default) or "m"
	Capacity      string            `json:"capacity,omitempty"`
	CapacityUnit  string            `json:"capacity_unit,omitempty"` // "gal" (default) or "l"
}

// RawPolygonRecord is one placemark polygon from the KML.
type RawPolygonRecord struct {
	Name     string      `json:"name"`
	Role     string      `json:"role,omitempty"` // "boundary" or "buffer"; may be absent
	Vertices [][]float64 `json:"vertices"`       // KML order: [lon, lat]
}

// Point is a WGS-84 latitude/longitude coordinate pair.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Role tags a polygon's function on the site.
type Role string

const (
	RoleBoundary Role = "boundary"
	RoleBuffer   Role = "buffer"
	RoleUnknown  Role = ""
)

// Shape tags a tank's geometry for volume computation.
type Shape string

const (
	ShapeRectangular           Shape = "rectangular"
	ShapeCylindricalVertical   Shape = "cylindrical-vertical"
	ShapeCylindricalHorizontal Shape = "cylindrical-horizontal"
	ShapeUnknown               Shape = "unknown"
)

// Dimension names a measured tank dimension, always stored in feet.
type Dimension string

const (
	DimLength   Dimension = "length"
	DimWidth    Dimension = "width"
	DimHeight   Dimension = "height"
	DimDiameter Dimension = "diameter"
)

// Measurement is a tank's declared shape and dimensions, in feet.
type Measurement struct {
	Shape      Shape                 `json:"shape"`
	Dimensions map[Dimension]float64 `json:"dimensions"`
}

// Capacity is a directly declared tank volume, in gallons.
type Capacity struct {
	Gallons float64 `json:"gallons"`
}

// Tank is one storage tank on a site. Location is nil while siting is
// pending; Measurement and Capacity are each optional. Tanks are built once
// at ingestion and never mutated afterwards.
type Tank struct {
	ID             string       `json:"id"`
	Name           string       `json:"name"`
	Location       *Point       `json:"location,omitempty"`
	LocationSource string       `json:"location_source,omitempty"` // "surveyed", "geocoded", or empty
	Address        string       `json:"address,omitempty"`
	Measurement    *Measurement `json:"measurement,omitempty"`
	Capacity       *Capacity    `json:"capacity,omitempty"`
}

// SiteBatch is one parsed site document ready for analysis.
type SiteBatch struct {
	Site     string
	Tanks    []Tank
	Polygons []Polygon

	// SkippedPolygons records polygons rejected at ingestion (e.g. fewer
	// than 3 distinct vertices) so the report can disclose them.
	SkippedPolygons []Unresolved

	RawPayload []byte
}

// VolumeSource discloses where a tank's volume figure came from.
type VolumeSource string

const (
	VolumeComputed    VolumeSource = "computed_from_dimensions"
	VolumeProvided    VolumeSource = "provided"
	VolumeUnavailable VolumeSource = "unavailable"
)

// VolumeFact is a tank's derived volume. Gallons is nil when the source is
// unavailable — an absent volume is never replaced with a placeholder number.
type VolumeFact struct {
	TankID  string       `json:"tank_id"`
	Gallons *float64     `json:"gallons,omitempty"`
	Source  VolumeSource `json:"source"`
}

// DistanceFact is a tank's derived separation from the site boundary.
// DistanceFeet carries full precision for chained comparisons; ReportedFeet
// is the same value rounded to one decimal foot for reporting.
type DistanceFact struct {
	TankID          string  `json:"tank_id"`
	BoundaryName    string  `json:"boundary_name"`
	DistanceFeet    float64 `json:"distance_feet"`
	ReportedFeet    float64 `json:"reported_feet"`
	Inside          bool    `json:"inside"`
	MeetsSeparation bool    `json:"meets_separation"`
}

// Unresolved records an entity the batch could not fully analyze, with the
// originating reason. Every skipped tank or polygon appears here — silent
// omission is a correctness violation.
type Unresolved struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// AnalysisReport is the enriched record set for one site batch: facts only,
// no formatting or persistence concerns.
type AnalysisReport struct {
	Site              string         `json:"site"`
	BoundaryName      string         `json:"boundary_name,omitempty"`
	MinSeparationFeet float64        `json:"min_separation_feet"`
	Distances         []DistanceFact `json:"distances"`
	Volumes           []VolumeFact   `json:"volumes"`
	Unresolved        []Unresolved   `json:"unresolved"`
	AnalyzedAt        time.Time      `json:"analyzed_at"`
}

// OutputEvent is the serialized form destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

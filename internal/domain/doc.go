// Package domain models tank-compliance site data and computes the distance
// and volume facts used for Acceptable Separation Distance (ASD) reporting.
//
// # Data Source
//
// Site documents originate from KMZ/KML survey files. The upstream extraction
// service unzips the archive, parses the placemarks, and publishes one JSON
// document per site to the Kafka source topic: the site name, a row per tank
// (numeric fields string-typed, as extracted from the survey spreadsheet), and
// a vertex list per polygon.
//
// # Survey Data Conventions
//
// Coordinates:
//
//	Tank locations and polygon vertices are WGS-84 latitude/longitude.
//	Polygon vertices arrive in KML order, [lon, lat]. A tank with no
//	coordinates yet ("pending" siting) has empty Lat/Lon strings and may
//	carry a street address instead.
//
// Tank dimensions:
//
//	A shape tag from {rectangular, cylindrical-vertical, cylindrical-horizontal}
//	plus named dimensions (length, width, height, diameter). Feet unless the
//	document declares "m", in which case values are converted at ingestion.
//
// Declared capacity:
//
//	A scalar in gallons unless the document declares "l" (liters). Used only
//	when no complete set of dimensions is available — see precedence below.
//
// # Volume Precedence
//
// A tank's volume comes from exactly one source, decided once per batch:
//
//  1. computed_from_dimensions — a Measurement with every dimension its shape
//     requires. A declared capacity present alongside is ignored.
//  2. provided — the declared capacity, converted to gallons.
//  3. unavailable — neither; the fact carries no numeric value.
//
// A measurement whose shape is missing a required dimension is an error
// (IncompleteMeasurement), never a computed zero and never a fallback to the
// declared capacity: partial dimensions usually mean a data-entry mistake that
// must surface. Substituting any placeholder volume for an unmeasured tank is
// a correctness violation of this design.
//
// # Boundary Selection
//
// Each site has one primary boundary polygon amid optional buffer polygons
// (e.g. a 1-mile buffer ring). A polygon tagged with the "boundary" role wins.
// When no polygon carries a role tag, an optional fallback skips polygons
// whose name contains a buffer marker — an imprecise legacy heuristic kept
// behind a flag, not a guaranteed path.
//
// # ID Generation
//
// Tank IDs are deterministic SHA-256 hashes of site|name. Reprocessing the
// same site document produces the same IDs, so downstream reports can be
// diffed across runs. See [generateTankID].
package domain

package domain

import (
	"errors"
	"fmt"
)

// Reason codes carried into Unresolved entries. Stable strings: downstream
// reporting keys on them.
const (
	ReasonInvalidPolygon        = "InvalidPolygon"
	ReasonMissingLocation       = "MissingLocation"
	ReasonIncompleteMeasurement = "IncompleteMeasurement"
	ReasonNoBoundaryPolygon     = "NoBoundaryPolygon"
)

// ErrNilInput is the batch-fatal condition for structurally invalid input.
// Per-entity failures never abort a batch; a nil collection does.
var ErrNilInput = errors.New("tank and polygon collections must be non-nil")

// InvalidPolygonError reports a polygon with fewer than 3 distinct vertices.
type InvalidPolygonError struct {
	Name     string
	Vertices int
}

func (e *InvalidPolygonError) Error() string {
	return fmt.Sprintf("polygon %q: %d distinct vertices, need at least 3", e.Name, e.Vertices)
}

// MissingLocationError reports a tank whose siting is still pending.
type MissingLocationError struct {
	TankID string
}

func (e *MissingLocationError) Error() string {
	return fmt.Sprintf("tank %s: no location", e.TankID)
}

// IncompleteMeasurementError reports a measurement whose shape requires a
// dimension absent from the mapping.
type IncompleteMeasurementError struct {
	TankID  string
	Shape   Shape
	Missing []Dimension
}

func (e *IncompleteMeasurementError) Error() string {
	return fmt.Sprintf("tank %s: shape %s missing dimensions %v", e.TankID, e.Shape, e.Missing)
}

// NoBoundaryPolygonError reports that no polygon qualified as the primary
// site boundary.
type NoBoundaryPolygonError struct {
	Considered int
}

func (e *NoBoundaryPolygonError) Error() string {
	return fmt.Sprintf("no boundary polygon among %d candidates", e.Considered)
}

// ReasonFor maps a per-entity error to its unresolved reason code.
// Unrecognized errors return the error text itself so nothing is silently
// collapsed into a catch-all.
func ReasonFor(err error) string {
	var (
		invalidPolygon *InvalidPolygonError
		missingLoc     *MissingLocationError
		incomplete     *IncompleteMeasurementError
		noBoundary     *NoBoundaryPolygonError
	)
	switch {
	case errors.As(err, &invalidPolygon):
		return ReasonInvalidPolygon
	case errors.As(err, &missingLoc):
		return ReasonMissingLocation
	case errors.As(err, &incomplete):
		return ReasonIncompleteMeasurement
	case errors.As(err, &noBoundary):
		return ReasonNoBoundaryPolygon
	default:
		return err.Error()
	}
}

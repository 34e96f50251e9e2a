package domain

import "math"

// ComputeDistance derives a tank's DistanceFact against the primary boundary
// polygon. The tank must have a resolved location; otherwise a
// MissingLocationError is returned and the tank is reported unresolved rather
// than given a default distance.
//
// DistanceFeet keeps full precision for the separation comparison;
// ReportedFeet is rounded to one decimal foot for reporting only.
func ComputeDistance(t Tank, boundary Polygon, proj Projection, minSeparationFeet float64) (DistanceFact, error) {
	if t.Location == nil {
		return DistanceFact{}, &MissingLocationError{TankID: t.ID}
	}

	distance := boundary.DistanceToBoundary(*t.Location, proj)
	return DistanceFact{
		TankID:          t.ID,
		BoundaryName:    boundary.Name,
		DistanceFeet:    distance,
		ReportedFeet:    math.Round(distance*10) / 10,
		Inside:          boundary.Contains(*t.Location, proj),
		MeetsSeparation: distance >= minSeparationFeet,
	}, nil
}

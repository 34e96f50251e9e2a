package domain

import "math"

// Projection maps geographic coordinates onto a local planar system in feet.
// Geographic degrees are not usable as Euclidean distances directly, so all
// distance math runs through one of these. The strategy is swappable so the
// engine is not baked to one region.
type Projection interface {
	Project(p Point) (x, y float64)
}

// LocalTangentProjection is an equirectangular projection around a reference
// origin: latitude degrees map to feet directly, longitude degrees are scaled
// by cos(origin latitude). Over a site-sized extent (a few kilometers) the
// distortion is well under a foot, which is inside the reporting tolerance.
type LocalTangentProjection struct {
	origin Point
	cosLat float64
}

// NewLocalTangentProjection creates a projection centered on origin.
func NewLocalTangentProjection(origin Point) *LocalTangentProjection {
	return &LocalTangentProjection{
		origin: origin,
		cosLat: math.Cos(origin.Lat * math.Pi / 180.0),
	}
}

// Project returns the planar (x, y) position of p in feet relative to the
// projection origin.
func (lp *LocalTangentProjection) Project(p Point) (x, y float64) {
	x = (p.Lon - lp.origin.Lon) * FeetPerDegree * lp.cosLat
	y = (p.Lat - lp.origin.Lat) * FeetPerDegree
	return x, y
}

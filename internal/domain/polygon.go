package domain

import "math"

// onEdgeToleranceFeet decides when a point counts as lying exactly on a
// polygon edge. Well below survey precision (~0.1 ft).
const onEdgeToleranceFeet = 1e-9

// Polygon is a site boundary or buffer outline: an ordered, closed ring of
// at least 3 distinct vertices. Construct with NewPolygon; the ring is
// normalized there so edge iteration always wraps last to first.
type Polygon struct {
	Name     string
	Role     Role
	vertices []Point
}

// NewPolygon validates and normalizes a vertex sequence. A repeated closing
// vertex (common in KML rings) is dropped. Fewer than 3 distinct vertices is
// an InvalidPolygonError.
func NewPolygon(name string, role Role, vertices []Point) (Polygon, error) {
	ring := make([]Point, 0, len(vertices))
	for _, v := range vertices {
		if len(ring) > 0 && ring[len(ring)-1] == v {
			continue // collapse consecutive duplicates
		}
		ring = append(ring, v)
	}
	// Drop an explicit closing vertex equal to the first.
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}
	// The ≥3 check must count distinct vertices, not ring length: a ring that
	// oscillates between two points, like A,B,A,B, is still degenerate.
	distinct := make(map[Point]struct{}, len(ring))
	for _, v := range ring {
		distinct[v] = struct{}{}
	}
	if len(distinct) < 3 {
		return Polygon{}, &InvalidPolygonError{Name: name, Vertices: len(distinct)}
	}
	return Polygon{Name: name, Role: role, vertices: ring}, nil
}

// Vertices returns a copy of the normalized ring (no closing repeat).
func (pg Polygon) Vertices() []Point {
	out := make([]Point, len(pg.vertices))
	copy(out, pg.vertices)
	return out
}

// Centroid returns the vertex average, used as a default projection origin.
func (pg Polygon) Centroid() Point {
	var lat, lon float64
	for _, v := range pg.vertices {
		lat += v.Lat
		lon += v.Lon
	}
	n := float64(len(pg.vertices))
	return Point{Lat: lat / n, Lon: lon / n}
}

// Contains reports whether p is inside the polygon using the even-odd
// ray-casting rule over projected planar coordinates. A point exactly on an
// edge counts as inside.
func (pg Polygon) Contains(p Point, proj Projection) bool {
	ring := pg.ring(proj)
	px, py := proj.Project(p)

	// Deterministic edge case: on-edge counts as inside.
	if minSegmentDistance(px, py, ring) <= onEdgeToleranceFeet {
		return true
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		yi, yj := ring[i].y, ring[j].y
		xi, xj := ring[i].x, ring[j].x
		if (yi > py) != (yj > py) &&
			px < (xj-xi)*(py-yi)/(yj-yi)+xi {
			inside = !inside
		}
		j = i
	}
	return inside
}

// DistanceToBoundary returns the minimum Euclidean distance in feet from p
// to any edge segment of the polygon. Interior points get the distance to
// the nearest edge — a strictly positive separation — not zero; the result
// is 0 only when p lies exactly on an edge.
func (pg Polygon) DistanceToBoundary(p Point, proj Projection) float64 {
	px, py := proj.Project(p)
	d := minSegmentDistance(px, py, pg.ring(proj))
	if d <= onEdgeToleranceFeet {
		return 0
	}
	return d
}

// planarPoint is a projected vertex in feet.
type planarPoint struct {
	x, y float64
}

func (pg Polygon) ring(proj Projection) []planarPoint {
	ring := make([]planarPoint, len(pg.vertices))
	for i, v := range pg.vertices {
		ring[i].x, ring[i].y = proj.Project(v)
	}
	return ring
}

// minSegmentDistance returns the minimum distance from (px, py) to the
// closed ring's edges, wrapping last vertex to first.
func minSegmentDistance(px, py float64, ring []planarPoint) float64 {
	minDist := math.Inf(1)
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		if d := pointToSegment(px, py, ring[j], ring[i]); d < minDist {
			minDist = d
		}
		j = i
	}
	return minDist
}

// pointToSegment returns the distance from (px, py) to the segment a-b:
// the distance to the closest point p = a + t(b-a) with t clamped to [0,1],
// so endpoints are handled without a separate vertex pass.
func pointToSegment(px, py float64, a, b planarPoint) float64 {
	vx, vy := b.x-a.x, b.y-a.y
	len2 := vx*vx + vy*vy
	if len2 == 0 {
		// Degenerate segment: distance to the single point.
		return math.Hypot(px-a.x, py-a.y)
	}

	t := ((px-a.x)*vx + (py-a.y)*vy) / len2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	cx := a.x + t*vx
	cy := a.y + t*vy
	return math.Hypot(px-cx, py-cy)
}

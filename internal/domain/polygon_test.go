package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planarTestProjection maps degrees straight onto feet (lon→x, lat→y) so
// geometry tests can use exact planar coordinates.
type planarTestProjection struct{}

func (planarTestProjection) Project(p Point) (x, y float64) {
	return p.Lon, p.Lat
}

// square returns a unit-square polygon with corners (0,0)..(100,100) in
// planar test coordinates.
func square(t *testing.T, role Role) Polygon {
	t.Helper()
	pg, err := NewPolygon("Site Boundary", role, []Point{
		{Lat: 0, Lon: 0},
		{Lat: 0, Lon: 100},
		{Lat: 100, Lon: 100},
		{Lat: 100, Lon: 0},
	})
	require.NoError(t, err)
	return pg
}

func TestNewPolygon(t *testing.T) {
	t.Run("valid triangle", func(t *testing.T) {
		pg, err := NewPolygon("tri", RoleBoundary, []Point{
			{Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 1},
		})
		require.NoError(t, err)
		assert.Len(t, pg.Vertices(), 3)
	})

	t.Run("closing vertex dropped", func(t *testing.T) {
		pg, err := NewPolygon("closed", RoleBoundary, []Point{
			{Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 1}, {Lat: 0, Lon: 0},
		})
		require.NoError(t, err)
		assert.Len(t, pg.Vertices(), 3)
	})

	t.Run("consecutive duplicates collapsed", func(t *testing.T) {
		pg, err := NewPolygon("dupes", RoleBoundary, []Point{
			{Lat: 0, Lon: 0}, {Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 1, Lon: 0}, {Lat: 0, Lon: 1},
		})
		require.NoError(t, err)
		assert.Len(t, pg.Vertices(), 3)
	})

	t.Run("two distinct vertices rejected", func(t *testing.T) {
		_, err := NewPolygon("degenerate", RoleBoundary, []Point{
			{Lat: 0, Lon: 0}, {Lat: 1, Lon: 1}, {Lat: 0, Lon: 0}, {Lat: 1, Lon: 1},
		})
		require.Error(t, err)

		var invalid *InvalidPolygonError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "degenerate", invalid.Name)
		assert.Equal(t, 2, invalid.Vertices)
		assert.Equal(t, ReasonInvalidPolygon, ReasonFor(err))
	})

	t.Run("empty vertex list rejected", func(t *testing.T) {
		_, err := NewPolygon("empty", RoleBoundary, nil)
		var invalid *InvalidPolygonError
		require.ErrorAs(t, err, &invalid)
	})
}

func TestPolygon_Contains(t *testing.T) {
	pg := square(t, RoleBoundary)
	proj := planarTestProjection{}

	tests := []struct {
		name   string
		point  Point
		inside bool
	}{
		{"center", Point{Lat: 50, Lon: 50}, true},
		{"near a corner, inside", Point{Lat: 1, Lon: 1}, true},
		{"outside east", Point{Lat: 50, Lon: 150}, false},
		{"outside north", Point{Lat: 150, Lon: 50}, false},
		{"far outside", Point{Lat: -500, Lon: -500}, false},
		{"exactly on edge counts as inside", Point{Lat: 0, Lon: 50}, true},
		{"exactly on vertex counts as inside", Point{Lat: 100, Lon: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.inside, pg.Contains(tt.point, proj))
		})
	}
}

func TestPolygon_DistanceToBoundary(t *testing.T) {
	pg := square(t, RoleBoundary)
	proj := planarTestProjection{}

	t.Run("interior point gets distance to nearest edge, not zero", func(t *testing.T) {
		// 10 ft from the south edge, farther from every other edge.
		d := pg.DistanceToBoundary(Point{Lat: 10, Lon: 50}, proj)
		assert.InDelta(t, 10.0, d, 1e-9)
		assert.Positive(t, d)
	})

	t.Run("center equidistant from all edges", func(t *testing.T) {
		d := pg.DistanceToBoundary(Point{Lat: 50, Lon: 50}, proj)
		assert.InDelta(t, 50.0, d, 1e-9)
	})

	t.Run("outside perpendicular to an edge", func(t *testing.T) {
		d := pg.DistanceToBoundary(Point{Lat: 50, Lon: 130}, proj)
		assert.InDelta(t, 30.0, d, 1e-9)
	})

	t.Run("outside beyond a corner measures to the vertex", func(t *testing.T) {
		// (130, 140) relative to corner (100, 100): 3-4-5 triangle scaled by 10.
		d := pg.DistanceToBoundary(Point{Lat: 130, Lon: 140}, proj)
		assert.InDelta(t, 50.0, d, 1e-9)
	})

	t.Run("exactly on edge returns zero", func(t *testing.T) {
		d := pg.DistanceToBoundary(Point{Lat: 0, Lon: 25}, proj)
		assert.Zero(t, d)
	})
}

// TestPolygon_DistanceToBoundary_BruteForce cross-checks the segment math
// against a dense sampling of points along every edge.
func TestPolygon_DistanceToBoundary_BruteForce(t *testing.T) {
	proj := planarTestProjection{}
	pg, err := NewPolygon("irregular", RoleBoundary, []Point{
		{Lat: 0, Lon: 0},
		{Lat: 20, Lon: 80},
		{Lat: 90, Lon: 110},
		{Lat: 140, Lon: 40},
		{Lat: 60, Lon: -30},
	})
	require.NoError(t, err)

	probes := []Point{
		{Lat: 50, Lon: 40},    // inside
		{Lat: 200, Lon: 200},  // far outside
		{Lat: -100, Lon: 50},  // outside south
		{Lat: 70, Lon: -80},   // outside west
		{Lat: 10, Lon: 100},   // near an edge
	}

	for _, p := range probes {
		got := pg.DistanceToBoundary(p, proj)
		want := bruteForceBoundaryDistance(p, pg, proj)
		assert.InDelta(t, want, got, 0.01, "point %+v", p)
	}
}

// bruteForceBoundaryDistance samples each edge at 10k intervals and returns
// the minimum point-to-sample distance.
func bruteForceBoundaryDistance(p Point, pg Polygon, proj Projection) float64 {
	px, py := proj.Project(p)
	verts := pg.Vertices()

	minDist := math.Inf(1)
	const steps = 10000
	for i := range verts {
		ax, ay := proj.Project(verts[i])
		bx, by := proj.Project(verts[(i+1)%len(verts)])
		for s := 0; s <= steps; s++ {
			t := float64(s) / steps
			x := ax + t*(bx-ax)
			y := ay + t*(by-ay)
			if d := math.Hypot(px-x, py-y); d < minDist {
				minDist = d
			}
		}
	}
	return minDist
}

func TestPolygon_Centroid(t *testing.T) {
	pg := square(t, RoleBoundary)
	c := pg.Centroid()
	assert.InDelta(t, 50.0, c.Lat, 1e-9)
	assert.InDelta(t, 50.0, c.Lon, 1e-9)
}

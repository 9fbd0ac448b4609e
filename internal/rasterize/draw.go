package rasterize

import (
	"math"

	"github.com/paulmach/orb"

	"trajectory/internal/geo"
)

// cellIndex converts a (lon, lat) degrees point to a fractional grid
// position, following the original tool's per-segment width recompute:
// the longitude cell width depends on the latitude of the endpoint being
// converted, not a single grid-wide constant.
func (g *Grid) cellIndex(lon, lat, resKm float64) (x, y float64) {
	dy := resKm / geo.DegDistance
	dx := resKm / (geo.DegDistance * math.Cos(lat*math.Pi/180))
	x = (lon - g.LoMin) / dx
	y = (lat - g.LaMin) / dy
	return x, y
}

// DrawTrajectory rasterizes one trajectory's polyline into the grid,
// recording at most one hit per grid cell for this trajectory (repeated
// passes through the same cell do not accumulate weight beyond the
// first). Each segment's weight is recomputed from its own endpoints and
// the trajectory's start point, per §4.11's per-segment midpoint. The
// per-segment stepping intentionally preserves the original tool's
// y1 += dy/RES sub-cell increment along sloped segments rather than a
// unit cell step — see Design Notes.
func DrawTrajectory(g *Grid, points []orb.Point, mode int) {
	if len(points) < 2 {
		return
	}
	start := points[0]
	mask := make([]bool, len(g.Cells))
	for i := 1; i < len(points); i++ {
		w := Weight(mode, start, points[i-1], points[i])
		drawSegment(g, mask, points[i-1], points[i], w)
	}
}

func drawSegment(g *Grid, mask []bool, from, to orb.Point, w float64) {
	dy := g.ResKm / geo.DegDistance
	x1, y1 := g.cellIndex(from[0], from[1], g.ResKm)
	x2, y2 := g.cellIndex(to[0], to[1], g.ResKm)

	hit := func(x, y float64) {
		if x < 0 || y < 0 {
			return
		}
		col, row := int(x), int(y)
		if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
			return
		}
		idx := row*g.Cols + col
		if !mask[idx] {
			mask[idx] = true
			g.Cells[idx] += w
		}
	}

	if y1 == y2 {
		if x2 < x1 {
			x1, x2 = x2, x1
		}
		dx := g.ResKm / (geo.DegDistance * math.Cos(toLat(g, y1)*math.Pi/180))
		for x1 < x2 {
			hit(x1, y1)
			x1 += dx
		}
		return
	}

	if y2 < y1 {
		x1, x2 = x2, x1
		y1, y2 = y2, y1
	}
	m := (x2 - x1) / (y2 - y1)
	n := x1 - m*y1
	for y1 < y2 {
		tmp := m*y1 + n
		hit(tmp, y1)
		y1 += dy / g.ResKm
	}
}

func toLat(g *Grid, y float64) float64 {
	return g.LaMin + y*(g.ResKm/geo.DegDistance)
}

// Package rasterize implements the density aggregator's grid: bounding
// box discovery across all loaded trajectories, latitude-dependent grid
// sizing, per-trajectory weighted rasterization ("at most one hit per
// cell per trajectory"), and the 10-band percentile classifier.
package rasterize

import (
	"math"

	"github.com/paulmach/orb"

	"trajectory/internal/errs"
	"trajectory/internal/geo"
)

// Grid is the equal-area geographic accumulation grid for one density run.
type Grid struct {
	LoMin, LaMin float64
	LoMax, LaMax float64
	ResKm        float64

	Cols, Rows int
	Cells      []float64 // row-major, len == Cols*Rows
}

// NewGrid sizes a grid covering [loMin,loMax]x[laMin,laMax] at the given
// resolution in kilometres, following the original tool's row-by-row
// latitude walk: column count is the widest row (since a degree of
// longitude shrinks toward the poles, the equatorward rows need more
// columns than poleward ones, and the grid must be rectangular).
func NewGrid(loMin, laMin, loMax, laMax, resKm float64) (*Grid, error) {
	if resKm <= 0 {
		return nil, errs.Wrap(errs.ErrConfig, "RES must be positive")
	}
	dy := resKm / geo.DegDistance

	rows := 0
	cols := 0
	for y := laMin; y <= laMax; y += dy {
		dx := resKm / (geo.DegDistance * math.Cos(y*math.Pi/180))
		n := 0
		for x := loMin; x <= loMax; x += dx {
			n++
		}
		if n > cols {
			cols = n
		}
		rows++
	}

	g := &Grid{
		LoMin: loMin, LaMin: laMin, LoMax: loMax, LaMax: laMax,
		ResKm: resKm, Cols: cols, Rows: rows,
		Cells: make([]float64, cols*rows),
	}
	return g, nil
}

// CellLonLat returns the (lon, lat) of the lower-left corner of cell
// (col, row), inverting the same row-by-row walk used to size the grid.
func (g *Grid) CellLonLat(col, row int) (lon, lat float64) {
	dy := g.ResKm / geo.DegDistance
	lat = g.LaMin + float64(row)*dy
	dx := g.ResKm / (geo.DegDistance * math.Cos(lat*math.Pi/180))
	lon = g.LoMin + float64(col)*dx
	return lon, lat
}

// BoundsOf accumulates the bounding box across every point of every
// trajectory, matching the aggregator's "scan every file once for the
// extent" pass before any grid is allocated.
func BoundsOf(trajectories [][]orb.Point) (orb.Bound, bool) {
	var bb geo.BoundBuilder
	for _, traj := range trajectories {
		for _, p := range traj {
			bb.Add(p)
		}
	}
	return bb.Bound()
}

package rasterize

import (
	"math"

	"github.com/paulmach/orb"

	"trajectory/internal/geo"
)

// Weight computes one segment's contribution factor for mode (0, 1, or 2
// — WEIGHT), following the original tool's get_weight: the angular
// distance from the segment's own midpoint ((lon_old+lon_new)/2,
// (lat_old+lat_new)/2) to the trajectory's starting point, or the square
// root of that distance, or a flat 1.0 for unweighted (absolute) density.
// It is recomputed for every segment, not once per trajectory, since a
// curving or decelerating trajectory has segment midpoints that drift
// from a single whole-trajectory sample.
func Weight(mode int, start, from, to orb.Point) float64 {
	switch mode {
	case 1, 2:
		mid := orb.Point{(from[0] + to[0]) / 2, (from[1] + to[1]) / 2}
		a := geo.ToCart(start[0]*math.Pi/180, start[1]*math.Pi/180)
		b := geo.ToCart(mid[0]*math.Pi/180, mid[1]*math.Pi/180)
		distance := geo.AngleDeg(a, b)
		if mode == 2 {
			return math.Sqrt(distance)
		}
		return distance
	default:
		return 1.0
	}
}

package wind

import (
	"math"

	"trajectory/internal/geo"
	"trajectory/internal/station"
)

// Sample is one station's wind reading at one hour, after unit conversion,
// direction rotation and speed scaling have already been applied.
type Sample struct {
	U, V    float64
	Present bool
}

// Snapshot is the full set of station samples at one hour, or an empty
// marker ("hole") for an hour the source files documented no block for.
type Snapshot struct {
	Time    Point
	Samples []Sample // nil when Empty
	Empty   bool
}

// Point mirrors calendar.Point to avoid importing calendar from this leaf
// package's exported surface; conversions happen at the chain-assembly
// boundary. Using the same field layout keeps the mapping mechanical.
type Point struct {
	Year, Month, Day, Hour int
}

// buildSample converts a raw (direction degrees, speed) station report into
// a corrected (u, v) wind sample, per §4.4:
//  1. knots -> m/s if the station reports in knots
//  2. multiply by the configured speed correction factor
//  3. add the configured direction correction, convert to radians
//  4. u = speed*sin(dir), v = speed*cos(dir)
func buildSample(unit station.Unit, dirDeg, speed, speedFactor, rotDeg float64) Sample {
	if unit == station.UnitKnots {
		speed = speed * geo.Mile
	}
	speed *= speedFactor
	dirRad := (dirDeg + rotDeg) * math.Pi / 180
	return Sample{
		U:       speed * math.Sin(dirRad),
		V:       speed * math.Cos(dirRad),
		Present: true,
	}
}

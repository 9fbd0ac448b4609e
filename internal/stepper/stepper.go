// Package stepper implements the micro-stepping particle integrator
// (§4.8): it walks a single particle across the wind field one fractional
// hour at a time, querying internal/interp for the wind vector at each
// micro-step and recording a trajectory point every configured interval.
package stepper

import (
	"math"

	"github.com/paulmach/orb"

	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/geo"
	"trajectory/internal/interp"
	"trajectory/internal/station"
)

// Result is one computed trajectory: the ordered recorded positions,
// beginning with the launch point.
type Result struct {
	Points []orb.Point
}

// Run integrates a single particle released at (lonDeg, latDeg) across
// cfg.Trace hours, sampling a trajectory point every IterPerPoint
// micro-steps. The sign of cfg.Trace selects forward or backward tracing;
// the magnitude sets the total duration.
func Run(cfg config.Integrator, stations []station.Station, w *interp.Window, lonDeg, latDeg float64) (Result, error) {
	if cfg.IterPerHour <= 0 {
		return Result{}, errs.Wrap(errs.ErrConfig, "IPERH must be positive")
	}
	if cfg.IterPerPoint <= 0 {
		return Result{}, errs.Wrap(errs.ErrConfig, "IPERPOINT must be positive")
	}

	dir := 1.0
	if cfg.Trace < 0 {
		dir = -1.0
	}
	hours := cfg.Trace
	if hours < 0 {
		hours = -hours
	}
	totalSteps := hours * cfg.IterPerHour
	dtSeconds := dir * 3600.0 / float64(cfg.IterPerHour)

	lon, lat := lonDeg, latDeg

	result := Result{Points: make([]orb.Point, 0, totalSteps/cfg.IterPerPoint+1)}
	result.Points = append(result.Points, orb.Point{lon, lat})

	// g is the global micro-step index (0-based), matching the original
	// iterate()'s ((point-1)*IPERPOINT+j) counter: the window crosses an
	// hour boundary whenever g is a multiple of IterPerHour, including
	// g==0, and that crossing happens before the wind vector for this
	// step is computed, not after.
	for g := 0; g < totalSteps; g++ {
		if g%cfg.IterPerHour == 0 {
			if err := w.AdvanceHour(); err != nil {
				return result, err
			}
		}
		h := float64(g%cfg.IterPerHour) / float64(cfg.IterPerHour)

		pos := geo.ToCart(lon*math.Pi/180, lat*math.Pi/180)
		u, v, err := interp.At(cfg, stations, w, pos, h)
		if err != nil {
			return result, err
		}

		latRad := lat * math.Pi / 180
		dLonDeg := (dtSeconds * u) / (geo.RE * 1000 * math.Cos(latRad)) * 180 / math.Pi
		dLatDeg := (dtSeconds * v) / (geo.RE * 1000) * 180 / math.Pi
		lon += dLonDeg
		lat += dLatDeg

		// Position is normalized once per recorded point, not per micro-step.
		if (g+1)%cfg.IterPerPoint == 0 {
			lon = geo.NormalizeLon(lon)
			lat = geo.NormalizeLat(lat)
			result.Points = append(result.Points, orb.Point{lon, lat})
		}
	}

	return result, nil
}

package interp

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/geo"
	"trajectory/internal/station"
	"trajectory/internal/wind"
)

type stationContribution struct {
	u, v, weight float64
}

// spatialSum performs the inverse-square-angular-distance weighting of
// §4.7 over one hourly slot: stations closer than MINR are clamped to the
// MINR weight, stations beyond MAXR are excluded, and an optional
// z-transform pass discards outliers in u and v independently before the
// weighted sum is accumulated.
func spatialSum(slot []wind.Sample, stations []station.Station, at geo.Vec3, maxR, minR int, stdDev float64) (uSum, vSum, weightSum float64) {
	cosMaxR := math.Cos(float64(maxR) / geo.RE)
	cosMinR := math.Cos(float64(minR) / geo.RE)

	contributions := make([]stationContribution, 0, len(stations))
	for i, s := range stations {
		if i >= len(slot) || !slot[i].Present {
			continue
		}
		c := geo.Dot(at, s.Position)
		if c <= cosMaxR {
			continue // farther than MAXR
		}
		if c > cosMinR {
			c = cosMinR // closer than MINR: clamp to the MINR weight
		}
		angle := math.Acos(c)
		w := 1.0 / (angle * angle)
		contributions = append(contributions, stationContribution{u: slot[i].U, v: slot[i].V, weight: w})
	}

	if stdDev > 0 && len(contributions) > 1 {
		contributions = rejectOutliers(contributions, stdDev)
	}

	for _, c := range contributions {
		uSum += c.weight * c.u
		vSum += c.weight * c.v
		weightSum += c.weight
	}
	return uSum, vSum, weightSum
}

func rejectOutliers(contributions []stationContribution, stdDev float64) []stationContribution {
	us := make([]float64, len(contributions))
	vs := make([]float64, len(contributions))
	for i, c := range contributions {
		us[i] = c.u
		vs[i] = c.v
	}
	uMean, vMean := stat.Mean(us, nil), stat.Mean(vs, nil)
	uSD, vSD := stat.StdDev(us, nil), stat.StdDev(vs, nil)

	kept := contributions[:0:0]
	for _, c := range contributions {
		if uSD > 0 && math.Abs(c.u-uMean)/uSD > stdDev {
			continue
		}
		if vSD > 0 && math.Abs(c.v-vMean)/vSD > stdDev {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

// At computes the interpolated wind vector (u, v) at a particle position,
// blending the window's two chronological hourly slots by the sub-hour
// fraction h in [0, 1). At an exact hour boundary (h == 0) only one slot is
// consulted, chosen by trace direction: forward reads the earlier slot,
// backward the later one — the asymmetry is deliberate, not a bug (see
// Design Notes).
func At(cfg config.Integrator, stations []station.Station, w *Window, at geo.Vec3, h float64) (u, v float64, err error) {
	eu, ev, ew := spatialSum(w.EarlierSlot(), stations, at, cfg.MaxR, cfg.MinR, cfg.StdDeviation)
	lu, lv, lw := spatialSum(w.LaterSlot(), stations, at, cfg.MaxR, cfg.MinR, cfg.StdDeviation)

	if h == 0 {
		if w.Direction() > 0 {
			if ew == 0 {
				return 0, 0, errs.Wrap(errs.ErrInterpolationUnavail, "no station in range in the earlier slot")
			}
			return eu / ew, ev / ew, nil
		}
		if lw == 0 {
			return 0, 0, errs.Wrap(errs.ErrInterpolationUnavail, "no station in range in the later slot")
		}
		return lu / lw, lv / lw, nil
	}

	if ew == 0 || lw == 0 {
		return 0, 0, errs.Wrap(errs.ErrInterpolationUnavail, "no station in range in one of the bracketing slots")
	}
	eMeanU, eMeanV := eu/ew, ev/ew
	lMeanU, lMeanV := lu/lw, lv/lw

	if w.Direction() > 0 {
		return (1-h)*eMeanU + h*lMeanU, (1-h)*eMeanV + h*lMeanV, nil
	}
	return h*eMeanU + (1-h)*lMeanU, h*eMeanV + (1-h)*lMeanV, nil
}

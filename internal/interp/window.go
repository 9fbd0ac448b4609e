// Package interp implements the sliding two-slot window over the wind
// snapshot chain (§4.6) and the spatial inverse-square-distance
// interpolation with optional z-transform outlier rejection (§4.7).
package interp

import (
	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/station"
	"trajectory/internal/wind"
)

// Window tracks the two bracketing data slots and their hour-interpolated
// projections as simulated time advances. earlierSlot/laterSlot are always
// chronologically ordered, independent of trace direction; the direction
// only governs which one the step integrator consults at an exact hour
// boundary (§4.7's h==0 case) and which way the window slides.
type Window struct {
	cfg      config.Integrator
	stations []station.Station
	chain    *wind.Chain
	dir      int

	dataEarlierIdx int
	dataLaterIdx   int
	diff           int // hours from dataEarlierIdx to the current simulated hour
	dataDiff       int

	earlierSlot []wind.Sample
	laterSlot   []wind.Sample
}

// Direction returns +1 for a forward trace, -1 for backward.
func (w *Window) Direction() int { return w.dir }

// Diff returns the current sub-hour-to-data-slot hour offset, for
// invariant checks.
func (w *Window) Diff() int { return w.diff }

// DataDiff returns the current data-slot spacing in hours.
func (w *Window) DataDiff() int { return w.dataDiff }

// New builds the initial sliding window anchored at the chain's start
// index, per §4.6 Initialization.
func New(cfg config.Integrator, stations []station.Station, chain *wind.Chain, startIdx int) (*Window, error) {
	if cfg.Trace == 0 {
		return nil, errs.Wrap(errs.ErrConfig, "TRACE must not be zero")
	}
	dir := 1
	if cfg.Trace < 0 {
		dir = -1
	}

	idx := startIdx
	if chain.Snapshots[idx].Empty {
		var found int
		var err error
		if dir > 0 {
			found, err = chain.PrevNonEmpty(idx)
		} else {
			found, err = chain.NextNonEmpty(idx)
		}
		if err != nil {
			return nil, err
		}
		idx = found
	}

	var earlierIdx, laterIdx int
	if idx <= startIdx {
		earlierIdx = idx
		next, err := chain.NextNonEmpty(idx)
		if err != nil {
			return nil, err
		}
		laterIdx = next
	} else {
		laterIdx = idx
		prev, err := chain.PrevNonEmpty(idx)
		if err != nil {
			return nil, err
		}
		earlierIdx = prev
	}

	dataDiff := laterIdx - earlierIdx
	if err := validateResolution(cfg.Res, dataDiff); err != nil {
		return nil, err
	}

	w := &Window{
		cfg:            cfg,
		stations:       stations,
		chain:          chain,
		dir:            dir,
		dataEarlierIdx: earlierIdx,
		dataLaterIdx:   laterIdx,
		diff:           startIdx - earlierIdx,
		dataDiff:       dataDiff,
	}
	initial := hourlyInterpolate(chain.Snapshots[earlierIdx].Samples, chain.Snapshots[laterIdx].Samples, w.diff, dataDiff)
	if dir > 0 {
		w.laterSlot = initial
	} else {
		w.earlierSlot = initial
	}
	return w, nil
}

func validateResolution(res, dataDiff int) error {
	if dataDiff == 0 {
		return errs.Wrap(errs.ErrDataResolution, "snapshot spacing is zero")
	}
	if dataDiff > 24 {
		return errs.Wrap(errs.ErrDataResolution, "snapshot spacing exceeds 24 hours")
	}
	if res != 0 && res != dataDiff {
		return errs.Wrapf(errs.ErrDataResolution, "snapshot spacing %d does not match configured RES %d", dataDiff, res)
	}
	return nil
}

func hourlyInterpolate(dataEarlier, dataLater []wind.Sample, delta, dataDiff int) []wind.Sample {
	out := make([]wind.Sample, len(dataEarlier))
	if delta == 0 {
		for i := range dataEarlier {
			if dataEarlier[i].Present {
				out[i] = dataEarlier[i]
			}
		}
		return out
	}
	d := float64(delta)
	dd := float64(dataDiff)
	for i := range dataEarlier {
		if dataEarlier[i].Present && dataLater[i].Present {
			out[i] = wind.Sample{
				U:       dataEarlier[i].U*(dd-d)/dd + dataLater[i].U*d/dd,
				V:       dataEarlier[i].V*(dd-d)/dd + dataLater[i].V*d/dd,
				Present: true,
			}
		}
	}
	return out
}

// AdvanceHour slides the window by one simulated hour in the trace
// direction, per §4.6 Advance: the slot just computed becomes the carried
// (now-past) slot, diff moves one hour in the trace direction, the
// data-slot pair slides and reloads a fresh non-empty snapshot when the
// sub-hour offset runs off either end, and exactly one hourly slot —
// the one the trace direction is moving into — is recomputed.
func (w *Window) AdvanceHour() error {
	if w.dir > 0 {
		w.earlierSlot = w.laterSlot
		w.diff++
		if w.diff >= w.dataDiff {
			next, err := w.chain.NextNonEmpty(w.dataLaterIdx)
			if err != nil {
				return err
			}
			w.dataEarlierIdx = w.dataLaterIdx
			w.dataLaterIdx = next
			w.dataDiff = w.dataLaterIdx - w.dataEarlierIdx
			w.diff = 0
			if err := validateResolution(w.cfg.Res, w.dataDiff); err != nil {
				return err
			}
		}
		w.laterSlot = hourlyInterpolate(w.chain.Snapshots[w.dataEarlierIdx].Samples, w.chain.Snapshots[w.dataLaterIdx].Samples, w.diff, w.dataDiff)
	} else {
		w.laterSlot = w.earlierSlot
		w.diff--
		if w.diff < 0 {
			prev, err := w.chain.PrevNonEmpty(w.dataEarlierIdx)
			if err != nil {
				return err
			}
			w.dataLaterIdx = w.dataEarlierIdx
			w.dataEarlierIdx = prev
			w.dataDiff = w.dataLaterIdx - w.dataEarlierIdx
			w.diff = w.dataDiff - 1
			if err := validateResolution(w.cfg.Res, w.dataDiff); err != nil {
				return err
			}
		}
		w.earlierSlot = hourlyInterpolate(w.chain.Snapshots[w.dataEarlierIdx].Samples, w.chain.Snapshots[w.dataLaterIdx].Samples, w.diff, w.dataDiff)
	}
	return nil
}

// EarlierSlot and LaterSlot expose the current hourly-interpolated slots
// (chronologically ordered) for spatial interpolation.
func (w *Window) EarlierSlot() []wind.Sample { return w.earlierSlot }
func (w *Window) LaterSlot() []wind.Sample   { return w.laterSlot }

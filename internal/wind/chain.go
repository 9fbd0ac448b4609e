// Package wind implements the wind-file loader and the snapshot chain: a
// contiguous, ascending-by-hour sequence of per-station wind snapshots
// built by stitching together per-day wind files, with "skip empty hour"
// navigation toward past or future.
//
// Per the arena-storage design note, the chain is backed by a plain slice
// indexed by ascending hour rather than a heap-linked doubly linked list;
// the window cursor used by the sliding-window interpolator is a pair of
// slice indices.
package wind

import (
	"fmt"
	"path/filepath"

	"trajectory/internal/calendar"
	"trajectory/internal/config"
	"trajectory/internal/errs"
	"trajectory/internal/station"
)

// Chain is the ascending sequence of per-hour snapshots spanning the
// padded trace interval.
type Chain struct {
	Snapshots []Snapshot
}

// ResMax is the implicit maximum snapshot spacing, used as the padding
// window when RES is left at its "off" value of 0.
const ResMax = 24

func toCalendar(p Point) calendar.Point {
	return calendar.Point{Year: p.Year, Month: p.Month, Day: p.Day, Hour: p.Hour}
}

func fromCalendar(p calendar.Point) Point {
	return Point{Year: p.Year, Month: p.Month, Day: p.Day, Hour: p.Hour}
}

func dayFileName(meteoDir string, p calendar.Point) string {
	yy := p.Year - (p.Year/100)*100
	return filepath.Join(meteoDir, fmt.Sprintf("b%02d%02d%02d.new", yy, p.Month, p.Day))
}

// Load builds the snapshot chain for the interval [start, start+trace]
// (ascending regardless of TRACE's sign), padded by res hours on each side.
func Load(cfg config.Integrator, stations []station.Station) (*Chain, error) {
	res := cfg.Res
	if res == 0 {
		res = ResMax
	}

	start := calendar.Point{Year: cfg.Year, Month: cfg.Mon, Day: cfg.Day, Hour: cfg.Hour}
	start = calendar.AddHours(start, cfg.ZoneDiff)
	end := calendar.AddHours(start, cfg.Trace)

	lo, hi := start, end
	if hi.Before(lo) {
		lo, hi = hi, lo
	}
	lo = calendar.AddHours(lo, -res)
	hi = calendar.AddHours(hi, res)

	stationIdx := station.IndexByID(stations)

	dayCache := make(map[string]map[int]Snapshot)
	snapshots := make([]Snapshot, 0, calendar.HoursUntil(lo, hi)+1)

	cur := lo
	for {
		path := dayFileName(cfg.MeteoDir, cur)
		dayMap, ok := dayCache[path]
		if !ok {
			parsed, err := parseDayFile(path, stations, stationIdx, cfg.Speed, cfg.Rot)
			if err != nil {
				return nil, err
			}
			dayMap = parsed
			dayCache[path] = dayMap
		}

		snap, ok := dayMap[cur.Hour]
		if !ok || snap.Empty {
			snapshots = append(snapshots, Snapshot{Time: fromCalendar(cur), Empty: true})
		} else {
			snapshots = append(snapshots, snap)
		}

		if cur.Equal(hi) {
			break
		}
		calendar.StepForward(&cur)
	}

	return &Chain{Snapshots: snapshots}, nil
}

// IndexOf returns the slice index of the snapshot at exactly t, or false if
// t falls outside the loaded range.
func (c *Chain) IndexOf(t calendar.Point) (int, bool) {
	if len(c.Snapshots) == 0 {
		return 0, false
	}
	first := toCalendar(c.Snapshots[0].Time)
	offset := calendar.HoursUntil(first, t)
	if offset < 0 || offset >= len(c.Snapshots) {
		return 0, false
	}
	return offset, true
}

// NextNonEmpty returns the index of the next non-empty snapshot strictly
// after i, or ErrChainExhausted if the chain runs out first.
func (c *Chain) NextNonEmpty(i int) (int, error) {
	for j := i + 1; j < len(c.Snapshots); j++ {
		if !c.Snapshots[j].Empty {
			return j, nil
		}
	}
	return 0, errs.Wrap(errs.ErrChainExhausted, "no non-empty snapshot toward the future")
}

// PrevNonEmpty returns the index of the previous non-empty snapshot
// strictly before i, or ErrChainExhausted if the chain runs out first.
func (c *Chain) PrevNonEmpty(i int) (int, error) {
	for j := i - 1; j >= 0; j-- {
		if !c.Snapshots[j].Empty {
			return j, nil
		}
	}
	return 0, errs.Wrap(errs.ErrChainExhausted, "no non-empty snapshot toward the past")
}

package rasterize

import "trajectory/internal/errs"

// CellPoint is one classified grid cell's lower-left corner, ready for
// markup emission.
type CellPoint struct {
	Lon, Lat float64
}

// Classification is the result of sorting a grid's accumulated weights
// into 10 percentile bands of [min, max], where min/max are themselves
// percentages (scaleMin/scaleMax) of the grid's maximum weight.
type Classification struct {
	Max      float64 // highest weight found anywhere in the grid
	Min      float64 // absolute weight at the scaleMin percentile
	MaxScale float64 // absolute weight at the scaleMax percentile
	DeltaW   float64 // weight span of one band
	Bands    [10][]CellPoint
}

// Classify sorts every grid cell into one of 10 bands by
// floor((c-min)/dw), where dw is 1/10th of the range between the scaleMin
// and scaleMax percentiles of the grid's peak weight. Band k (1..9) holds
// cells in [min+k*dw, min+(k+1)*dw); a cell at or above the scaleMax
// percentile is clamped into the top band (10). A cell below min+dw
// (class 0) is dropped.
func Classify(g *Grid, scaleMin, scaleMax int) (Classification, error) {
	if scaleMin < 0 || scaleMin >= scaleMax || scaleMax > 100 {
		return Classification{}, errs.Wrap(errs.ErrConfig, "SCALEMIN/SCALEMAX out of range")
	}

	var wMax float64
	for _, c := range g.Cells {
		if c > wMax {
			wMax = c
		}
	}

	min := wMax * float64(scaleMin) / 100.0
	max := wMax * float64(scaleMax) / 100.0
	dw := (max - min) / 10

	out := Classification{Max: wMax, Min: min, MaxScale: max, DeltaW: dw}
	if dw <= 0 {
		return out, nil
	}

	for i, c := range g.Cells {
		class := (c - min) / dw
		if class > 10 {
			class = 10
		}
		k := int(class)
		if k < 1 || k > 10 {
			continue
		}
		row, col := i/g.Cols, i%g.Cols
		lon, lat := g.CellLonLat(col, row)
		out.Bands[k-1] = append(out.Bands[k-1], CellPoint{Lon: lon, Lat: lat})
	}
	return out, nil
}

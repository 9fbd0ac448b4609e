package rasterize

import (
	"testing"

	"github.com/paulmach/orb"
)

func TestNewGridSizing(t *testing.T) {
	g, err := NewGrid(10, 50, 11, 51, 100)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	if g.Cols <= 0 || g.Rows <= 0 {
		t.Fatalf("expected a nonzero grid, got cols=%d rows=%d", g.Cols, g.Rows)
	}
	if len(g.Cells) != g.Cols*g.Rows {
		t.Errorf("cell slice len %d != cols*rows %d", len(g.Cells), g.Cols*g.Rows)
	}
}

func TestNewGridRejectsNonPositiveResolution(t *testing.T) {
	if _, err := NewGrid(0, 0, 1, 1, 0); err == nil {
		t.Error("expected an error for RES=0")
	}
}

func TestDrawTrajectoryHitsAtMostOncePerCell(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 50)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	// A short back-and-forth segment revisiting the same cell repeatedly.
	points := []orb.Point{{0.01, 0.01}, {0.011, 0.01}, {0.01, 0.01}, {0.0105, 0.01}}
	DrawTrajectory(g, points, 0)

	var total float64
	var hits int
	for _, c := range g.Cells {
		if c != 0 {
			hits++
			total += c
		}
	}
	if hits == 0 {
		t.Fatal("expected at least one cell to be hit")
	}
	if total != 1.0 {
		t.Errorf("revisiting the same cell within one trajectory should not re-add weight, got total=%v", total)
	}
}

func TestDrawTrajectoryAccumulatesAcrossTrajectories(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 50)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	points := []orb.Point{{0.01, 0.01}, {0.011, 0.01}}
	DrawTrajectory(g, points, 0)
	DrawTrajectory(g, points, 0)

	var total float64
	for _, c := range g.Cells {
		total += c
	}
	if total != 2.0 {
		t.Errorf("two trajectories hitting the same cell should each contribute, got total=%v", total)
	}
}

func TestClassifyRejectsBadScaleRange(t *testing.T) {
	g, _ := NewGrid(0, 0, 1, 1, 50)
	if _, err := Classify(g, 50, 10); err == nil {
		t.Error("expected an error when SCALEMIN >= SCALEMAX")
	}
	if _, err := Classify(g, -1, 10); err == nil {
		t.Error("expected an error for negative SCALEMIN")
	}
}

func TestWeightAbsoluteIsFlat(t *testing.T) {
	start := orb.Point{10, 50}
	if w := Weight(0, start, orb.Point{11, 51}, orb.Point{12, 52}); w != 1.0 {
		t.Errorf("Weight(0, ...) = %v, want 1.0", w)
	}
}

func TestWeightDistanceGrowsWithDisplacement(t *testing.T) {
	start := orb.Point{10, 50}
	near := Weight(1, start, start, orb.Point{10.01, 50.01})
	far := Weight(1, start, orb.Point{10, 50}, orb.Point{20, 60})
	if near <= 0 {
		t.Errorf("expected a positive distance weight, got %v", near)
	}
	if far <= near {
		t.Errorf("a farther segment midpoint should weight higher: near=%v far=%v", near, far)
	}
}

func TestWeightSqrtIsSqrtOfDistance(t *testing.T) {
	start := orb.Point{10, 50}
	from, to := orb.Point{10, 50}, orb.Point{20, 60}
	distance := Weight(1, start, from, to)
	sqrtWeight := Weight(2, start, from, to)
	if sqrtWeight <= 0 || sqrtWeight >= distance {
		t.Errorf("Weight(2, ...) = %v, expected 0 < sqrt-weight < distance (%v)", sqrtWeight, distance)
	}
}

func TestWeightRecomputesPerSegmentMidpoint(t *testing.T) {
	start := orb.Point{10, 50}
	// Two segments of the same trajectory with different midpoints must
	// weight differently, since the weight is per-segment, not a single
	// whole-trajectory sample.
	earlySegment := Weight(1, start, orb.Point{10, 50}, orb.Point{10.01, 50.01})
	lateSegment := Weight(1, start, orb.Point{19, 59}, orb.Point{20, 60})
	if lateSegment <= earlySegment {
		t.Errorf("a segment farther from the start should weight higher: early=%v late=%v", earlySegment, lateSegment)
	}
}

func TestClassifyTopBandGetsHighestWeightCells(t *testing.T) {
	g, err := NewGrid(0, 0, 1, 1, 50)
	if err != nil {
		t.Fatalf("NewGrid: %v", err)
	}
	g.Cells[0] = 10
	if len(g.Cells) > 1 {
		g.Cells[1] = 1
	}
	cls, err := Classify(g, 0, 100)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if len(cls.Bands[9]) == 0 {
		t.Error("expected the maximum-weight cell to land in the top band")
	}
}

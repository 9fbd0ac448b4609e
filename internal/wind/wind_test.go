package wind

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"trajectory/internal/calendar"
	"trajectory/internal/config"
	"trajectory/internal/station"
)

func writeDayFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
}

func TestBuildSampleKnotsConversion(t *testing.T) {
	s := buildSample(station.UnitKnots, 0, 10, 1.0, 0)
	// direction 0 -> u = speed*sin(0) = 0, v = speed*cos(0) = speed
	wantSpeed := 10 * (1.8532 / 3.6)
	if math.Abs(s.V-wantSpeed) > 1e-9 {
		t.Errorf("v = %v, want %v", s.V, wantSpeed)
	}
	if math.Abs(s.U) > 1e-9 {
		t.Errorf("u = %v, want ~0", s.U)
	}
	if !s.Present {
		t.Error("expected Present=true")
	}
}

func TestBuildSampleSpeedAndRot(t *testing.T) {
	s := buildSample(station.UnitMPS, 0, 1, 2.0, 90)
	// dir 0+90=90deg -> u=speed*sin(90)=speed, v=speed*cos(90)=0; speed scaled by factor 2
	if math.Abs(s.U-2.0) > 1e-9 {
		t.Errorf("u = %v, want 2.0", s.U)
	}
	if math.Abs(s.V) > 1e-9 {
		t.Errorf("v = %v, want ~0", s.V)
	}
}

func TestParseDayFileBasic(t *testing.T) {
	dir := t.TempDir()
	writeDayFile(t, dir, "b010101.new",
		"2001 01 01 01\n 1205 145 5\n*ENDBLOCK\n2001 01 01 00\n 1205 187 8\n*ENDBLOCK\n")
	stations := []station.Station{{ID: 1205, Unit: station.UnitKnots}}
	idx := station.IndexByID(stations)

	snaps, err := parseDayFile(filepath.Join(dir, "b010101.new"), stations, idx, 1.0, 0)
	if err != nil {
		t.Fatalf("parseDayFile: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d hours, want 2", len(snaps))
	}
	if snaps[1].Empty || !snaps[1].Samples[0].Present {
		t.Errorf("hour 1 sample missing: %+v", snaps[1])
	}
	if snaps[0].Empty || !snaps[0].Samples[0].Present {
		t.Errorf("hour 0 sample missing: %+v", snaps[0])
	}
}

func TestParseDayFileUnknownStationDiscarded(t *testing.T) {
	dir := t.TempDir()
	writeDayFile(t, dir, "b010101.new", "2001 01 01 00\n 9999 0 1\n*ENDBLOCK\n")
	stations := []station.Station{{ID: 1205, Unit: station.UnitKnots}}
	idx := station.IndexByID(stations)

	snaps, err := parseDayFile(filepath.Join(dir, "b010101.new"), stations, idx, 1.0, 0)
	if err != nil {
		t.Fatalf("parseDayFile: %v", err)
	}
	if snaps[0].Samples[0].Present {
		t.Errorf("station 9999 not in table should be discarded, leaving station 0 absent")
	}
}

func TestChainLoadAndNavigation(t *testing.T) {
	dir := t.TempDir()
	writeDayFile(t, dir, "b010101.new",
		"2001 01 01 03\n 1205 0 1\n*ENDBLOCK\n2001 01 01 01\n 1205 0 1\n*ENDBLOCK\n2001 01 01 00\n 1205 0 1\n*ENDBLOCK\n")
	stations := []station.Station{{ID: 1205, Unit: station.UnitMPS}}

	cfg := config.Integrator{
		Year: 2001, Mon: 1, Day: 1, Hour: 1,
		Trace: 1, Res: 1, MeteoDir: dir,
	}
	chain, err := Load(cfg, stations)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// hour 2 has no block -> should be an empty marker, skippable via NextNonEmpty.
	idx, ok := chain.IndexOf(calendar.Point{Year: 2001, Month: 1, Day: 1, Hour: 2})
	if !ok {
		t.Fatal("expected hour 2 to be in range")
	}
	if !chain.Snapshots[idx].Empty {
		t.Errorf("hour 2 expected empty, got %+v", chain.Snapshots[idx])
	}
	next, err := chain.NextNonEmpty(idx)
	if err != nil {
		t.Fatalf("NextNonEmpty: %v", err)
	}
	if chain.Snapshots[next].Time.Hour != 3 {
		t.Errorf("NextNonEmpty landed on hour %d, want 3", chain.Snapshots[next].Time.Hour)
	}
}

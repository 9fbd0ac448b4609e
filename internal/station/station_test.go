package station

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadBasic(t *testing.T) {
	path := writeTemp(t, "wstation.dat", "01205 6220 00516 0038 2\n")
	stations, err := Load(path, DataUnitMixed)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(stations) != 1 {
		t.Fatalf("got %d stations, want 1", len(stations))
	}
	s := stations[0]
	if s.ID != 1205 {
		t.Errorf("ID = %d, want 1205", s.ID)
	}
	if s.Unit != UnitKnots {
		t.Errorf("Unit = %v, want knots", s.Unit)
	}
	mag2 := s.Position.X*s.Position.X + s.Position.Y*s.Position.Y + s.Position.Z*s.Position.Z
	if math.Abs(mag2-1) > 1e-9 {
		t.Errorf("|X|^2 = %v, want 1 +- 1e-9", mag2)
	}
}

func TestDataUnitForceKnots(t *testing.T) {
	path := writeTemp(t, "wstation.dat", "1 0 0 0 1\n")
	stations, err := Load(path, DataUnitForceKnots)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stations[0].Unit != UnitKnots {
		t.Errorf("forced knots, got %v", stations[0].Unit)
	}
}

func TestDataUnitForceMPS(t *testing.T) {
	path := writeTemp(t, "wstation.dat", "1 0 0 0 2\n")
	stations, err := Load(path, DataUnitForceMPS)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if stations[0].Unit != UnitMPS {
		t.Errorf("forced m/s, got %v", stations[0].Unit)
	}
}

func TestDataUnitMixedRejectsBadCode(t *testing.T) {
	path := writeTemp(t, "wstation.dat", "1 0 0 0 9\n")
	_, err := Load(path, DataUnitMixed)
	if err == nil {
		t.Fatal("expected ConfigError for out-of-range unit code")
	}
}

func TestDecodeDDMM(t *testing.T) {
	// 6220 -> 62 deg 20 min = 62 + 20/60 degrees
	got := decodeDDMM(6220) * 180 / math.Pi
	want := 62 + 20.0/60.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("decodeDDMM(6220) = %v deg, want %v", got, want)
	}
}

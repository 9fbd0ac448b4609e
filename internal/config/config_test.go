package config

import "testing"

func TestIntegratorFromEnvIsPureOfEnvironment(t *testing.T) {
	t.Setenv("LO", "1.5")
	t.Setenv("TRACE", "48")
	a := IntegratorFromEnv()
	b := IntegratorFromEnv()
	if a != b {
		t.Errorf("two builds from the same environment snapshot differ: %+v vs %+v", a, b)
	}
	if a.Lon != 1.5 {
		t.Errorf("Lon = %v, want 1.5", a.Lon)
	}
	if a.Trace != 48 {
		t.Errorf("Trace = %v, want 48", a.Trace)
	}
}

func TestIntegratorDefaults(t *testing.T) {
	c := IntegratorFromEnv()
	if c.Res != 3 {
		t.Errorf("default RES = %v, want 3", c.Res)
	}
	if c.IterPerHour != 20 || c.IterPerPoint != 20 {
		t.Errorf("default iteration counts wrong: %+v", c)
	}
}

func TestNumericParseFailureYieldsZero(t *testing.T) {
	t.Setenv("LO", "not-a-number")
	c := IntegratorFromEnv()
	if c.Lon != 0 {
		t.Errorf("Lon on unparseable env = %v, want 0", c.Lon)
	}
}

func TestDensityDefaults(t *testing.T) {
	c := DensityFromEnv()
	if c.ResKm != 25 {
		t.Errorf("default RES = %v, want 25", c.ResKm)
	}
	if c.ScaleMin != 0 || c.ScaleMax != 100 {
		t.Errorf("default scale wrong: %+v", c)
	}
}

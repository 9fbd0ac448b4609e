package calendar

import "testing"

func TestIsLeap(t *testing.T) {
	cases := []struct {
		name string
		year int
		want bool
	}{
		{"divisible by 4 only", 2024, true},
		{"century not div 400", 1900, false},
		{"century div 400", 2000, true},
		{"century div 400 far future", 2400, true},
		{"non-leap", 2023, false},
		{"century not div 400, 2100", 2100, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsLeap(c.year); got != c.want {
				t.Errorf("IsLeap(%d) = %v, want %v", c.year, got, c.want)
			}
		})
	}
}

func TestStepForwardYearBoundary(t *testing.T) {
	cases := []struct {
		name string
		year int
		want Point
	}{
		{"non-leap year has 365 days", 2023, Point{2024, 1, 1, 0}},
		{"leap year has 366 days", 2024, Point{2025, 1, 1, 0}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			p := Point{c.year, 1, 1, 0}
			steps := 365
			if IsLeap(c.year) {
				steps = 366
			}
			for i := 0; i < steps*24; i++ {
				StepForward(&p)
			}
			if p != c.want {
				t.Errorf("after %d hours, got %+v, want %+v", steps*24, p, c.want)
			}
		})
	}
}

func TestStepForwardThenBackwardIsIdentity(t *testing.T) {
	starts := []Point{
		{2024, 2, 28, 23},
		{2023, 2, 28, 23},
		{2000, 12, 31, 23},
		{1900, 3, 1, 0},
	}
	for _, start := range starts {
		p := start
		StepForward(&p)
		StepBackward(&p)
		if p != start {
			t.Errorf("forward then backward from %+v = %+v, want identity", start, p)
		}
		p = start
		StepBackward(&p)
		StepForward(&p)
		if p != start {
			t.Errorf("backward then forward from %+v = %+v, want identity", start, p)
		}
	}
}

func TestFeb29Existence(t *testing.T) {
	cases := []struct {
		year   int
		exists bool
	}{
		{2000, true},
		{2400, true},
		{1900, false},
		{2100, false},
	}
	for _, c := range cases {
		got := daysIn(c.year, 2) == 29
		if got != c.exists {
			t.Errorf("Feb 29 in %d: got %v, want %v", c.year, got, c.exists)
		}
	}
}

func TestHoursUntil(t *testing.T) {
	a := Point{2024, 1, 1, 0}
	b := Point{2024, 1, 2, 0}
	if got := HoursUntil(a, b); got != 24 {
		t.Errorf("HoursUntil(a,b) = %d, want 24", got)
	}
	if got := HoursUntil(b, a); got != -24 {
		t.Errorf("HoursUntil(b,a) = %d, want -24", got)
	}
}

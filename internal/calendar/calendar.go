// Package calendar implements proleptic Gregorian hour arithmetic: advancing
// or retreating a (year, month, day, hour) point by exactly one hour,
// respecting leap years and month-length boundaries.
package calendar

var monthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Point is a calendar instant at hour resolution.
type Point struct {
	Year  int
	Month int // 1..12
	Day   int // 1..31
	Hour  int // 0..23
}

// IsLeap reports whether year is a Gregorian leap year: divisible by 4,
// except centuries, except again every 400th year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func daysIn(year, month int) int {
	if month == 2 && IsLeap(year) {
		return 29
	}
	return monthDays[month-1]
}

// StepForward advances p by exactly one hour, in place.
func StepForward(p *Point) {
	p.Hour++
	if p.Hour < 24 {
		return
	}
	p.Hour = 0
	p.Day++
	if p.Day <= daysIn(p.Year, p.Month) {
		return
	}
	p.Day = 1
	p.Month++
	if p.Month <= 12 {
		return
	}
	p.Month = 1
	p.Year++
}

// StepBackward retreats p by exactly one hour, in place.
func StepBackward(p *Point) {
	p.Hour--
	if p.Hour >= 0 {
		return
	}
	p.Hour = 23
	p.Day--
	if p.Day >= 1 {
		return
	}
	p.Month--
	if p.Month < 1 {
		p.Month = 12
		p.Year--
	}
	p.Day = daysIn(p.Year, p.Month)
}

// Equal reports fieldwise equality.
func (p Point) Equal(other Point) bool {
	return p == other
}

// Before reports whether p occurs strictly before other, both treated as
// points on the proleptic Gregorian hour axis.
func (p Point) Before(other Point) bool {
	if p.Year != other.Year {
		return p.Year < other.Year
	}
	if p.Month != other.Month {
		return p.Month < other.Month
	}
	if p.Day != other.Day {
		return p.Day < other.Day
	}
	return p.Hour < other.Hour
}

// HoursUntil returns the number of StepForward calls needed to reach other
// from p (negative if other is before p).
func HoursUntil(p, other Point) int {
	if p.Equal(other) {
		return 0
	}
	if p.Before(other) {
		n := 0
		cur := p
		for !cur.Equal(other) {
			StepForward(&cur)
			n++
		}
		return n
	}
	n := 0
	cur := p
	for !cur.Equal(other) {
		StepBackward(&cur)
		n--
	}
	return n
}

// AddHours advances (positive) or retreats (negative) p by n hours and
// returns the result.
func AddHours(p Point, n int) Point {
	cur := p
	if n >= 0 {
		for i := 0; i < n; i++ {
			StepForward(&cur)
		}
	} else {
		for i := 0; i < -n; i++ {
			StepBackward(&cur)
		}
	}
	return cur
}

package calendar

import "math"

// JulianDayNumber returns the integer Julian Day Number of d.
//
// January and February are counted as months 13 and 14 of the previous
// year so the leap day falls at the end of the computational year. The
// century term B converts from the Julian to the Gregorian reckoning.
// The raw formula yields the Julian Date at 0h (an X.5 value); its integer
// part is the day number.
func JulianDayNumber(d Date) int {
	y, m := d.Year, d.Month
	if m <= 2 {
		y--
		m += 12
	}

	a := math.Floor(float64(y) / 100)
	b := 2 - a + math.Floor(a/4)

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(d.Day) + b - 1524.5

	return int(math.Trunc(jd))
}

// FloorDiv divides a by b rounding toward negative infinity.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Mod returns a modulo b with a result in [0, b) for positive b.
func Mod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// Package numerology implements Pythagorean digit-sum reduction.
package numerology

import "github.com/zapponejosh/chronos-api/internal/calendar"

// IsMaster reports whether n is a master number (11, 22 or 33), which is
// never reduced further.
func IsMaster(n int) bool {
	return n == 11 || n == 22 || n == 33
}

// Reduce repeatedly replaces n with the sum of its decimal digits until it
// is a single digit or a master number. Negative input is reduced by its
// absolute value.
func Reduce(n int) int {
	if n < 0 {
		n = -n
	}
	for n > 9 && !IsMaster(n) {
		n = digitSum(n)
	}
	return n
}

func digitSum(n int) int {
	sum := 0
	for ; n > 0; n /= 10 {
		sum += n % 10
	}
	return sum
}

// LifePath reduces the sum of year, month and day.
func LifePath(d calendar.Date) int {
	return Reduce(d.Year + d.Month + d.Day)
}

// DayNumber reduces the day of the month.
func DayNumber(d calendar.Date) int {
	return Reduce(d.Day)
}

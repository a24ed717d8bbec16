// Package weton derives the Javanese day cycles of a Gregorian date: the
// seven-day week, the five-day market week (pasaran), their combined weight
// (neptu), the thirty-week wuku cycle, and the neptu-indexed lakuning.
package weton

import (
	"fmt"

	"github.com/zapponejosh/chronos-api/internal/calendar"
)

// ReferenceJDN anchors every cycle. It is the day number of 2010-05-03.
const ReferenceJDN = 2455319

// UnknownMarker is the value the pasaran field takes in the failure sentinel
// and the label of LakuningUnknown.
const UnknownMarker = "Unknown"

// Day is a weekday in Javanese, Senin (Monday) first.
type Day int

const (
	Senin Day = iota
	Selasa
	Rabu
	Kamis
	Jumat
	Sabtu
	Minggu
)

var dayNames = [7]string{"Senin", "Selasa", "Rabu", "Kamis", "Jumat", "Sabtu", "Minggu"}

var dayNeptu = [7]int{
	Senin:  4,
	Selasa: 3,
	Rabu:   7,
	Kamis:  8,
	Jumat:  6,
	Sabtu:  9,
	Minggu: 5,
}

func (d Day) String() string {
	if d < Senin || d > Minggu {
		return UnknownMarker
	}
	return dayNames[d]
}

// Neptu returns the day's weight.
func (d Day) Neptu() int {
	if d < Senin || d > Minggu {
		return 0
	}
	return dayNeptu[d]
}

// Pasaran is a day of the five-day market week.
type Pasaran int

const (
	Legi Pasaran = iota
	Pahing
	Pon
	Wage
	Kliwon
)

var pasaranNames = [5]string{"Legi", "Pahing", "Pon", "Wage", "Kliwon"}

var pasaranNeptu = [5]int{
	Legi:   5,
	Pahing: 9,
	Pon:    7,
	Wage:   4,
	Kliwon: 8,
}

func (p Pasaran) String() string {
	if p < Legi || p > Kliwon {
		return UnknownMarker
	}
	return pasaranNames[p]
}

// Neptu returns the market day's weight.
func (p Pasaran) Neptu() int {
	if p < Legi || p > Kliwon {
		return 0
	}
	return pasaranNeptu[p]
}

// Wuku is one of the thirty seven-day weeks of the pawukon.
type Wuku int

// NumWuku is the length of the wuku cycle in weeks.
const NumWuku = 30

var wukuNames = [NumWuku]string{
	"Sinta", "Landep", "Wukir", "Kurantil", "Tolu", "Gumbreg",
	"Warigalit", "Warigagung", "Julungwangi", "Sungsang", "Galungan", "Kuningan",
	"Langkir", "Mandasiya", "Julungpujut", "Pahang", "Kuruwelut", "Marakeh",
	"Tambir", "Medangkungan", "Maktal", "Wuye", "Manahil", "Prangbakat",
	"Bala", "Wugu", "Wayang", "Kulawu", "Dukut", "Watugunung",
}

func (w Wuku) String() string {
	if w < 0 || int(w) >= NumWuku {
		return UnknownMarker
	}
	return wukuNames[w]
}

// Result is the Javanese cycle category of a result bundle. When Err is
// set only the sentinel marker is meaningful.
type Result struct {
	Date     calendar.Date
	JDN      int
	Day      Day
	Pasaran  Pasaran
	Neptu    int
	Wuku     Wuku
	Lakuning Lakuning
	Err      error
}

// Failed reports whether r is the failure sentinel.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Weton returns the combined "<day> <pasaran>" name, or the unknown marker
// for the failure sentinel.
func (r Result) Weton() string {
	if r.Failed() {
		return UnknownMarker
	}
	return r.Day.String() + " " + r.Pasaran.String()
}

// Compute derives every cycle for d. Dates that are not real proleptic
// Gregorian days yield the failure sentinel with Err wrapping
// calendar.ErrOutOfRange.
func Compute(d calendar.Date) Result {
	if !d.Valid() {
		return Result{
			Date: d,
			Err:  fmt.Errorf("weton %s: %w", d, calendar.ErrOutOfRange),
		}
	}

	jdn := calendar.JulianDayNumber(d)
	diff := jdn - ReferenceJDN

	day := Day(d.ISOWeekday())
	pasaran := Pasaran(calendar.Mod(diff+1, 5))
	neptu := day.Neptu() + pasaran.Neptu()

	return Result{
		Date:     d,
		JDN:      jdn,
		Day:      day,
		Pasaran:  pasaran,
		Neptu:    neptu,
		Wuku:     Wuku(calendar.Mod(calendar.FloorDiv(diff, 7), NumWuku)),
		Lakuning: LakuningFor(neptu),
	}
}

// MaxRangeDays bounds Range so a single call stays cheap.
const MaxRangeDays = 3660

// Range computes consecutive results from start to end inclusive.
func Range(start, end calendar.Date) ([]Result, error) {
	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("weton range %s..%s: %w", start, end, calendar.ErrOutOfRange)
	}

	days := start.DaysUntil(end)
	if days < 0 {
		return nil, fmt.Errorf("weton range: start %s is after end %s", start, end)
	}
	if days > MaxRangeDays {
		return nil, fmt.Errorf("weton range: %d days exceeds limit of %d", days+1, MaxRangeDays)
	}

	results := make([]Result, 0, days+1)
	for i := 0; i <= days; i++ {
		results = append(results, Compute(start.AddDays(i)))
	}
	return results, nil
}

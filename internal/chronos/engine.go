// Package chronos composes the four symbolic calculators into a single
// result bundle for one birth moment.
package chronos

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/chronos-api/internal/astro"
	"github.com/zapponejosh/chronos-api/internal/calendar"
	"github.com/zapponejosh/chronos-api/internal/ephemeris"
	"github.com/zapponejosh/chronos-api/internal/numerology"
	"github.com/zapponejosh/chronos-api/internal/shio"
	"github.com/zapponejosh/chronos-api/internal/weton"
)

// BirthMoment is the engine's input. The clock is local civil time and is
// handed to the ephemeris as UTC.
type BirthMoment struct {
	Date  calendar.Date
	Clock calendar.Clock
}

// ParseBirthMoment parses a YYYY-MM-DD date and an HH:MM clock.
func ParseBirthMoment(date, clock string) (BirthMoment, error) {
	d, err := calendar.ParseDate(date)
	if err != nil {
		return BirthMoment{}, err
	}
	c, err := calendar.ParseClock(clock)
	if err != nil {
		return BirthMoment{}, err
	}
	return BirthMoment{Date: d, Clock: c}, nil
}

// Numerology holds the two reduced birth numbers.
type Numerology struct {
	LifePath  int `json:"Life_Path" yaml:"Life_Path"`
	DayNumber int `json:"Day_Number" yaml:"Day_Number"`
}

// Bundle is the merged result of one computation.
type Bundle struct {
	Moment     BirthMoment
	Planets    astro.Chart
	Weton      weton.Result
	Shio       shio.Shio
	Numerology Numerology
}

// Failures returns the typed cause of every category that fell back to its
// sentinel value.
func (b Bundle) Failures() []error {
	var errs []error
	if b.Planets.Err != nil {
		errs = append(errs, b.Planets.Err)
	}
	if b.Weton.Err != nil {
		errs = append(errs, b.Weton.Err)
	}
	return errs
}

// Engine runs the calculators. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	astro  *astro.Calculator
	logger *slog.Logger
}

// NewEngine creates an engine around an astronomy calculator.
func NewEngine(calc *astro.Calculator, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{astro: calc, logger: logger}
}

// Observer returns the location every chart is computed for.
func (e *Engine) Observer() ephemeris.Location {
	return e.astro.Location()
}

// Compute produces the bundle for m. It never fails: a category that cannot
// be computed carries its sentinel and typed cause instead.
func (e *Engine) Compute(ctx context.Context, m BirthMoment) Bundle {
	b := Bundle{Moment: m}

	// Each goroutine owns exactly one field of b.
	var g errgroup.Group
	g.Go(func() error {
		b.Planets = e.astro.Chart(ctx, calendar.At(m.Date, m.Clock))
		return nil
	})
	g.Go(func() error {
		b.Weton = weton.Compute(m.Date)
		return nil
	})
	g.Go(func() error {
		b.Numerology = Numerology{
			LifePath:  numerology.LifePath(m.Date),
			DayNumber: numerology.DayNumber(m.Date),
		}
		return nil
	})
	g.Go(func() error {
		b.Shio = shio.For(m.Date.Year)
		return nil
	})
	// The calculators are total; Wait only joins them.
	_ = g.Wait()

	for _, err := range b.Failures() {
		e.logger.WarnContext(ctx, "category fell back to sentinel",
			slog.String("date", m.Date.String()),
			slog.String("time", m.Clock.String()),
			slog.Any("error", err),
		)
	}

	return b
}

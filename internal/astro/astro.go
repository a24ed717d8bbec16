// Package astro maps raw ecliptic longitudes onto tropical zodiac signs.
package astro

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/zapponejosh/chronos-api/internal/ephemeris"
)

// Sign is one of the twelve tropical zodiac signs, Aries first.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "Unknown"
	}
	return signNames[s]
}

// FailureMarker is the single value the planetary category collapses to
// when the ephemeris cannot be read.
const FailureMarker = "Astro Fail"

// ZodiacPosition is a sign plus the degree within it, rounded to two places.
type ZodiacPosition struct {
	Sign   Sign
	Degree float64
}

// String renders the position as "Capricorn (10.5°)".
func (p ZodiacPosition) String() string {
	return fmt.Sprintf("%s (%s°)", p.Sign, formatDegree(p.Degree))
}

// formatDegree prints the shortest decimal form, keeping at least one
// fractional digit.
func formatDegree(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Position converts an ecliptic longitude in degrees to a ZodiacPosition.
// The degree is clamped to 29.99 when rounding would carry it to 30.
func Position(longitude float64) ZodiacPosition {
	lon := normalize(longitude)
	idx := int(math.Floor(lon/30)) % 12

	deg := math.Round(math.Mod(lon, 30)*100) / 100
	if deg >= 30 {
		deg = 29.99
	}
	return ZodiacPosition{Sign: Sign(idx), Degree: deg}
}

// AscendantSign approximates the rising sign from local sidereal time in
// radians: floor((deg + 90) / 30) mod 12.
//
// This ignores the obliquity of the ecliptic and the observer's latitude.
// Results must stay reproducible with that formula, so it is kept as is.
func AscendantSign(siderealRadians float64) Sign {
	deg := siderealRadians * 180 / math.Pi
	idx := int(math.Floor((deg+90)/30)) % 12
	if idx < 0 {
		idx += 12
	}
	return Sign(idx)
}

func normalize(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon < 0 {
		lon += 360
	}
	if lon >= 360 {
		lon = 0
	}
	return lon
}

// Chart holds the planetary category of a result bundle.
// When Err is set the positions are meaningless.
type Chart struct {
	Positions [ephemeris.NumBodies]ZodiacPosition
	Ascendant Sign
	Err       error
}

// Failed reports whether the chart is the failure sentinel.
func (c Chart) Failed() bool {
	return c.Err != nil
}

// Calculator produces charts for a fixed observer location.
type Calculator struct {
	provider ephemeris.Provider
	location ephemeris.Location
}

// NewCalculator creates a calculator reading from provider at loc.
func NewCalculator(provider ephemeris.Provider, loc ephemeris.Location) *Calculator {
	return &Calculator{provider: provider, location: loc}
}

// Location returns the observer location the calculator was built with.
func (c *Calculator) Location() ephemeris.Location {
	return c.location
}

// Chart computes the positions of all seven bodies and the ascendant at t.
// Any provider failure yields a chart whose Err wraps
// ephemeris.ErrUnavailable; no partial positions are returned.
func (c *Calculator) Chart(ctx context.Context, t time.Time) Chart {
	sample, err := c.provider.Sample(ctx, t, c.location)
	if err != nil {
		return Chart{Err: fmt.Errorf("%w: %w", ephemeris.ErrUnavailable, err)}
	}

	if !finite(sample.SiderealTime) {
		return Chart{Err: fmt.Errorf("%w: sidereal time %v", ephemeris.ErrUnavailable, sample.SiderealTime)}
	}

	var chart Chart
	for _, b := range ephemeris.Bodies() {
		lon := sample.Longitudes[b]
		if !finite(lon) {
			return Chart{Err: fmt.Errorf("%w: %s longitude %v", ephemeris.ErrUnavailable, b, lon)}
		}
		chart.Positions[b] = Position(lon)
	}
	chart.Ascendant = AscendantSign(sample.SiderealTime)

	return chart
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

package astro

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/zapponejosh/chronos-api/internal/calendar"
	"github.com/zapponejosh/chronos-api/internal/ephemeris"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		lon  float64
		want ZodiacPosition
		str  string
	}{
		{0, ZodiacPosition{Aries, 0}, "Aries (0.0°)"},
		{280.5, ZodiacPosition{Capricorn, 10.5}, "Capricorn (10.5°)"},
		{95.25, ZodiacPosition{Cancer, 5.25}, "Cancer (5.25°)"},
		{300, ZodiacPosition{Aquarius, 0}, "Aquarius (0.0°)"},
		{359.75, ZodiacPosition{Pisces, 29.75}, "Pisces (29.75°)"},
		{360, ZodiacPosition{Aries, 0}, "Aries (0.0°)"},
		{-30, ZodiacPosition{Pisces, 0}, "Pisces (0.0°)"},
		{725, ZodiacPosition{Aries, 5}, "Aries (5.0°)"},
		{59.999, ZodiacPosition{Taurus, 29.99}, "Taurus (29.99°)"},
	}

	for _, tt := range tests {
		got := Position(tt.lon)
		if got != tt.want {
			t.Errorf("Position(%v) = %+v, want %+v", tt.lon, got, tt.want)
		}
		if got.String() != tt.str {
			t.Errorf("Position(%v).String() = %q, want %q", tt.lon, got.String(), tt.str)
		}
	}
}

func TestPosition_Invariants(t *testing.T) {
	for lon := -720.0; lon < 720; lon += 0.137 {
		p := Position(lon)
		if p.Sign < Aries || p.Sign > Pisces {
			t.Fatalf("Position(%v).Sign = %d, out of range", lon, p.Sign)
		}
		if p.Degree < 0 || p.Degree >= 30 {
			t.Fatalf("Position(%v).Degree = %v, want [0,30)", lon, p.Degree)
		}
		if r := p.Degree * 100; math.Abs(r-math.Round(r)) > 1e-6 {
			t.Fatalf("Position(%v).Degree = %v has more than two decimals", lon, p.Degree)
		}
	}
}

func TestAscendantSign(t *testing.T) {
	rad := func(deg float64) float64 { return deg * math.Pi / 180 }

	tests := []struct {
		deg  float64
		want Sign
	}{
		{0, Cancer},
		{100, Libra},
		{269.9, Pisces},
		{270.5, Aries},
		{359, Gemini},
	}

	for _, tt := range tests {
		if got := AscendantSign(rad(tt.deg)); got != tt.want {
			t.Errorf("AscendantSign(%v°) = %s, want %s", tt.deg, got, tt.want)
		}
	}
}

func testSample() ephemeris.Sample {
	var s ephemeris.Sample
	s.Longitudes = [ephemeris.NumBodies]float64{280.5, 95.25, 265.75, 300, 224.5, 95, 290.25}
	s.SiderealTime = 100 * math.Pi / 180
	return s
}

func TestCalculator_Chart(t *testing.T) {
	calc := NewCalculator(ephemeris.Static{Value: testSample()}, ephemeris.Jakarta)

	chart := calc.Chart(context.Background(), time.Date(1990, 1, 1, 12, 0, 0, 0, time.UTC))
	if chart.Failed() {
		t.Fatalf("Chart() failed: %v", chart.Err)
	}

	want := [ephemeris.NumBodies]ZodiacPosition{
		{Capricorn, 10.5},
		{Cancer, 5.25},
		{Sagittarius, 25.75},
		{Aquarius, 0},
		{Scorpio, 14.5},
		{Cancer, 5},
		{Capricorn, 20.25},
	}
	if diff := cmp.Diff(want, chart.Positions); diff != "" {
		t.Errorf("Chart().Positions mismatch (-want +got):\n%s", diff)
	}
	if chart.Ascendant != Libra {
		t.Errorf("Chart().Ascendant = %s, want Libra", chart.Ascendant)
	}
	if calc.Location() != ephemeris.Jakarta {
		t.Errorf("Location() = %+v", calc.Location())
	}
}

func TestCalculator_ChartFailure(t *testing.T) {
	nan := testSample()
	nan.Longitudes[ephemeris.Mars] = math.NaN()

	inf := testSample()
	inf.SiderealTime = math.Inf(1)

	tests := []struct {
		name     string
		provider ephemeris.Provider
	}{
		{"provider error", ephemeris.Static{Err: errors.New("numeric domain error")}},
		{"NaN longitude", ephemeris.Static{Value: nan}},
		{"infinite sidereal time", ephemeris.Static{Value: inf}},
		{"year out of range", ephemeris.OrbitalElements{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.provider, ephemeris.Jakarta)
			chart := calc.Chart(context.Background(), time.Date(3500, 1, 1, 0, 0, 0, 0, time.UTC))
			if !chart.Failed() {
				t.Fatal("Chart() did not fail")
			}
			if !errors.Is(chart.Err, ephemeris.ErrUnavailable) {
				t.Errorf("Chart().Err = %v, want ErrUnavailable", chart.Err)
			}
			if chart.Positions != ([ephemeris.NumBodies]ZodiacPosition{}) {
				t.Errorf("Chart() returned partial positions: %+v", chart.Positions)
			}
		})
	}
}

func TestCalculator_ChartOutOfRangeKeepsCause(t *testing.T) {
	calc := NewCalculator(ephemeris.OrbitalElements{}, ephemeris.Jakarta)
	chart := calc.Chart(context.Background(), time.Date(3500, 1, 1, 0, 0, 0, 0, time.UTC))
	if !errors.Is(chart.Err, calendar.ErrOutOfRange) {
		t.Errorf("Chart().Err = %v, want wrapped ErrOutOfRange", chart.Err)
	}
}

func TestCalculator_ChartWithBuiltInProvider(t *testing.T) {
	calc := NewCalculator(ephemeris.OrbitalElements{}, ephemeris.Jakarta)
	chart := calc.Chart(context.Background(), time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if chart.Failed() {
		t.Fatalf("Chart() failed: %v", chart.Err)
	}
	// The Sun sits at roughly 10° Capricorn on 1 January.
	if sun := chart.Positions[ephemeris.Sun]; sun.Sign != Capricorn {
		t.Errorf("Sun = %s, want Capricorn", sun)
	}
}

func TestSignString(t *testing.T) {
	if Pisces.String() != "Pisces" || Sign(12).String() != "Unknown" {
		t.Errorf("unexpected sign names: %s, %s", Pisces, Sign(12))
	}
}

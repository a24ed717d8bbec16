package chronos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"
	"gopkg.in/yaml.v3"

	"github.com/zapponejosh/chronos-api/internal/astro"
	"github.com/zapponejosh/chronos-api/internal/calendar"
	"github.com/zapponejosh/chronos-api/internal/ephemeris"
	"github.com/zapponejosh/chronos-api/internal/weton"
)

var update = flag.Bool("update", false, "rewrite golden files")

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubSample is a fixed ephemeris reading used for the golden bundle.
func stubSample() ephemeris.Sample {
	return ephemeris.Sample{
		Longitudes:   [ephemeris.NumBodies]float64{280.5, 95.25, 265.75, 300, 224.5, 95, 290.25},
		SiderealTime: 100 * math.Pi / 180,
	}
}

func newTestEngine(p ephemeris.Provider) *Engine {
	return NewEngine(astro.NewCalculator(p, ephemeris.Jakarta), quietLogger())
}

func mustMoment(t *testing.T, date, clock string) BirthMoment {
	t.Helper()
	m, err := ParseBirthMoment(date, clock)
	if err != nil {
		t.Fatalf("ParseBirthMoment(%q, %q) error = %v", date, clock, err)
	}
	return m
}

func TestCompute_Golden(t *testing.T) {
	engine := newTestEngine(ephemeris.Static{Value: stubSample()})
	bundle := engine.Compute(context.Background(), mustMoment(t, "1990-01-01", "12:00"))

	got, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	got = append(got, '\n')

	golden := filepath.Join("testdata", "bundle_1990-01-01.golden.json")
	if *update {
		if err := os.WriteFile(golden, got, 0o644); err != nil {
			t.Fatalf("write golden: %v", err)
		}
	}

	want, err := os.ReadFile(golden)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("bundle mismatch (-want +got):\n%s", cmp.Diff(string(want), string(got)))
	}
}

func TestCompute_Values(t *testing.T) {
	engine := newTestEngine(ephemeris.Static{Value: stubSample()})
	b := engine.Compute(context.Background(), mustMoment(t, "1990-01-01", "12:00"))

	if len(b.Failures()) != 0 {
		t.Fatalf("Failures() = %v, want none", b.Failures())
	}
	want := Numerology{LifePath: 3, DayNumber: 1}
	if diff := cmp.Diff(want, b.Numerology); diff != "" {
		t.Errorf("Numerology mismatch (-want +got):\n%s", diff)
	}
	if got := b.Shio.String(); got != "Metal Horse" {
		t.Errorf("Shio = %q, want Metal Horse", got)
	}
	if got := b.Weton.Weton(); got != "Senin Kliwon" {
		t.Errorf("Weton = %q, want Senin Kliwon", got)
	}
	if got := b.Planets.Ascendant; got != astro.Libra {
		t.Errorf("Ascendant = %s, want Libra", got)
	}
}

func TestCompute_EphemerisFailure(t *testing.T) {
	engine := newTestEngine(ephemeris.Static{Err: errors.New("ephemeris offline")})
	b := engine.Compute(context.Background(), mustMoment(t, "1990-01-01", "12:00"))

	if !errors.Is(b.Planets.Err, ephemeris.ErrUnavailable) {
		t.Fatalf("Planets.Err = %v, want ErrUnavailable", b.Planets.Err)
	}

	var doc map[string]json.RawMessage
	raw, err := json.Marshal(b)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	var planets map[string]string
	if err := json.Unmarshal(doc["PLANETARY_POSITIONS"], &planets); err != nil {
		t.Fatalf("decode planets: %v", err)
	}
	if diff := cmp.Diff(map[string]string{"Error": "Astro Fail"}, planets); diff != "" {
		t.Errorf("PLANETARY_POSITIONS mismatch (-want +got):\n%s", diff)
	}

	// The other categories are unaffected.
	if b.Weton.Failed() || b.Shio.String() != "Metal Horse" {
		t.Errorf("unrelated categories changed: weton=%v shio=%s", b.Weton.Err, b.Shio)
	}
}

func TestCompute_CalendarFailure(t *testing.T) {
	engine := newTestEngine(ephemeris.Static{Value: stubSample()})
	b := engine.Compute(context.Background(), BirthMoment{
		Date:  calendar.Date{Year: 1990, Month: 2, Day: 31},
		Clock: calendar.Clock{Hour: 12},
	})

	if !errors.Is(b.Weton.Err, calendar.ErrOutOfRange) {
		t.Fatalf("Weton.Err = %v, want ErrOutOfRange", b.Weton.Err)
	}
	if diff := cmp.Diff(WetonFailure{Pasaran: "Unknown"}, b.Document().Weton); diff != "" {
		t.Errorf("WETON_JAVA mismatch (-want +got):\n%s", diff)
	}
	if len(b.Failures()) != 1 {
		t.Errorf("Failures() = %v, want exactly the weton failure", b.Failures())
	}
}

func TestCompute_BuiltInProviderOutOfRange(t *testing.T) {
	engine := newTestEngine(ephemeris.OrbitalElements{})
	b := engine.Compute(context.Background(), BirthMoment{
		Date:  calendar.Date{Year: 3100, Month: 6, Day: 1},
		Clock: calendar.Clock{Hour: 6},
	})

	if !b.Planets.Failed() {
		t.Fatal("Planets did not fail for year 3100")
	}
	if !errors.Is(b.Planets.Err, calendar.ErrOutOfRange) {
		t.Errorf("Planets.Err = %v, want wrapped ErrOutOfRange", b.Planets.Err)
	}
	if b.Weton.Failed() {
		t.Errorf("Weton failed: %v", b.Weton.Err)
	}
}

func TestCompute_ConcurrentCallsAgree(t *testing.T) {
	engine := newTestEngine(ephemeris.OrbitalElements{})
	m := mustMoment(t, "1987-07-14", "06:30")
	want, err := json.Marshal(engine.Compute(context.Background(), m))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := json.Marshal(engine.Compute(context.Background(), m))
			if err != nil {
				t.Errorf("Marshal() error = %v", err)
				return
			}
			if !bytes.Equal(got, want) {
				t.Errorf("concurrent bundle differs:\n%s\n%s", got, want)
			}
		}()
	}
	wg.Wait()
}

func TestBundle_YAML(t *testing.T) {
	engine := newTestEngine(ephemeris.Static{Value: stubSample()})
	b := engine.Compute(context.Background(), mustMoment(t, "1990-01-01", "12:00"))

	out, err := yaml.Marshal(b)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(out, &root); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	mapping := root.Content[0]
	var keys []string
	for i := 0; i < len(mapping.Content); i += 2 {
		keys = append(keys, mapping.Content[i].Value)
	}
	wantKeys := []string{"COSMIC_COORDINATES", "PLANETARY_POSITIONS", "WETON_JAVA", "CHINESE_ZODIAC", "NUMEROLOGY_BIRTH"}
	if diff := cmp.Diff(wantKeys, keys); diff != "" {
		t.Errorf("top-level keys mismatch (-want +got):\n%s", diff)
	}

	var decoded struct {
		Coordinates Coordinates        `yaml:"COSMIC_COORDINATES"`
		Planets     PlanetaryPositions `yaml:"PLANETARY_POSITIONS"`
		Weton       WetonJava          `yaml:"WETON_JAVA"`
		Chinese     Chinese            `yaml:"CHINESE_ZODIAC"`
		Numerology  Numerology         `yaml:"NUMEROLOGY_BIRTH"`
	}
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if decoded.Coordinates != (Coordinates{Date: "1990-01-01", Time: "12:00:00"}) {
		t.Errorf("Coordinates = %+v", decoded.Coordinates)
	}
	if decoded.Planets.Venus != "Aquarius (0.0°)" || decoded.Planets.Ascendant != "Libra" {
		t.Errorf("Planets = %+v", decoded.Planets)
	}
	if decoded.Weton.Lakuning != "Lakuning Kembang" || decoded.Weton.Neptu != 12 {
		t.Errorf("Weton = %+v", decoded.Weton)
	}
	if decoded.Chinese.ShioElement != "Metal Horse" || decoded.Numerology.LifePath != 3 {
		t.Errorf("Chinese = %+v, Numerology = %+v", decoded.Chinese, decoded.Numerology)
	}
}

func TestWetonDocument(t *testing.T) {
	r := weton.Compute(calendar.Date{Year: 2010, Month: 5, Day: 3})
	want := WetonJava{Pasaran: "Senin Pahing", Neptu: 13, Wuku: "Sinta", Lakuning: "Lakuning Lintang"}
	if diff := cmp.Diff(want, WetonDocument(r)); diff != "" {
		t.Errorf("WetonDocument() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBirthMoment_Errors(t *testing.T) {
	for _, tt := range []struct{ date, clock string }{
		{"1990-01-01", "25:00"},
		{"1990/01/01", "12:00"},
		{"", ""},
	} {
		if _, err := ParseBirthMoment(tt.date, tt.clock); err == nil {
			t.Errorf("ParseBirthMoment(%q, %q) expected error", tt.date, tt.clock)
		}
	}
}

package chronos

import (
	"encoding/json"

	"github.com/zapponejosh/chronos-api/internal/astro"
	"github.com/zapponejosh/chronos-api/internal/ephemeris"
	"github.com/zapponejosh/chronos-api/internal/weton"
)

// Document is the serialized form of a Bundle. Field order is the output
// order; sentinel categories collapse to a single marker key.
type Document struct {
	Coordinates Coordinates `json:"COSMIC_COORDINATES" yaml:"COSMIC_COORDINATES"`
	Planets     any         `json:"PLANETARY_POSITIONS" yaml:"PLANETARY_POSITIONS"`
	Weton       any         `json:"WETON_JAVA" yaml:"WETON_JAVA"`
	Chinese     Chinese     `json:"CHINESE_ZODIAC" yaml:"CHINESE_ZODIAC"`
	Numerology  Numerology  `json:"NUMEROLOGY_BIRTH" yaml:"NUMEROLOGY_BIRTH"`
}

// Coordinates echoes the input moment.
type Coordinates struct {
	Date string `json:"Date" yaml:"Date"`
	Time string `json:"Time" yaml:"Time"`
}

// Chinese holds the shio string.
type Chinese struct {
	ShioElement string `json:"Shio_Elemen" yaml:"Shio_Elemen"`
}

// PlanetaryPositions is the successful planetary category.
type PlanetaryPositions struct {
	Sun       string `json:"Sun" yaml:"Sun"`
	Moon      string `json:"Moon" yaml:"Moon"`
	Mercury   string `json:"Mercury" yaml:"Mercury"`
	Venus     string `json:"Venus" yaml:"Venus"`
	Mars      string `json:"Mars" yaml:"Mars"`
	Jupiter   string `json:"Jupiter" yaml:"Jupiter"`
	Saturn    string `json:"Saturn" yaml:"Saturn"`
	Ascendant string `json:"Ascendant" yaml:"Ascendant"`
}

// PlanetaryFailure is the planetary sentinel.
type PlanetaryFailure struct {
	Error string `json:"Error" yaml:"Error"`
}

// WetonJava is the successful Javanese category.
type WetonJava struct {
	Pasaran  string `json:"Pasaran" yaml:"Pasaran"`
	Neptu    int    `json:"Neptu" yaml:"Neptu"`
	Wuku     string `json:"Wuku" yaml:"Wuku"`
	Lakuning string `json:"Lakuning" yaml:"Lakuning"`
}

// WetonFailure is the Javanese sentinel.
type WetonFailure struct {
	Pasaran string `json:"Pasaran" yaml:"Pasaran"`
}

// Document converts b into its serializable form.
func (b Bundle) Document() Document {
	return Document{
		Coordinates: Coordinates{
			Date: b.Moment.Date.String(),
			Time: b.Moment.Clock.String(),
		},
		Planets:    planetsDocument(b.Planets),
		Weton:      WetonDocument(b.Weton),
		Chinese:    Chinese{ShioElement: b.Shio.String()},
		Numerology: b.Numerology,
	}
}

func planetsDocument(c astro.Chart) any {
	if c.Failed() {
		return PlanetaryFailure{Error: astro.FailureMarker}
	}
	return PlanetaryPositions{
		Sun:       c.Positions[ephemeris.Sun].String(),
		Moon:      c.Positions[ephemeris.Moon].String(),
		Mercury:   c.Positions[ephemeris.Mercury].String(),
		Venus:     c.Positions[ephemeris.Venus].String(),
		Mars:      c.Positions[ephemeris.Mars].String(),
		Jupiter:   c.Positions[ephemeris.Jupiter].String(),
		Saturn:    c.Positions[ephemeris.Saturn].String(),
		Ascendant: c.Ascendant.String(),
	}
}

// WetonDocument renders a Javanese result on its own, as the weton
// endpoints and the CLI table do.
func WetonDocument(r weton.Result) any {
	if r.Failed() {
		return WetonFailure{Pasaran: weton.UnknownMarker}
	}
	return WetonJava{
		Pasaran:  r.Weton(),
		Neptu:    r.Neptu,
		Wuku:     r.Wuku.String(),
		Lakuning: r.Lakuning.String(),
	}
}

// MarshalJSON implements json.Marshaler.
func (b Bundle) MarshalJSON() ([]byte, error) {
	return json.Marshal(b.Document())
}

// MarshalYAML implements yaml.Marshaler.
func (b Bundle) MarshalYAML() (any, error) {
	return b.Document(), nil
}

// Package ephemeris defines the boundary to an astronomical position source
// and ships a low-precision built-in implementation.
package ephemeris

import (
	"context"
	"errors"
	"time"
)

// ErrUnavailable is returned (wrapped) whenever a provider cannot produce a
// sample for the requested instant.
var ErrUnavailable = errors.New("ephemeris unavailable")

// Body identifies one of the seven classical bodies.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
)

// NumBodies is the number of bodies in a Sample.
const NumBodies = 7

var bodyNames = [NumBodies]string{"Sun", "Moon", "Mercury", "Venus", "Mars", "Jupiter", "Saturn"}

// Bodies returns every body in output order.
func Bodies() []Body {
	return []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn}
}

func (b Body) String() string {
	if b < 0 || int(b) >= NumBodies {
		return "Unknown"
	}
	return bodyNames[b]
}

// Location is a fixed observer position in degrees, longitude east-positive.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Jakarta is the observer location used by the original oracle.
var Jakarta = Location{Latitude: -6.2088, Longitude: 106.8456}

// Sample holds the raw quantities the astronomy calculator consumes.
type Sample struct {
	// Longitudes are geocentric ecliptic longitudes in degrees, indexed by Body.
	Longitudes [NumBodies]float64

	// SiderealTime is the local sidereal time in radians.
	SiderealTime float64
}

// Provider produces raw samples for an instant and location.
type Provider interface {
	Sample(ctx context.Context, t time.Time, loc Location) (Sample, error)
}

// Static returns the same sample for every request. Err, when set, is
// returned instead.
type Static struct {
	Value Sample
	Err   error
}

// Sample implements Provider.
func (s Static) Sample(ctx context.Context, _ time.Time, _ Location) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}
	if s.Err != nil {
		return Sample{}, s.Err
	}
	return s.Value, nil
}

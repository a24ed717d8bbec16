package ephemeris

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/zapponejosh/chronos-api/internal/calendar"
)

// Supported year range of the built-in provider. The mean elements drift
// out of usefulness well before the edges of the proleptic calendar.
const (
	MinYear = 1
	MaxYear = 3000
)

const (
	unixEpochJD = 2440587.5
	j2000JD     = 2451545.0

	// elementEpochJD is 2000 Jan 0.0 UT, the zero point of the element series.
	elementEpochJD = 2451543.5

	// precessionPerDay converts longitudes of date back to the J2000 equinox.
	precessionPerDay = 3.82394e-5
)

// OrbitalElements computes positions from mean orbital elements with the
// largest periodic perturbations of the Moon, Jupiter and Saturn applied.
// Accuracy is a few arcminutes for the planets and better than a quarter
// degree for the Moon, ample for sign and degree resolution.
//
// Longitudes are referred to the J2000 equinox. Sidereal time is local mean
// sidereal time.
type OrbitalElements struct{}

// Sample implements Provider.
func (OrbitalElements) Sample(ctx context.Context, t time.Time, loc Location) (Sample, error) {
	if err := ctx.Err(); err != nil {
		return Sample{}, err
	}

	t = t.UTC()
	if y := t.Year(); y < MinYear || y > MaxYear {
		return Sample{}, fmt.Errorf("%w: year %d outside %d..%d", calendar.ErrOutOfRange, y, MinYear, MaxYear)
	}

	jd := JulianDate(t)
	d := jd - elementEpochJD

	var s Sample

	sunLon, sunR := sunPosition(d)
	xs := sunR * cosd(sunLon)
	ys := sunR * sind(sunLon)
	s.Longitudes[Sun] = sunLon

	s.Longitudes[Moon] = moonLongitude(d)

	for _, b := range []Body{Mercury, Venus, Mars, Jupiter, Saturn} {
		lon, lat, r := heliocentric(orbitOf(b, d))
		lon += planetPerturbation(b, d)

		xg := r*cosd(lon)*cosd(lat) + xs
		yg := r*sind(lon)*cosd(lat) + ys
		s.Longitudes[b] = atan2d(yg, xg)
	}

	for i := range s.Longitudes {
		s.Longitudes[i] = rev(s.Longitudes[i] - precessionPerDay*d)
	}

	s.SiderealTime = LocalSiderealTime(jd, loc.Longitude) * math.Pi / 180

	return s, nil
}

// JulianDate returns the Julian Date of t including the day fraction.
func JulianDate(t time.Time) float64 {
	return float64(t.Unix())/86400 + unixEpochJD
}

// LocalSiderealTime returns local mean sidereal time in degrees for a
// Julian Date and an east-positive longitude.
func LocalSiderealTime(jd, longitude float64) float64 {
	T := (jd - j2000JD) / 36525
	gmst := 280.46061837 +
		360.98564736629*(jd-j2000JD) +
		0.000387933*T*T -
		T*T*T/38710000
	return rev(gmst + longitude)
}

// orbit holds mean elements in degrees (a in AU, Earth radii for the Moon).
type orbit struct {
	N, i, w, a, e, M float64
}

func orbitOf(b Body, d float64) orbit {
	switch b {
	case Sun:
		return orbit{0, 0, 282.9404 + 4.70935e-5*d, 1.0, 0.016709 - 1.151e-9*d, 356.0470 + 0.9856002585*d}
	case Moon:
		return orbit{125.1228 - 0.0529538083*d, 5.1454, 318.0634 + 0.1643573223*d, 60.2666, 0.054900, 115.3654 + 13.0649929509*d}
	case Mercury:
		return orbit{48.3313 + 3.24587e-5*d, 7.0047 + 5.00e-8*d, 29.1241 + 1.01444e-5*d, 0.387098, 0.205635 + 5.59e-10*d, 168.6562 + 4.0923344368*d}
	case Venus:
		return orbit{76.6799 + 2.46590e-5*d, 3.3946 + 2.75e-8*d, 54.8910 + 1.38374e-5*d, 0.723330, 0.006773 - 1.302e-9*d, 48.0052 + 1.6021302244*d}
	case Mars:
		return orbit{49.5574 + 2.11081e-5*d, 1.8497 - 1.78e-8*d, 286.5016 + 2.92961e-5*d, 1.523688, 0.093405 + 2.516e-9*d, 18.6021 + 0.5240207766*d}
	case Jupiter:
		return orbit{100.4542 + 2.76854e-5*d, 1.3030 - 1.557e-7*d, 273.8777 + 1.64505e-5*d, 5.20256, 0.048498 + 4.469e-9*d, 19.8950 + 0.0830853001*d}
	case Saturn:
		return orbit{113.6634 + 2.38980e-5*d, 2.4886 - 1.081e-7*d, 339.3939 + 2.97661e-5*d, 9.55475, 0.055546 - 9.499e-9*d, 316.9670 + 0.0334442282*d}
	}
	panic(fmt.Sprintf("ephemeris: no orbit for body %d", b))
}

// eccentricAnomaly solves Kepler's equation by Newton iteration (degrees).
func eccentricAnomaly(M, e float64) float64 {
	M = rev(M)
	E := M + (180/math.Pi)*e*sind(M)*(1+e*cosd(M))
	for iter := 0; iter < 50; iter++ {
		next := E - (E-(180/math.Pi)*e*sind(E)-M)/(1-e*cosd(E))
		if math.Abs(next-E) < 1e-9 {
			return next
		}
		E = next
	}
	return E
}

// heliocentric returns ecliptic longitude, latitude (degrees) and distance
// relative to the orbit's focus.
func heliocentric(o orbit) (lon, lat, r float64) {
	E := eccentricAnomaly(o.M, o.e)
	xv := o.a * (cosd(E) - o.e)
	yv := o.a * math.Sqrt(1-o.e*o.e) * sind(E)

	v := atan2d(yv, xv)
	r = math.Hypot(xv, yv)

	vw := v + o.w
	xh := r * (cosd(o.N)*cosd(vw) - sind(o.N)*sind(vw)*cosd(o.i))
	yh := r * (sind(o.N)*cosd(vw) + cosd(o.N)*sind(vw)*cosd(o.i))
	zh := r * sind(vw) * sind(o.i)

	return atan2d(yh, xh), atan2d(zh, math.Hypot(xh, yh)), r
}

func sunPosition(d float64) (lon, r float64) {
	o := orbitOf(Sun, d)
	E := eccentricAnomaly(o.M, o.e)
	xv := cosd(E) - o.e
	yv := math.Sqrt(1-o.e*o.e) * sind(E)
	return rev(atan2d(yv, xv) + o.w), math.Hypot(xv, yv)
}

func moonLongitude(d float64) float64 {
	moon := orbitOf(Moon, d)
	sun := orbitOf(Sun, d)

	lon, _, _ := heliocentric(moon)

	Ms, Mm := sun.M, moon.M
	Ls := sun.M + sun.w
	Lm := moon.M + moon.w + moon.N
	D := Lm - Ls
	F := Lm - moon.N

	lon += -1.274*sind(Mm-2*D) +
		0.658*sind(2*D) -
		0.186*sind(Ms) -
		0.059*sind(2*Mm-2*D) -
		0.057*sind(Mm-2*D+Ms) +
		0.053*sind(Mm+2*D) +
		0.046*sind(2*D-Ms) +
		0.041*sind(Mm-Ms) -
		0.035*sind(D) -
		0.031*sind(Mm+Ms) -
		0.015*sind(2*F-2*D) +
		0.011*sind(Mm-4*D)

	return rev(lon)
}

// planetPerturbation returns the great-inequality terms for Jupiter and
// Saturn in degrees of heliocentric longitude.
func planetPerturbation(b Body, d float64) float64 {
	Mj := orbitOf(Jupiter, d).M
	Ms := orbitOf(Saturn, d).M

	switch b {
	case Jupiter:
		return -0.332*sind(2*Mj-5*Ms-67.6) -
			0.056*sind(2*Mj-2*Ms+21) +
			0.042*sind(3*Mj-5*Ms+21) -
			0.036*sind(Mj-2*Ms) +
			0.022*cosd(Mj-Ms) +
			0.023*sind(2*Mj-3*Ms+52) -
			0.016*sind(Mj-5*Ms-69)
	case Saturn:
		return 0.812*sind(2*Mj-5*Ms-67.6) -
			0.229*cosd(2*Mj-4*Ms-2) +
			0.119*sind(Mj-2*Ms-3) +
			0.046*sind(2*Mj-6*Ms-69) +
			0.014*sind(Mj-3*Ms+32)
	}
	return 0
}

func sind(x float64) float64      { return math.Sin(x * math.Pi / 180) }
func cosd(x float64) float64      { return math.Cos(x * math.Pi / 180) }
func atan2d(y, x float64) float64 { return math.Atan2(y, x) * 180 / math.Pi }

// rev normalizes an angle into [0, 360).
func rev(x float64) float64 {
	x = math.Mod(x, 360)
	if x < 0 {
		x += 360
	}
	if x >= 360 {
		x = 0
	}
	return x
}

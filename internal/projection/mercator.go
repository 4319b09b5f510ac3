// Package projection maps geographic coordinates onto the game board: a
// Mercator projection centred on a reference meridian followed by a per-axis
// affine rescale.
package projection

import (
	"errors"
	"math"

	"github.com/golang/geo/s1"
	"github.com/paulmach/orb"
)

var ErrPolarLatitude = errors.New("latitude has no finite mercator projection")

// Mercator projects (lon, lat) in degrees to unscaled Mercator coordinates,
// with x measured from the meridian x0 (degrees). At lat = ±90 the y value is
// not finite; use MercatorChecked when that matters.
func Mercator(lon, lat, x0 float64) orb.Point {
	x := (s1.Angle(lon) * s1.Degree).Radians() - (s1.Angle(x0) * s1.Degree).Radians()
	phi := (s1.Angle(lat) * s1.Degree).Radians()
	y := math.Log(math.Tan(math.Pi/4 + phi/2))
	return orb.Point{x, y}
}

// MercatorChecked is Mercator that rejects the poles and anything beyond.
// Floating point tan(π/2) is finite, so +90 is rejected by range, not by result.
func MercatorChecked(lon, lat, x0 float64) (orb.Point, error) {
	if math.IsNaN(lat) || math.Abs(lat) >= 90 {
		return orb.Point{}, ErrPolarLatitude
	}
	p := Mercator(lon, lat, x0)
	if !finite(p[0]) || !finite(p[1]) {
		return p, ErrPolarLatitude
	}
	return p, nil
}

// InverseMercator turns projected coordinates back into (lon, lat) degrees.
func InverseMercator(p orb.Point, x0 float64) (lon, lat float64) {
	lon = (s1.Angle(p[0]) + s1.Angle(x0)*s1.Degree).Degrees()
	lat = s1.Angle(2*math.Atan(math.Exp(p[1])) - math.Pi/2).Degrees()
	return lon, lat
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

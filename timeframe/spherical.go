package timeframe

import (
	"math"

	"github.com/anupshinde/astrofit/linalg"
)

// GRWSpherical is the Earth-fixed spherical representation: radius,
// geographic latitude, longitude.
type GRWSpherical struct {
	R         float64
	Latitude  float64
	Longitude float64
}

// ABSSpherical is the inertial spherical representation: radius,
// declination, right ascension.
type ABSSpherical struct {
	R              float64
	Declination    float64
	RightAscension float64
}

// CartesianToGRWSpherical converts a GRW Cartesian vector to (r, lat, lon).
func CartesianToGRWSpherical(v linalg.Vector3) GRWSpherical {
	r := v.Norm()
	if r == 0 {
		return GRWSpherical{}
	}
	lat := math.Asin(clamp(v.Z/r, -1, 1))
	lon := math.Atan2(v.Y, v.X)
	if lon < 0 {
		lon += twoPi
	}
	return GRWSpherical{R: r, Latitude: lat, Longitude: lon}
}

// GRWSphericalToCartesian converts (r, lat, lon) to a GRW Cartesian vector.
func GRWSphericalToCartesian(s GRWSpherical) linalg.Vector3 {
	cosLat := math.Cos(s.Latitude)
	return linalg.NewVector3(
		s.R*cosLat*math.Cos(s.Longitude),
		s.R*cosLat*math.Sin(s.Longitude),
		s.R*math.Sin(s.Latitude),
	)
}

// CartesianToABSSpherical converts an ABS Cartesian vector to (r, dec, ra),
// with ra canonicalised into [0, 2*pi).
func CartesianToABSSpherical(v linalg.Vector3) ABSSpherical {
	r := v.Norm()
	if r == 0 {
		return ABSSpherical{}
	}
	dec := math.Asin(clamp(v.Z/r, -1, 1))
	ra := math.Atan2(v.Y, v.X)
	if ra < 0 {
		ra += twoPi
	}
	return ABSSpherical{R: r, Declination: dec, RightAscension: ra}
}

// ABSSphericalToCartesian converts (r, dec, ra) to an ABS Cartesian vector.
func ABSSphericalToCartesian(s ABSSpherical) linalg.Vector3 {
	cosDec := math.Cos(s.Declination)
	return linalg.NewVector3(
		s.R*cosDec*math.Cos(s.RightAscension),
		s.R*cosDec*math.Sin(s.RightAscension),
		s.R*math.Sin(s.Declination),
	)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

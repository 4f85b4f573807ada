package geo

import (
	"math"

	"github.com/etops-strategy/engine/pkg/core"
	geom "github.com/peterstace/simplefeatures/geom"
	"github.com/wroge/wgs84"
)

// WGS-84 ellipsoid
const (
	semiMajorAxis = 6378137.0
	flattening    = 1 / 298.257223563
	semiMinorAxis = (1 - flattening) * semiMajorAxis

	// MeanEarthRadiusKm is used for the spherical fallback.
	MeanEarthRadiusKm = 6371.0088

	vincentyIterations = 200
	vincentyTolerance  = 1e-12
)

// Distance returns the geodesic distance in km between two positions on the
// WGS-84 ellipsoid. It is exactly symmetric and exactly zero for equal inputs.
// Near-antipodal pairs where Vincenty's iteration does not converge fall back
// to the haversine distance on the mean earth radius.
func Distance(a, b core.LatLon) float64 {
	if a == b {
		return 0
	}
	// evaluate in a fixed order so that Distance(a,b) == Distance(b,a) bit for bit
	if b.Lat < a.Lat || (b.Lat == a.Lat && b.Lon < a.Lon) {
		a, b = b, a
	}
	if d, ok := vincenty(a, b); ok {
		return d
	}
	return Haversine(a, b)
}

// Haversine returns the great-circle distance in km on a sphere of MeanEarthRadiusKm.
func Haversine(a, b core.LatLon) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dlat := lat2 - lat1
	dlon := radians(b.Lon - a.Lon)

	x := sqr(math.Sin(dlat/2)) + math.Cos(lat1)*math.Cos(lat2)*sqr(math.Sin(dlon/2))
	c := 2 * math.Atan2(math.Sqrt(x), math.Sqrt(1-x))
	return MeanEarthRadiusKm * c
}

func vincenty(p1, p2 core.LatLon) (float64, bool) {
	l := radians(p2.Lon - p1.Lon)
	u1 := math.Atan((1 - flattening) * math.Tan(radians(p1.Lat)))
	u2 := math.Atan((1 - flattening) * math.Tan(radians(p2.Lat)))
	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := l
	for i := 0; i < vincentyIterations; i++ {
		sinLambda, cosLambda := math.Sincos(lambda)
		sinSigma := math.Sqrt(sqr(cosU2*sinLambda) + sqr(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			return 0, true
		}
		cosSigma := sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma := math.Atan2(sinSigma, cosSigma)
		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cosSqAlpha := 1 - sinAlpha*sinAlpha

		// equatorial line: cosSqAlpha == 0
		cos2SigmaM := 0.0
		if cosSqAlpha != 0 {
			cos2SigmaM = cosSigma - 2*sinU1*sinU2/cosSqAlpha
		}

		c := flattening / 16 * cosSqAlpha * (4 + flattening*(4-3*cosSqAlpha))
		prev := lambda
		lambda = l + (1-c)*flattening*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)))

		if math.Abs(lambda-prev) < vincentyTolerance {
			uSq := cosSqAlpha * (semiMajorAxis*semiMajorAxis - semiMinorAxis*semiMinorAxis) / (semiMinorAxis * semiMinorAxis)
			bigA := 1 + uSq/16384*(4096+uSq*(-768+uSq*(320-175*uSq)))
			bigB := uSq / 1024 * (256 + uSq*(-128+uSq*(74-47*uSq)))
			deltaSigma := bigB * sinSigma * (cos2SigmaM + bigB/4*(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
				bigB/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))
			return semiMinorAxis * bigA * (sigma - deltaSigma) / 1000, true
		}
	}
	return 0, false
}

// Project3857 converts a WGS-84 position into Web Mercator (EPSG:3857) meters.
func Project3857(p core.LatLon) geom.XY {
	epsg := wgs84.EPSG()
	f := epsg.Transform(4326, 3857)
	x, y, _ := f(p.Lon, p.Lat, 0)
	return geom.XY{X: x, Y: y}
}

func radians(deg float64) float64 {
	return deg / 180 * math.Pi
}

func sqr(v float64) float64 {
	return v * v
}

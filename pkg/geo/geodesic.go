package geo

import (
	"github.com/tidwall/geodesic"
)

// Inverse solves the geodesic inverse problem on the WGS84 ellipsoid.
// It returns the distance in meters and the forward azimuth at a in degrees
// clockwise from north.
func Inverse(a, b Waypoint) (float64, float64) {
	var s12, azi1 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, &azi1, nil)
	return s12, azi1
}

// InverseDistance is Inverse without the azimuth.
func InverseDistance(a, b Waypoint) float64 {
	var s12 float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &s12, nil, nil)
	return s12
}

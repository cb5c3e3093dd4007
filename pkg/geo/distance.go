package geo

import (
	"math"

	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

// Waypoint is a (lon, lat) pair in degrees. Order matters: longitude first,
// the same way the weather grids are laid out.
type Waypoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

func (w Waypoint) GetLat() float64 {
	return w.Lat
}

func (w Waypoint) GetLon() float64 {
	return w.Lon
}

func NewWaypoint(lon, lat float64) Waypoint {
	return Waypoint{
		Lon: lon,
		Lat: lat,
	}
}

func NewWaypoints(lons, lats []float64) []Waypoint {
	wps := make([]Waypoint, len(lats))
	for i := range lats {
		wps[i] = NewWaypoint(lons[i], lats[i])
	}
	return wps
}

// Validate rejects non-finite values and latitudes outside [-90, 90].
func (w Waypoint) Validate() error {
	if !util.IsFinite(w.Lon) || !util.IsFinite(w.Lat) {
		return util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"waypoint (%v, %v) is not finite", w.Lon, w.Lat)
	}
	if w.Lat < -90 || w.Lat > 90 {
		return util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
			"latitude %v out of range", w.Lat)
	}
	return nil
}

func (w Waypoint) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(w.Lat, w.Lon)
}

// EarthRadiusKm is the mean earth radius used by the spherical helpers.
const EarthRadiusKm = 6371.0

// hav is the haversine of an angle in radians.
func hav(theta float64) float64 {
	s := math.Sin(theta / 2)
	return s * s
}

// CalculateHaversineDistance returns the great circle distance in km between two
// points given in degrees.
func CalculateHaversineDistance(latA, lonA, latB, lonB float64) float64 {
	phiA, phiB := util.DegreeToRadians(latA), util.DegreeToRadians(latB)
	dLambda := util.DegreeToRadians(lonB - lonA)

	h := hav(phiB-phiA) + math.Cos(phiA)*math.Cos(phiB)*hav(dLambda)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(min(h, 1)))
}

// GreatCircleDistance is the spherical distance in km between two waypoints, computed on s2.
func GreatCircleDistance(a, b Waypoint) float64 {
	return a.LatLng().Distance(b.LatLng()).Radians() * EarthRadiusKm
}

// GetDestinationPoint walks distKm along the great circle leaving (lat, lon) with
// the given initial bearing in degrees and returns the end point as (lat, lon).
func GetDestinationPoint(lat, lon, bearing, distKm float64) (float64, float64) {
	delta := distKm / EarthRadiusKm
	theta := util.DegreeToRadians(bearing)
	phi := util.DegreeToRadians(lat)
	lambda := util.DegreeToRadians(lon)

	sinPhi2 := math.Sin(phi)*math.Cos(delta) + math.Cos(phi)*math.Sin(delta)*math.Cos(theta)
	phi2 := math.Asin(sinPhi2)
	lambda2 := lambda + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi),
		math.Cos(delta)-math.Sin(phi)*sinPhi2,
	)

	return util.RadiansToDegree(phi2), NormalizeLongitude(util.RadiansToDegree(lambda2))
}

// NormalizeLongitude maps a longitude in degrees onto [-180, 180).
func NormalizeLongitude(lon float64) float64 {
	return math.Mod(lon+540, 360) - 180
}

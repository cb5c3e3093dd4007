package geo

import (
	"github.com/twpayne/go-polyline"
)

func PolylineFromWaypoints(route []Waypoint) string {
	coords := make([][]float64, len(route))
	for i, wp := range route {
		coords[i] = []float64{wp.Lat, wp.Lon}
	}
	return string(polyline.EncodeCoords(coords))
}

func WaypointsFromPolyline(encoded string) ([]Waypoint, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}
	route := make([]Waypoint, len(coords))
	for i, c := range coords {
		route[i] = NewWaypoint(c[1], c[0])
	}
	return route, nil
}

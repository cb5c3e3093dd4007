package geo

import (
	"math"
	"testing"

	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInverse(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Waypoint
		wantDist float64
		wantAzi  float64
		delta    float64
	}{
		{
			name:     "one degree along the equator",
			a:        NewWaypoint(0, 0),
			b:        NewWaypoint(1, 0),
			wantDist: 111319.491,
			wantAzi:  90,
			delta:    0.01,
		},
		{
			name:     "one degree along a meridian",
			a:        NewWaypoint(0, 0),
			b:        NewWaypoint(0, 1),
			wantDist: 110574.389,
			wantAzi:  0,
			delta:    1.0,
		},
		{
			name:     "same point",
			a:        NewWaypoint(-70.1, 40.5),
			b:        NewWaypoint(-70.1, 40.5),
			wantDist: 0,
			delta:    1e-9,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			dist, azi := Inverse(tt.a, tt.b)
			assert.InDelta(t, tt.wantDist, dist, tt.delta)
			assert.InDelta(t, tt.wantDist, InverseDistance(tt.a, tt.b), tt.delta)
			if tt.wantDist > 0 {
				assert.InDelta(t, tt.wantAzi, azi, 1e-6)
			}
		})
	}
}

func TestInverseIsSymmetric(t *testing.T) {
	ny := NewWaypoint(-73.78, 40.64)
	lisbon := NewWaypoint(-9.13, 38.77)

	assert.InDelta(t, InverseDistance(ny, lisbon), InverseDistance(lisbon, ny), 1e-6)
	// ellipsoid and sphere agree to well under one percent on an ocean crossing
	sphere := GreatCircleDistance(ny, lisbon) * 1000
	assert.InEpsilon(t, sphere, InverseDistance(ny, lisbon), 0.01)
}

func TestGreatCircleMatchesHaversine(t *testing.T) {
	a := NewWaypoint(110.36, -7.8)
	b := NewWaypoint(106.8, -6.2)
	assert.InDelta(t, CalculateHaversineDistance(a.Lat, a.Lon, b.Lat, b.Lon), GreatCircleDistance(a, b), 1e-6)
}

func TestWaypointValidate(t *testing.T) {
	require.NoError(t, NewWaypoint(-181, 89.9).Validate())

	for _, wp := range []Waypoint{
		NewWaypoint(math.NaN(), 0),
		NewWaypoint(0, math.Inf(1)),
		NewWaypoint(0, 90.5),
	} {
		err := wp.Validate()
		assert.ErrorIs(t, err, util.ErrInvalidCoordinate)
	}
}

func TestPolylineRoundTrip(t *testing.T) {
	route := []Waypoint{NewWaypoint(-73.78, 40.64), NewWaypoint(-40.5, 41.2), NewWaypoint(-9.13, 38.77)}

	encoded := PolylineFromWaypoints(route)
	decoded, err := WaypointsFromPolyline(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, len(route))
	for i := range route {
		assert.InDelta(t, route[i].Lon, decoded[i].Lon, 1e-5)
		assert.InDelta(t, route[i].Lat, decoded[i].Lat, 1e-5)
	}
}

func TestGetDestinationPoint(t *testing.T) {
	lat, lon := GetDestinationPoint(0, 0, 90, CalculateHaversineDistance(0, 0, 0, 1))
	assert.InDelta(t, 0, lat, 1e-9)
	assert.InDelta(t, 1, lon, 1e-9)
}

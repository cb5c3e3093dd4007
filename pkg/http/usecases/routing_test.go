package usecases

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/metrics"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testNow = time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *RouteService {
	t.Helper()
	boat := ship.NewConstantFuelBoat(util.BoatConfig{BoatSpeed: 5, ConstantFuelRate: 2}, zap.NewNop())
	return NewRouteService(zap.NewNop(), boat, clockwork.NewFakeClockAt(testNow), 4)
}

func equatorRoute() []geo.Waypoint {
	return []geo.Waypoint{geo.NewWaypoint(0, 0), geo.NewWaypoint(1, 0), geo.NewWaypoint(2, 0)}
}

func TestScoreRoute(t *testing.T) {
	rs := newTestService(t)

	score, err := rs.ScoreRoute(context.Background(), equatorRoute(), metrics.ConstantSpeed(5), time.Time{})
	require.NoError(t, err)

	require.Len(t, score.Distances, 3)
	require.Len(t, score.ElapsedTimes, 3)
	require.Len(t, score.Courses, 3)
	require.Len(t, score.FuelPerLeg, 2)
	assert.Equal(t, 3, score.Params.Len())

	// zero departure falls back to the clock
	assert.Equal(t, testNow, score.ArrivalTimes[0])
	assert.Equal(t, testNow.Add(time.Duration(score.ElapsedTimes[2]*float64(time.Second))), score.ArrivalTimes[2])

	assert.InDelta(t, 2*111319.491/5, score.ElapsedTimes[2], 0.01)
	assert.InDelta(t, 2*score.ElapsedTimes[2], score.TotalFuel, 1e-6)
	assert.InDelta(t, math.Pi/2, score.Courses[0], 1e-9)

	decoded, err := geo.WaypointsFromPolyline(score.Polyline)
	require.NoError(t, err)
	assert.Len(t, decoded, 3)
}

func TestScoreRouteSegmentSpeeds(t *testing.T) {
	rs := newTestService(t)
	departure := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	score, err := rs.ScoreRoute(context.Background(), equatorRoute(), metrics.SegmentSpeeds(4, 8), departure)
	require.NoError(t, err)

	assert.Equal(t, departure, score.ArrivalTimes[0])
	speeds, ok := score.Params.Speed().Values()
	require.True(t, ok)
	assert.EqualValues(t, []float64{4, 8, 8}, []float64{float64(speeds[0]), float64(speeds[1]), float64(speeds[2])})
	assert.InDelta(t, 111319.491/4+111319.491/8, score.ElapsedTimes[2], 0.01)
}

func TestScoreRouteErrors(t *testing.T) {
	rs := newTestService(t)

	testCases := []struct {
		name    string
		ctx     func() context.Context
		route   []geo.Waypoint
		speed   metrics.Speed
		wantErr error
	}{
		{
			name:    "empty route",
			ctx:     context.Background,
			route:   nil,
			speed:   metrics.ConstantSpeed(5),
			wantErr: util.ErrEmptyRoute,
		},
		{
			name:    "zero speed",
			ctx:     context.Background,
			route:   equatorRoute(),
			speed:   metrics.ConstantSpeed(0),
			wantErr: util.ErrDivisionByZero,
		},
		{
			name: "canceled",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			},
			route:   equatorRoute(),
			speed:   metrics.ConstantSpeed(5),
			wantErr: context.Canceled,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rs.ScoreRoute(tt.ctx(), tt.route, tt.speed, time.Time{})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestScoreRoutes(t *testing.T) {
	rs := newTestService(t)

	candidates := []RouteCandidate{
		{Route: equatorRoute(), Speed: metrics.ConstantSpeed(5)},
		{Route: nil, Speed: metrics.ConstantSpeed(5)},
		{Route: equatorRoute()[:2], Speed: metrics.ConstantSpeed(10)},
		{Route: equatorRoute(), Speed: metrics.SegmentSpeeds(5, 5)},
	}

	results := rs.ScoreRoutes(context.Background(), candidates...)
	require.Len(t, results, len(candidates))

	for i, r := range results {
		assert.Equal(t, i, r.Index)
	}
	require.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, util.ErrEmptyRoute)
	require.NoError(t, results[2].Err)
	require.NoError(t, results[3].Err)

	assert.Greater(t, results[0].Score.TotalFuel, results[2].Score.TotalFuel)
	assert.InDelta(t, results[0].Score.TotalFuel, results[3].Score.TotalFuel, 1e-6)
}

func TestFuelRate(t *testing.T) {
	rs := newTestService(t)

	rate, err := rs.FuelRate(2, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, rate)

	_, err = rs.FuelRate(-1, 10)
	assert.ErrorIs(t, err, util.ErrBadParamInput)
	_, err = rs.FuelRate(1, math.NaN())
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}

package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/lintang-b-s/shiproute/pkg/concurrent"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/metrics"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

type RouteService struct {
	log        *zap.Logger
	boat       Boat
	clock      clockwork.Clock
	numWorkers int
}

func NewRouteService(log *zap.Logger, boat Boat, clock clockwork.Clock, numWorkers int) *RouteService {
	if log == nil {
		log = zap.NewNop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &RouteService{
		log:        log,
		boat:       boat,
		clock:      clock,
		numWorkers: numWorkers,
	}
}

// RouteScore is everything an optimizer needs to compare one candidate route.
type RouteScore struct {
	Distances    []float64 // m, cumulative
	ElapsedTimes []float64 // s, cumulative
	Courses      []float64 // rad
	ArrivalTimes []time.Time
	Params       *ship.ShipParams
	FuelPerLeg   []float64 // kg
	TotalFuel    float64   // kg
	Polyline     string
}

// RouteCandidate is one route to score. A zero Departure means now.
type RouteCandidate struct {
	Route     []geo.Waypoint
	Speed     metrics.Speed
	Departure time.Time
}

type ScoredRoute struct {
	Index int
	Score *RouteScore
	Err   error
}

func (rs *RouteService) departure(t time.Time) time.Time {
	if t.IsZero() {
		return rs.clock.Now().UTC()
	}
	return t
}

// waypointSpeeds gives every waypoint the speed of the leg leaving it; the last
// waypoint keeps the final leg's speed.
func waypointSpeeds(speed metrics.Speed, n int) []float64 {
	if !speed.IsPerSegment() {
		return []float64{speed.At(0)}
	}
	speeds := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i
		if k > n-2 {
			k = n - 2
		}
		if k < 0 {
			return nil
		}
		speeds[i] = speed.At(k)
	}
	return speeds
}

// ScoreRoute computes distances, times, courses, ship parameters and fuel for
// route sailed at speed from departure.
func (rs *RouteService) ScoreRoute(ctx context.Context, route []geo.Waypoint, speed metrics.Speed,
	departure time.Time) (*RouteScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dists, err := metrics.CumulativeDistance(route)
	if err != nil {
		return nil, err
	}
	elapsed, err := metrics.ElapsedTime(speed, route)
	if err != nil {
		return nil, err
	}
	courses, err := metrics.Courses(route)
	if err != nil {
		return nil, err
	}
	arrivals := metrics.ArrivalTimes(rs.departure(departure), elapsed)

	lats := make([]float64, len(route))
	lons := make([]float64, len(route))
	for i, wp := range route {
		lats[i], lons[i] = wp.GetLat(), wp.GetLon()
	}

	params, err := rs.boat.GetShipParameters(ship.ShipParamsRequest{
		Courses: courses,
		Lats:    lats,
		Lons:    lons,
		Times:   arrivals,
		Speeds:  waypointSpeeds(speed, len(route)),
	})
	if err != nil {
		return nil, err
	}

	fuelPerLeg, err := params.FuelConsumed(elapsed)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, kg := range fuelPerLeg {
		total += kg
	}

	return &RouteScore{
		Distances:    dists,
		ElapsedTimes: elapsed,
		Courses:      courses,
		ArrivalTimes: arrivals,
		Params:       params,
		FuelPerLeg:   fuelPerLeg,
		TotalFuel:    total,
		Polyline:     geo.PolylineFromWaypoints(route),
	}, nil
}

// ScoreRoutes scores every candidate on the worker pool. Results come back in
// input order; a failing candidate does not stop the others.
func (rs *RouteService) ScoreRoutes(ctx context.Context, candidates ...RouteCandidate) []ScoredRoute {
	type job struct {
		index     int
		candidate RouteCandidate
	}
	jobs := make([]job, len(candidates))
	for i, c := range candidates {
		jobs[i] = job{index: i, candidate: c}
	}

	results := concurrent.Run(rs.numWorkers, jobs, func(j job) ScoredRoute {
		score, err := rs.ScoreRoute(ctx, j.candidate.Route, j.candidate.Speed, j.candidate.Departure)
		return ScoredRoute{Index: j.index, Score: score, Err: err}
	})

	sort.Slice(results, func(a, b int) bool {
		return results[a].Index < results[b].Index
	})

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	rs.log.Debug("scored candidate routes", zap.Int("routes", len(results)), zap.Int("failed", failed))
	return results
}

// ShipParameters evaluates the boat model directly on a caller-built request.
func (rs *RouteService) ShipParameters(req ship.ShipParamsRequest) (*ship.ShipParams, error) {
	return rs.boat.GetShipParameters(req)
}

func (rs *RouteService) FuelRate(waveHeight, windSpeed float64) (units.KilogramPerSecond, error) {
	if !util.IsFinite(waveHeight) || !util.IsFinite(windSpeed) || waveHeight < 0 || windSpeed < 0 {
		return 0, util.WrapErrorf(nil, util.ErrBadParamInput,
			"wave height and wind speed must be non-negative, got %v and %v", waveHeight, windSpeed)
	}
	return rs.boat.CalculateFuelRate(units.Meter(waveHeight), units.MeterPerSecond(windSpeed)), nil
}

package controllers

import (
	"context"
	"time"

	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/http/usecases"
	"github.com/lintang-b-s/shiproute/pkg/metrics"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/spatialindex"
	"github.com/lintang-b-s/shiproute/pkg/units"
)

type RouteService interface {
	ScoreRoute(ctx context.Context, route []geo.Waypoint, speed metrics.Speed, departure time.Time) (*usecases.RouteScore, error)
	ScoreRoutes(ctx context.Context, candidates ...usecases.RouteCandidate) []usecases.ScoredRoute
	ShipParameters(req ship.ShipParamsRequest) (*ship.ShipParams, error)
	FuelRate(waveHeight, windSpeed float64) (units.KilogramPerSecond, error)
	ResolveSearchSpace(ds *grid.WeatherGrid, varName string, timeIdx int,
		corner1, corner2, start, end geo.Waypoint) (*usecases.SearchSpace, error)
	NearbyCells(ds grid.Dataset, wp geo.Waypoint, radiusKm float64, limit int) ([]spatialindex.CellEntry, error)
}

package usecases

import (
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/spatialindex"
	"github.com/lintang-b-s/shiproute/pkg/units"
)

type Boat interface {
	GetBoatSpeed() units.MeterPerSecond
	CalculateFuelRate(waveHeight units.Meter, windSpeed units.MeterPerSecond) units.KilogramPerSecond
	GetShipParameters(req ship.ShipParamsRequest) (*ship.ShipParams, error)
}

type SpatialIndex interface {
	SearchWithinRadius(qLat, qLon, radius float64, limit int) []spatialindex.CellEntry
}

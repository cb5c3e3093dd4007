package ship

import (
	"time"

	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

const (
	BoatTypeSynthetic = "synthetic"
	BoatTypeConstant  = "constant"
)

// Boat turns a candidate route into per-waypoint ship parameters.
type Boat interface {
	GetBoatSpeed() units.MeterPerSecond
	CalculateFuelRate(waveHeight units.Meter, windSpeed units.MeterPerSecond) units.KilogramPerSecond
	GetShipParameters(req ShipParamsRequest) (*ShipParams, error)
	PrintInit()
}

// ShipParamsRequest describes the n waypoints to evaluate. Courses, Lats and
// Lons have one entry per waypoint. Times and Speeds may be empty, hold a
// single value for every waypoint, or one value per waypoint. Speeds default
// to the boat speed.
type ShipParamsRequest struct {
	Courses      []float64   // rad
	Lats         []float64   // deg
	Lons         []float64   // deg
	Times        []time.Time // arrival time per waypoint
	Speeds       []float64   // m/s
	UniqueCoords bool        // one environment sample per distinct (lat, lon)
}

func (r ShipParamsRequest) Len() int {
	return len(r.Courses)
}

// NewBoat picks the boat model named by cfg.BoatType.
func NewBoat(cfg util.BoatConfig, sampler EnvironmentSampler, log *zap.Logger) (Boat, error) {
	if cfg.BoatType == "" {
		cfg.BoatType = BoatTypeSynthetic
	}
	if err := util.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	switch cfg.BoatType {
	case BoatTypeSynthetic:
		if sampler == nil {
			sampler = NewSeededSampler(cfg.Seed)
		}
		return NewSyntheticFuelBoat(cfg, sampler, log), nil
	case BoatTypeConstant:
		return NewConstantFuelBoat(cfg, log), nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "unknown boat type %q", cfg.BoatType)
	}
}

// normalizedRequest is a request with Times and Speeds expanded to length n.
type normalizedRequest struct {
	n      int
	lats   []float64
	lons   []float64
	times  []time.Time
	speeds []units.MeterPerSecond
}

func normalizeRequest(req ShipParamsRequest, boatSpeed units.MeterPerSecond) (*normalizedRequest, error) {
	n := req.Len()
	if len(req.Lats) != n || len(req.Lons) != n {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"got %d courses, %d lats and %d lons", n, len(req.Lats), len(req.Lons))
	}
	for i := 0; i < n; i++ {
		if !util.IsFinite(req.Lats[i]) || !util.IsFinite(req.Lons[i]) {
			return nil, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput,
				"waypoint %d (%v, %v) is not finite", i, req.Lons[i], req.Lats[i])
		}
	}

	times, err := broadcast(req.Times, n, time.Time{}, "times")
	if err != nil {
		return nil, err
	}
	rawSpeeds, err := broadcast(req.Speeds, n, float64(boatSpeed), "speeds")
	if err != nil {
		return nil, err
	}
	speeds := make([]units.MeterPerSecond, n)
	for i, v := range rawSpeeds {
		if !util.IsFinite(v) || v < 0 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "speed %d is %v", i, v)
		}
		speeds[i] = units.MeterPerSecond(v)
	}

	return &normalizedRequest{
		n:      n,
		lats:   req.Lats,
		lons:   req.Lons,
		times:  times,
		speeds: speeds,
	}, nil
}

func broadcast[T any](in []T, n int, def T, name string) ([]T, error) {
	out := make([]T, n)
	switch len(in) {
	case 0:
		for i := range out {
			out[i] = def
		}
	case 1:
		for i := range out {
			out[i] = in[0]
		}
	case n:
		copy(out, in)
	default:
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "%s has %d entries, want 0, 1 or %d", name, len(in), n)
	}
	return out, nil
}

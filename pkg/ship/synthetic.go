package ship

import (
	"math"

	"github.com/lintang-b-s/shiproute/pkg"
	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

/*
SyntheticFuelBoat estimates fuel rate from the weather at each waypoint:

	rate = baseFuelRate * typeMultiplier * (1 + 0.5 (h / 1 m)^2) * (1 + 0.2 (w / 10 m/s)^3)

clamped to [0.5, 5.0] kg/s, with h the significant wave height and w the wind
speed. The weather comes from an EnvironmentSampler, which is synthetic for
now. Everything except the sampler is fixed at construction.
*/
type SyntheticFuelBoat struct {
	speed          units.MeterPerSecond
	baseFuelRate   units.KilogramPerSecond
	shipType       string
	typeMultiplier float64
	sampler        EnvironmentSampler
	log            *zap.Logger
}

func NewSyntheticFuelBoat(cfg util.BoatConfig, sampler EnvironmentSampler, log *zap.Logger) *SyntheticFuelBoat {
	shipType := cfg.ShipType
	if shipType == "" {
		shipType = "generic_cargo"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &SyntheticFuelBoat{
		speed:          units.MeterPerSecond(cfg.BoatSpeed),
		baseFuelRate:   units.KilogramPerSecond(cfg.ConstantFuelRate),
		shipType:       shipType,
		typeMultiplier: pkg.GetShipType(shipType).TypeMultiplier(),
		sampler:        sampler,
		log:            log,
	}
}

func (b *SyntheticFuelBoat) GetBoatSpeed() units.MeterPerSecond {
	return b.speed
}

func (b *SyntheticFuelBoat) PrintInit() {
	b.log.Info("Boat speed", zap.Stringer("speed", b.speed))
	b.log.Info("Base fuel rate", zap.Stringer("fuel_rate", b.baseFuelRate))
	b.log.Info("Ship type", zap.String("ship_type", b.shipType), zap.Float64("type_multiplier", b.typeMultiplier))
}

func (b *SyntheticFuelBoat) CalculateFuelRate(waveHeight units.Meter, windSpeed units.MeterPerSecond) units.KilogramPerSecond {
	waveFactor := 1 + 0.5*math.Pow(float64(waveHeight)/1.0, 2)
	windFactor := 1 + 0.2*math.Pow(float64(windSpeed)/10.0, 3)

	rate := float64(b.baseFuelRate) * b.typeMultiplier * waveFactor * windFactor
	return units.KilogramPerSecond(util.Clamp(rate, pkg.MIN_FUEL_RATE, pkg.MAX_FUEL_RATE))
}

func (b *SyntheticFuelBoat) GetShipParameters(req ShipParamsRequest) (*ShipParams, error) {
	nr, err := normalizeRequest(req, b.speed)
	if err != nil {
		return nil, err
	}

	samples := make([]EnvironmentSample, nr.n)
	seen := make(map[[2]float64]EnvironmentSample)
	for i := 0; i < nr.n; i++ {
		key := [2]float64{nr.lats[i], nr.lons[i]}
		if req.UniqueCoords {
			if s, ok := seen[key]; ok {
				samples[i] = s
				continue
			}
		}
		samples[i] = b.sampler.Sample(nr.lats[i], nr.lons[i], nr.times[i])
		seen[key] = samples[i]
	}

	fuelRates := make([]units.KilogramPerSecond, nr.n)
	waveHeights := make([]units.Meter, nr.n)
	windSpeeds := make([]units.MeterPerSecond, nr.n)
	for i, s := range samples {
		fuelRates[i] = b.CalculateFuelRate(s.WaveHeight, s.WindSpeed)
		waveHeights[i] = s.WaveHeight
		windSpeeds[i] = s.WindSpeed
	}

	fields := UnmodeledFields(nr.n)
	fields.FuelRate = units.ModeledSeries(fuelRates)
	fields.Speed = units.ModeledSeries(nr.speeds)
	fields.WaveHeight = units.ModeledSeries(waveHeights)
	fields.UWindSpeed = units.ModeledSeries(windSpeeds)

	if pkg.DEBUG {
		b.log.Debug("Fuel rates", zap.Any("fuel_rates", fuelRates))
	}
	return NewShipParams(fields)
}

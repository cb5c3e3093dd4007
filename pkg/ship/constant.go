package ship

import (
	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

// ConstantFuelBoat burns the configured fuel rate everywhere and models no weather.
type ConstantFuelBoat struct {
	speed    units.MeterPerSecond
	fuelRate units.KilogramPerSecond
	log      *zap.Logger
}

func NewConstantFuelBoat(cfg util.BoatConfig, log *zap.Logger) *ConstantFuelBoat {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConstantFuelBoat{
		speed:    units.MeterPerSecond(cfg.BoatSpeed),
		fuelRate: units.KilogramPerSecond(cfg.ConstantFuelRate),
		log:      log,
	}
}

func (b *ConstantFuelBoat) GetBoatSpeed() units.MeterPerSecond {
	return b.speed
}

// CalculateFuelRate ignores the weather.
func (b *ConstantFuelBoat) CalculateFuelRate(units.Meter, units.MeterPerSecond) units.KilogramPerSecond {
	return b.fuelRate
}

func (b *ConstantFuelBoat) PrintInit() {
	b.log.Sugar().Infof("Boat speed: %v", b.speed)
	b.log.Sugar().Infof("Constant fuel rate: %v", b.fuelRate)
}

func (b *ConstantFuelBoat) GetShipParameters(req ShipParamsRequest) (*ShipParams, error) {
	nr, err := normalizeRequest(req, b.speed)
	if err != nil {
		return nil, err
	}

	rates := make([]units.KilogramPerSecond, nr.n)
	for i := range rates {
		rates[i] = b.fuelRate
	}

	fields := UnmodeledFields(nr.n)
	fields.FuelRate = units.ModeledSeries(rates)
	fields.Speed = units.ModeledSeries(nr.speeds)
	return NewShipParams(fields)
}

package ship

import (
	"encoding/json"
	"slices"

	"github.com/lintang-b-s/shiproute/pkg/units"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

// ShipParamsFields is the input to NewShipParams: one series per quantity,
// all of the same length.
type ShipParamsFields struct {
	FuelRate         units.Series[units.KilogramPerSecond] `json:"fuel_rate"`
	Power            units.Series[units.Watt]              `json:"power"`
	RPM              units.Series[units.Hertz]             `json:"rpm"`
	Speed            units.Series[units.MeterPerSecond]    `json:"speed"`
	RWind            units.Series[units.Newton]            `json:"r_wind"`
	RCalm            units.Series[units.Newton]            `json:"r_calm"`
	RWaves           units.Series[units.Newton]            `json:"r_waves"`
	RShallow         units.Series[units.Newton]            `json:"r_shallow"`
	RRoughness       units.Series[units.Newton]            `json:"r_roughness"`
	WaveHeight       units.Series[units.Meter]             `json:"wave_height"`
	WaveDirection    units.Series[units.Radian]            `json:"wave_direction"`
	WavePeriod       units.Series[units.Second]            `json:"wave_period"`
	UCurrents        units.Series[units.MeterPerSecond]    `json:"u_currents"`
	VCurrents        units.Series[units.MeterPerSecond]    `json:"v_currents"`
	UWindSpeed       units.Series[units.MeterPerSecond]    `json:"u_wind_speed"`
	VWindSpeed       units.Series[units.MeterPerSecond]    `json:"v_wind_speed"`
	Pressure         units.Series[units.Pascal]            `json:"pressure"`
	AirTemperature   units.Series[units.Celsius]           `json:"air_temperature"`
	Salinity         units.Series[units.Dimensionless]     `json:"salinity"`
	WaterTemperature units.Series[units.Celsius]           `json:"water_temperature"`
	Status           []int                                 `json:"status"`
	Message          []string                              `json:"message"`
}

// UnmodeledFields returns n waypoints where nothing is modeled, status 0 and
// an empty message.
func UnmodeledFields(n int) ShipParamsFields {
	return ShipParamsFields{
		FuelRate:         units.UnmodeledSeries[units.KilogramPerSecond](n),
		Power:            units.UnmodeledSeries[units.Watt](n),
		RPM:              units.UnmodeledSeries[units.Hertz](n),
		Speed:            units.UnmodeledSeries[units.MeterPerSecond](n),
		RWind:            units.UnmodeledSeries[units.Newton](n),
		RCalm:            units.UnmodeledSeries[units.Newton](n),
		RWaves:           units.UnmodeledSeries[units.Newton](n),
		RShallow:         units.UnmodeledSeries[units.Newton](n),
		RRoughness:       units.UnmodeledSeries[units.Newton](n),
		WaveHeight:       units.UnmodeledSeries[units.Meter](n),
		WaveDirection:    units.UnmodeledSeries[units.Radian](n),
		WavePeriod:       units.UnmodeledSeries[units.Second](n),
		UCurrents:        units.UnmodeledSeries[units.MeterPerSecond](n),
		VCurrents:        units.UnmodeledSeries[units.MeterPerSecond](n),
		UWindSpeed:       units.UnmodeledSeries[units.MeterPerSecond](n),
		VWindSpeed:       units.UnmodeledSeries[units.MeterPerSecond](n),
		Pressure:         units.UnmodeledSeries[units.Pascal](n),
		AirTemperature:   units.UnmodeledSeries[units.Celsius](n),
		Salinity:         units.UnmodeledSeries[units.Dimensionless](n),
		WaterTemperature: units.UnmodeledSeries[units.Celsius](n),
		Status:           make([]int, n),
		Message:          make([]string, n),
	}
}

func (f ShipParamsFields) lengths() []int {
	return []int{
		len(f.FuelRate), len(f.Power), len(f.RPM), len(f.Speed),
		len(f.RWind), len(f.RCalm), len(f.RWaves), len(f.RShallow), len(f.RRoughness),
		len(f.WaveHeight), len(f.WaveDirection), len(f.WavePeriod),
		len(f.UCurrents), len(f.VCurrents), len(f.UWindSpeed), len(f.VWindSpeed),
		len(f.Pressure), len(f.AirTemperature), len(f.Salinity), len(f.WaterTemperature),
		len(f.Status), len(f.Message),
	}
}

func (f ShipParamsFields) clone() ShipParamsFields {
	return ShipParamsFields{
		FuelRate:         slices.Clone(f.FuelRate),
		Power:            slices.Clone(f.Power),
		RPM:              slices.Clone(f.RPM),
		Speed:            slices.Clone(f.Speed),
		RWind:            slices.Clone(f.RWind),
		RCalm:            slices.Clone(f.RCalm),
		RWaves:           slices.Clone(f.RWaves),
		RShallow:         slices.Clone(f.RShallow),
		RRoughness:       slices.Clone(f.RRoughness),
		WaveHeight:       slices.Clone(f.WaveHeight),
		WaveDirection:    slices.Clone(f.WaveDirection),
		WavePeriod:       slices.Clone(f.WavePeriod),
		UCurrents:        slices.Clone(f.UCurrents),
		VCurrents:        slices.Clone(f.VCurrents),
		UWindSpeed:       slices.Clone(f.UWindSpeed),
		VWindSpeed:       slices.Clone(f.VWindSpeed),
		Pressure:         slices.Clone(f.Pressure),
		AirTemperature:   slices.Clone(f.AirTemperature),
		Salinity:         slices.Clone(f.Salinity),
		WaterTemperature: slices.Clone(f.WaterTemperature),
		Status:           slices.Clone(f.Status),
		Message:          slices.Clone(f.Message),
	}
}

func pick[S ~[]E, E any](s S, indices []int) S {
	out := make(S, len(indices))
	for i, idx := range indices {
		out[i] = s[idx]
	}
	return out
}

func (f ShipParamsFields) pick(indices []int) ShipParamsFields {
	return ShipParamsFields{
		FuelRate:         pick(f.FuelRate, indices),
		Power:            pick(f.Power, indices),
		RPM:              pick(f.RPM, indices),
		Speed:            pick(f.Speed, indices),
		RWind:            pick(f.RWind, indices),
		RCalm:            pick(f.RCalm, indices),
		RWaves:           pick(f.RWaves, indices),
		RShallow:         pick(f.RShallow, indices),
		RRoughness:       pick(f.RRoughness, indices),
		WaveHeight:       pick(f.WaveHeight, indices),
		WaveDirection:    pick(f.WaveDirection, indices),
		WavePeriod:       pick(f.WavePeriod, indices),
		UCurrents:        pick(f.UCurrents, indices),
		VCurrents:        pick(f.VCurrents, indices),
		UWindSpeed:       pick(f.UWindSpeed, indices),
		VWindSpeed:       pick(f.VWindSpeed, indices),
		Pressure:         pick(f.Pressure, indices),
		AirTemperature:   pick(f.AirTemperature, indices),
		Salinity:         pick(f.Salinity, indices),
		WaterTemperature: pick(f.WaterTemperature, indices),
		Status:           pick(f.Status, indices),
		Message:          pick(f.Message, indices),
	}
}

// ShipParams is an immutable per-waypoint snapshot of the modeled ship state.
// Accessors hand out copies.
type ShipParams struct {
	fields ShipParamsFields
	n      int
}

// NewShipParams copies f and rejects series of unequal length.
func NewShipParams(f ShipParamsFields) (*ShipParams, error) {
	lens := f.lengths()
	for _, l := range lens {
		if l != lens[0] {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "ship parameter series have unequal lengths %v", lens)
		}
	}
	return &ShipParams{fields: f.clone(), n: lens[0]}, nil
}

func (sp *ShipParams) Len() int {
	return sp.n
}

func (sp *ShipParams) Fields() ShipParamsFields {
	return sp.fields.clone()
}

func (sp *ShipParams) FuelRate() units.Series[units.KilogramPerSecond] {
	return slices.Clone(sp.fields.FuelRate)
}

func (sp *ShipParams) Speed() units.Series[units.MeterPerSecond] {
	return slices.Clone(sp.fields.Speed)
}

func (sp *ShipParams) WaveHeight() units.Series[units.Meter] {
	return slices.Clone(sp.fields.WaveHeight)
}

func (sp *ShipParams) UWindSpeed() units.Series[units.MeterPerSecond] {
	return slices.Clone(sp.fields.UWindSpeed)
}

func (sp *ShipParams) Status() []int {
	return slices.Clone(sp.fields.Status)
}

func (sp *ShipParams) Message() []string {
	return slices.Clone(sp.fields.Message)
}

// Select returns the waypoints at indices, in that order.
func (sp *ShipParams) Select(indices []int) (*ShipParams, error) {
	for _, idx := range indices {
		if idx < 0 || idx >= sp.n {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "index %d out of range [0, %d)", idx, sp.n)
		}
	}
	return &ShipParams{fields: sp.fields.pick(indices), n: len(indices)}, nil
}

// FuelConsumed returns the kilograms burned on every leg, len-1 values. Leg k
// runs at the fuel rate of waypoint k for elapsed[k+1]-elapsed[k] seconds.
func (sp *ShipParams) FuelConsumed(elapsed []float64) ([]float64, error) {
	if len(elapsed) != sp.n {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "got %d elapsed times for %d waypoints", len(elapsed), sp.n)
	}
	if sp.n == 0 {
		return []float64{}, nil
	}

	legs := make([]float64, sp.n-1)
	for k := 0; k < sp.n-1; k++ {
		rate, ok := sp.fields.FuelRate[k].Get()
		if !ok {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "fuel rate at waypoint %d is not modeled", k)
		}
		legs[k] = rate.Over(units.Second(elapsed[k+1] - elapsed[k]))
	}
	return legs, nil
}

func (sp *ShipParams) TotalFuel(elapsed []float64) (float64, error) {
	legs, err := sp.FuelConsumed(elapsed)
	if err != nil {
		return 0, err
	}
	total := 0.0
	for _, kg := range legs {
		total += kg
	}
	return total, nil
}

func (sp *ShipParams) MarshalJSON() ([]byte, error) {
	return json.Marshal(sp.fields)
}

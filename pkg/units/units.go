package units

import (
	"strconv"
)

// Quantity is a float64 tagged with its physical unit.
type Quantity interface {
	~float64
	Unit() string
}

type (
	KilogramPerSecond float64
	Watt              float64
	Hertz             float64
	MeterPerSecond    float64
	Newton            float64
	Meter             float64
	Radian            float64
	Second            float64
	Pascal            float64
	Celsius           float64
	Dimensionless     float64
)

func (KilogramPerSecond) Unit() string { return "kg/s" }
func (Watt) Unit() string              { return "W" }
func (Hertz) Unit() string             { return "Hz" }
func (MeterPerSecond) Unit() string    { return "m/s" }
func (Newton) Unit() string            { return "N" }
func (Meter) Unit() string             { return "m" }
func (Radian) Unit() string            { return "rad" }
func (Second) Unit() string            { return "s" }
func (Pascal) Unit() string            { return "Pa" }
func (Celsius) Unit() string           { return "°C" }
func (Dimensionless) Unit() string     { return "" }

func format[T Quantity](q T) string {
	s := strconv.FormatFloat(float64(q), 'g', -1, 64)
	if u := q.Unit(); u != "" {
		return s + " " + u
	}
	return s
}

func (q KilogramPerSecond) String() string { return format(q) }
func (q Watt) String() string              { return format(q) }
func (q Hertz) String() string             { return format(q) }
func (q MeterPerSecond) String() string    { return format(q) }
func (q Newton) String() string            { return format(q) }
func (q Meter) String() string             { return format(q) }
func (q Radian) String() string            { return format(q) }
func (q Second) String() string            { return format(q) }
func (q Pascal) String() string            { return format(q) }
func (q Celsius) String() string           { return format(q) }
func (q Dimensionless) String() string     { return format(q) }

// Kilograms consumed when burning rate for d.
func (q KilogramPerSecond) Over(d Second) float64 {
	return float64(q) * float64(d)
}

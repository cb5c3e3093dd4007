package units

import (
	"strconv"

	"github.com/lintang-b-s/shiproute/pkg"
)

// Value is one entry of a ship parameter. Quantities a boat model does not
// compute are tagged unmodeled instead of leaking a sentinel into arithmetic.
type Value[T Quantity] struct {
	v       T
	modeled bool
}

func Modeled[T Quantity](v T) Value[T] {
	return Value[T]{v: v, modeled: true}
}

// Unmodeled carries the legacy -99 placeholder, see Legacy.
func Unmodeled[T Quantity]() Value[T] {
	return Value[T]{v: T(pkg.UNMODELED_SENTINEL)}
}

func (x Value[T]) Get() (T, bool) {
	if !x.modeled {
		return 0, false
	}
	return x.v, true
}

func (x Value[T]) IsModeled() bool {
	return x.modeled
}

// Legacy returns the raw value, -99 for unmodeled entries. Only for consumers
// that still expect the sentinel.
func (x Value[T]) Legacy() T {
	return x.v
}

func (x Value[T]) String() string {
	if !x.modeled {
		return "unmodeled"
	}
	return format(x.v)
}

func (x Value[T]) MarshalJSON() ([]byte, error) {
	if !x.modeled {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(x.v), 'g', -1, 64), nil
}

type Series[T Quantity] []Value[T]

func ModeledSeries[T Quantity](vs []T) Series[T] {
	s := make(Series[T], len(vs))
	for i, v := range vs {
		s[i] = Modeled(v)
	}
	return s
}

func UnmodeledSeries[T Quantity](n int) Series[T] {
	s := make(Series[T], n)
	for i := range s {
		s[i] = Unmodeled[T]()
	}
	return s
}

// Values returns the plain values and whether every entry is modeled.
func (s Series[T]) Values() ([]T, bool) {
	out := make([]T, len(s))
	all := true
	for i, x := range s {
		v, ok := x.Get()
		out[i] = v
		all = all && ok
	}
	return out, all
}

func (s Series[T]) Legacy() []T {
	out := make([]T, len(s))
	for i, x := range s {
		out[i] = x.Legacy()
	}
	return out
}

package units

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantityString(t *testing.T) {
	assert.Equal(t, "1.5 kg/s", KilogramPerSecond(1.5).String())
	assert.Equal(t, "20 °C", Celsius(20).String())
	assert.Equal(t, "0.035", Dimensionless(0.035).String())
	assert.Equal(t, 30.0, KilogramPerSecond(1.5).Over(Second(20)))
}

func TestValue(t *testing.T) {
	m := Modeled(Meter(2.5))
	v, ok := m.Get()
	assert.True(t, ok)
	assert.Equal(t, Meter(2.5), v)
	assert.Equal(t, "2.5 m", m.String())

	u := Unmodeled[Watt]()
	v2, ok := u.Get()
	assert.False(t, ok)
	assert.Equal(t, Watt(0), v2)
	assert.Equal(t, Watt(-99), u.Legacy())
	assert.Equal(t, "unmodeled", u.String())
}

func TestSeriesJSON(t *testing.T) {
	s := Series[Newton]{Modeled(Newton(12.5)), Unmodeled[Newton]()}

	raw, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `[12.5, null]`, string(raw))

	vals, all := s.Values()
	assert.False(t, all)
	assert.Equal(t, []Newton{12.5, 0}, vals)
	assert.Equal(t, []Newton{12.5, -99}, s.Legacy())

	full, all := ModeledSeries([]Hertz{1, 2}).Values()
	assert.True(t, all)
	assert.Equal(t, []Hertz{1, 2}, full)
	assert.Len(t, UnmodeledSeries[Pascal](4), 4)
}

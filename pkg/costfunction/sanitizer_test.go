package costfunction

import (
	"math"
	"testing"

	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func surfaceOf(t *testing.T, rows, cols int, values ...float64) *grid.CostSurface {
	t.Helper()
	s, err := grid.NewCostSurface(rows, cols, values)
	require.NoError(t, err)
	return s
}

func countMissing(values []float64) int {
	n := 0
	for _, v := range values {
		if !util.IsFinite(v) {
			n++
		}
	}
	return n
}

func TestSanitize(t *testing.T) {
	nan := math.NaN()

	testCases := []struct {
		name string
		in   []float64
		want []float64
	}{
		{
			name: "missing cells get max times penalty factor",
			in:   []float64{1, nan, 2.5, nan},
			want: []float64{1, 2.5e100, 2.5, 2.5e100},
		},
		{
			name: "no finite entry substitutes zero",
			in:   []float64{nan, nan, nan, nan},
			want: []float64{0, 0, 0, 0},
		},
		{
			name: "zero max gives zero penalty",
			in:   []float64{0, nan, 0, 0},
			want: []float64{0, 0, 0, 0},
		},
		{
			name: "infinite cells count as missing",
			in:   []float64{3, math.Inf(1), math.Inf(-1), 1},
			want: []float64{3, 3e100, 3e100, 1},
		},
		{
			name: "finite surface passes through",
			in:   []float64{4, 3, 2, 1},
			want: []float64{4, 3, 2, 1},
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			in := surfaceOf(t, 2, 2, tt.in...)
			got, err := Sanitize(in)
			require.NoError(t, err)

			assert.Equal(t, 0, countMissing(got.Values))
			require.Len(t, got.Values, len(tt.want))
			for i := range tt.want {
				assert.InEpsilon(t, tt.want[i]+1, got.Values[i]+1, 1e-12)
			}
			// input untouched
			assert.Equal(t, countMissing(tt.in), countMissing(in.Values))
		})
	}
}

func TestSanitizeClampsOverflow(t *testing.T) {
	in := surfaceOf(t, 1, 3, 1e250, math.NaN(), 5)

	got, err := Sanitize(in)
	require.NotNil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrNumericOverflow)
	assert.True(t, util.IsWarning(err))
	assert.Equal(t, math.MaxFloat64, got.Values[1])
	assert.Equal(t, 0, countMissing(got.Values))

	neg := surfaceOf(t, 1, 2, -1e250, math.NaN())
	got, err = Sanitize(neg)
	assert.ErrorIs(t, err, util.ErrNumericOverflow)
	assert.Equal(t, -math.MaxFloat64, got.Values[1])
}

func TestSanitizeNil(t *testing.T) {
	_, err := Sanitize(nil)
	assert.ErrorIs(t, err, util.ErrBadParamInput)
}

func TestSanitizedSurface(t *testing.T) {
	in := surfaceOf(t, 2, 2, 1, math.NaN(), 2, 3)

	ss, err := NewSanitizedSurface(in)
	require.NoError(t, err)

	var cf CostFunction = ss
	rows, cols := cf.Shape()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 2, cols)
	assert.InEpsilon(t, 3e100, cf.Cost(grid.NewGridIndex(0, 1)), 1e-12)
	assert.Equal(t, 2.0, cf.Cost(grid.NewGridIndex(1, 0)))
	assert.True(t, ss.WasMissing(grid.NewGridIndex(0, 1)))
	assert.False(t, ss.WasMissing(grid.NewGridIndex(1, 1)))
	assert.InEpsilon(t, 3e100, ss.Penalty(), 1e-12)

	copied := ss.Surface()
	copied.Values[0] = 42
	assert.Equal(t, 1.0, ss.Cost(grid.NewGridIndex(0, 0)))
}

package grid

import (
	"slices"

	"github.com/lintang-b-s/shiproute/pkg/util"
)

// CostSurface is a row-major (lat, lon) array of traversal costs. Missing
// cells are NaN until the surface is sanitized.
type CostSurface struct {
	Rows   int       `json:"rows"`
	Cols   int       `json:"cols"`
	Values []float64 `json:"values"`
}

func NewCostSurface(rows, cols int, values []float64) (*CostSurface, error) {
	if rows < 0 || cols < 0 || rows*cols != len(values) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"cost surface %dx%d does not match %d values", rows, cols, len(values))
	}
	return &CostSurface{Rows: rows, Cols: cols, Values: values}, nil
}

func (c *CostSurface) At(cell GridIndex) float64 {
	return c.Values[cell.LatIdx*c.Cols+cell.LonIdx]
}

func (c *CostSurface) InBounds(cell GridIndex) bool {
	return cell.LatIdx >= 0 && cell.LatIdx < c.Rows && cell.LonIdx >= 0 && cell.LonIdx < c.Cols
}

func (c *CostSurface) Clone() *CostSurface {
	return &CostSurface{Rows: c.Rows, Cols: c.Cols, Values: slices.Clone(c.Values)}
}

// CostSurface cuts variable name at time step timeIdx down to bbox. Values are
// taken as they are on the grid; nothing is interpolated.
func (g *WeatherGrid) CostSurface(name string, timeIdx int, bbox BoundingBox) (*CostSurface, error) {
	v, ok := g.Variable(name)
	if !ok {
		return nil, util.WrapErrorf(nil, util.ErrNotFound, "variable %q not in grid", name)
	}
	if err := g.checkVariable(v); err != nil {
		return nil, err
	}
	if timeIdx < 0 || timeIdx >= g.numTimes() {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "time index %d out of range", timeIdx)
	}
	if !bbox.inside(g) {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "bounding box %+v outside grid", bbox)
	}

	nLat, nLon := len(g.Lats), len(g.Lons)
	offset := timeIdx * nLat * nLon
	values := make([]float64, 0, bbox.Rows()*bbox.Cols())
	for lat := bbox.LatMinIdx; lat <= bbox.LatMaxIdx; lat++ {
		row := offset + lat*nLon
		values = append(values, v.Values[row+bbox.LonMinIdx:row+bbox.LonMaxIdx+1]...)
	}
	return NewCostSurface(bbox.Rows(), bbox.Cols(), values)
}

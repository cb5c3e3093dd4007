package grid

import (
	"time"

	"github.com/lintang-b-s/shiproute/pkg/util"
)

// Dataset is the weather dataset as the resolver sees it: two ordered axes and
// named variables. Loading and parsing happen elsewhere.
type Dataset interface {
	Longitudes() []float64
	Latitudes() []float64
	Variable(name string) (*Variable, bool)
}

// Variable holds values row-major over (time, lat, lon). Grids without a
// time axis store a single (lat, lon) slab.
type Variable struct {
	Name   string    `json:"name" validate:"required"`
	Values []float64 `json:"values"`
}

// WeatherGrid is a regular lon/lat grid. Axes are expected sorted and without
// duplicates; nothing here enforces it.
type WeatherGrid struct {
	Lons  []float64            `json:"longitude" validate:"required,min=1,dive,min=-360,max=360"`
	Lats  []float64            `json:"latitude" validate:"required,min=1,dive,min=-90,max=90"`
	Times []time.Time          `json:"time"`
	Vars  map[string]*Variable `json:"variables" validate:"dive,required"`
}

func NewWeatherGrid(lons, lats []float64, times []time.Time) *WeatherGrid {
	return &WeatherGrid{
		Lons:  lons,
		Lats:  lats,
		Times: times,
		Vars:  make(map[string]*Variable),
	}
}

func (g *WeatherGrid) Longitudes() []float64 {
	return g.Lons
}

func (g *WeatherGrid) Latitudes() []float64 {
	return g.Lats
}

func (g *WeatherGrid) Variable(name string) (*Variable, bool) {
	v, ok := g.Vars[name]
	return v, ok
}

// AddVariable registers values under name after checking they fit the grid.
func (g *WeatherGrid) AddVariable(name string, values []float64) error {
	v := &Variable{Name: name, Values: values}
	if err := g.checkVariable(v); err != nil {
		return err
	}
	g.Vars[name] = v
	return nil
}

func (g *WeatherGrid) numTimes() int {
	if len(g.Times) == 0 {
		return 1
	}
	return len(g.Times)
}

func (g *WeatherGrid) checkVariable(v *Variable) error {
	want := g.numTimes() * len(g.Lats) * len(g.Lons)
	if len(v.Values) != want {
		return util.WrapErrorf(nil, util.ErrBadParamInput,
			"variable %q has %d values, grid needs %d", v.Name, len(v.Values), want)
	}
	return nil
}

func (g *WeatherGrid) Validate() error {
	if err := util.ValidateStruct(g); err != nil {
		return util.WrapErrorf(err, util.ErrBadParamInput, "invalid weather grid")
	}
	for _, v := range g.Vars {
		if err := g.checkVariable(v); err != nil {
			return err
		}
	}
	return nil
}

// GridIndex addresses one cell as (latitude index, longitude index).
type GridIndex struct {
	LatIdx int `json:"lat_idx"`
	LonIdx int `json:"lon_idx"`
}

func NewGridIndex(latIdx, lonIdx int) GridIndex {
	return GridIndex{LatIdx: latIdx, LonIdx: lonIdx}
}

// BoundingBox delimits a rectangular sub-region by grid indices, bounds inclusive.
type BoundingBox struct {
	LonMinIdx int `json:"lon_min_idx"`
	LonMaxIdx int `json:"lon_max_idx"`
	LatMinIdx int `json:"lat_min_idx"`
	LatMaxIdx int `json:"lat_max_idx"`
}

func (b BoundingBox) Rows() int {
	return b.LatMaxIdx - b.LatMinIdx + 1
}

func (b BoundingBox) Cols() int {
	return b.LonMaxIdx - b.LonMinIdx + 1
}

// Contains reports whether the global cell idx lies inside the box.
func (b BoundingBox) Contains(idx GridIndex) bool {
	return idx.LatIdx >= b.LatMinIdx && idx.LatIdx <= b.LatMaxIdx &&
		idx.LonIdx >= b.LonMinIdx && idx.LonIdx <= b.LonMaxIdx
}

// ToLocal converts a global cell index to one relative to the box origin.
func (b BoundingBox) ToLocal(idx GridIndex) (GridIndex, bool) {
	if !b.Contains(idx) {
		return GridIndex{}, false
	}
	return NewGridIndex(idx.LatIdx-b.LatMinIdx, idx.LonIdx-b.LonMinIdx), true
}

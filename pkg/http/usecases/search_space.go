package usecases

import (
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/shiproute/pkg/costfunction"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/spatialindex"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"go.uber.org/zap"
)

const (
	// upper bound on lat x lon cells indexed per nearby-cells query
	MaxNearbyCells = 1 << 22
)

// SearchSpace is the grid region a path search runs over: the bounding box,
// the snapped endpoints and the sanitized cost of every cell in the box.
type SearchSpace struct {
	BoundingBox grid.BoundingBox
	Extent      s2.Rect
	Start       grid.GridIndex
	End         grid.GridIndex
	// endpoints relative to the box, valid when the *InBox flag is set
	StartLocal grid.GridIndex
	EndLocal   grid.GridIndex
	StartInBox bool
	EndInBox   bool
	Costs      *costfunction.SanitizedSurface
	// the missing-cell penalty overflowed and was clamped
	Overflow bool
}

// ResolveSearchSpace snaps the box corners and the endpoints of a voyage onto ds
// and extracts the sanitized cost surface of varName at timeIdx inside the box.
func (rs *RouteService) ResolveSearchSpace(ds *grid.WeatherGrid, varName string, timeIdx int,
	corner1, corner2, start, end geo.Waypoint) (*SearchSpace, error) {
	if ds == nil {
		return nil, util.WrapErrorf(util.ErrEmptyGrid, util.ErrBadParamInput, "weather grid is nil")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}

	bbox, err := grid.ResolveBoundingBox(ds, corner1, corner2)
	if err != nil {
		return nil, err
	}
	startIdx, endIdx, err := grid.ResolveEndpoints(ds, start, end)
	if err != nil {
		return nil, err
	}
	extent, err := bbox.Extent(ds)
	if err != nil {
		return nil, err
	}

	surface, err := ds.CostSurface(varName, timeIdx, bbox)
	if err != nil {
		return nil, err
	}
	costs, err := costfunction.NewSanitizedSurface(surface)
	overflow := false
	if err != nil {
		if !util.IsWarning(err) {
			return nil, err
		}
		overflow = true
		rs.log.Warn("cost penalty clamped", zap.String("variable", varName), zap.Error(err))
	}

	startLocal, startIn := bbox.ToLocal(startIdx)
	endLocal, endIn := bbox.ToLocal(endIdx)

	return &SearchSpace{
		BoundingBox: bbox,
		Extent:      extent,
		Start:       startIdx,
		End:         endIdx,
		StartLocal:  startLocal,
		EndLocal:    endLocal,
		StartInBox:  startIn,
		EndInBox:    endIn,
		Costs:       costs,
		Overflow:    overflow,
	}, nil
}

// NearbyCells returns up to limit grid cells whose center lies within radiusKm
// of wp, nearest first. limit <= 0 returns all of them.
func (rs *RouteService) NearbyCells(ds grid.Dataset, wp geo.Waypoint, radiusKm float64, limit int) ([]spatialindex.CellEntry, error) {
	if ds == nil || len(ds.Longitudes()) == 0 || len(ds.Latitudes()) == 0 {
		return nil, util.WrapErrorf(util.ErrEmptyGrid, util.ErrBadParamInput, "weather grid has no cells")
	}
	if err := wp.Validate(); err != nil {
		return nil, util.WrapErrorf(err, util.ErrBadParamInput, "query waypoint")
	}
	if !util.IsFinite(radiusKm) || radiusKm <= 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "radius must be positive, got %v", radiusKm)
	}
	nLat, nLon := len(ds.Latitudes()), len(ds.Longitudes())
	if nLat > MaxNearbyCells/nLon {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"grid has %d x %d cells, at most %d can be indexed", nLat, nLon, MaxNearbyCells)
	}

	rt := spatialindex.NewRtree()
	rt.Build(ds, rs.log)
	return searchCells(rt, wp, radiusKm, limit), nil
}

func searchCells(idx SpatialIndex, wp geo.Waypoint, radiusKm float64, limit int) []spatialindex.CellEntry {
	return idx.SearchWithinRadius(wp.GetLat(), wp.GetLon(), radiusKm, limit)
}


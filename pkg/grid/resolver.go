package grid

import (
	"math"

	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"golang.org/x/exp/constraints"
)

// FindNearestIndex returns the index of the axis value closest to target.
// Ties resolve to the lowest index.
func FindNearestIndex[T constraints.Float](axis []T, target T) (int, error) {
	if math.IsNaN(float64(target)) || math.IsInf(float64(target), 0) {
		return 0, util.WrapErrorf(util.ErrInvalidCoordinate, util.ErrBadParamInput, "lookup target %v is not finite", target)
	}
	if len(axis) == 0 {
		return 0, util.WrapErrorf(util.ErrEmptyGrid, util.ErrBadParamInput, "axis has no elements")
	}

	best := 0
	bestDiff := math.Inf(1)
	for i := 0; i < len(axis); i++ {
		diff := math.Abs(float64(axis[i] - target))
		if diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best, nil
}

func snap(ds Dataset, wp geo.Waypoint) (GridIndex, error) {
	lonIdx, err := FindNearestIndex(ds.Longitudes(), wp.Lon)
	if err != nil {
		return GridIndex{}, util.WrapErrorf(err, util.ErrBadParamInput, "longitude %v", wp.Lon)
	}
	latIdx, err := FindNearestIndex(ds.Latitudes(), wp.Lat)
	if err != nil {
		return GridIndex{}, util.WrapErrorf(err, util.ErrBadParamInput, "latitude %v", wp.Lat)
	}
	return NewGridIndex(latIdx, lonIdx), nil
}

// ResolveBoundingBox snaps both corners to the grid and orders the indices
// per axis, so swapping the corners gives the same box.
func ResolveBoundingBox(ds Dataset, corner1, corner2 geo.Waypoint) (BoundingBox, error) {
	a, err := snap(ds, corner1)
	if err != nil {
		return BoundingBox{}, err
	}
	b, err := snap(ds, corner2)
	if err != nil {
		return BoundingBox{}, err
	}

	return BoundingBox{
		LonMinIdx: min(a.LonIdx, b.LonIdx),
		LonMaxIdx: max(a.LonIdx, b.LonIdx),
		LatMinIdx: min(a.LatIdx, b.LatIdx),
		LatMaxIdx: max(a.LatIdx, b.LatIdx),
	}, nil
}

// ResolveEndpoints snaps start and end to their nearest cells. It does not check
// that they differ or that they fall inside any bounding box.
func ResolveEndpoints(ds Dataset, start, end geo.Waypoint) (GridIndex, GridIndex, error) {
	s, err := snap(ds, start)
	if err != nil {
		return GridIndex{}, GridIndex{}, err
	}
	e, err := snap(ds, end)
	if err != nil {
		return GridIndex{}, GridIndex{}, err
	}
	return s, e, nil
}

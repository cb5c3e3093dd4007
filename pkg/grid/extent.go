package grid

import (
	"github.com/golang/geo/r1"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

func (b BoundingBox) inside(ds Dataset) bool {
	return b.LonMinIdx >= 0 && b.LonMaxIdx < len(ds.Longitudes()) &&
		b.LatMinIdx >= 0 && b.LatMaxIdx < len(ds.Latitudes()) &&
		b.LonMinIdx <= b.LonMaxIdx && b.LatMinIdx <= b.LatMaxIdx
}

// Extent is the geographic rectangle spanned by the box's grid points. The
// longitude interval runs eastward from the min to the max index, so boxes on
// 0..360 grids that straddle the antimeridian stay correct.
func (b BoundingBox) Extent(ds Dataset) (s2.Rect, error) {
	if !b.inside(ds) {
		return s2.EmptyRect(), util.WrapErrorf(nil, util.ErrBadParamInput, "bounding box %+v outside grid", b)
	}
	lons, lats := ds.Longitudes(), ds.Latitudes()

	lonLo := geo.NormalizeLongitude(lons[b.LonMinIdx])
	lonHi := geo.NormalizeLongitude(lons[b.LonMaxIdx])
	latLo, latHi := lats[b.LatMinIdx], lats[b.LatMaxIdx]
	if latLo > latHi {
		latLo, latHi = latHi, latLo
	}

	lng := s1.IntervalFromEndpoints(util.DegreeToRadians(lonLo), util.DegreeToRadians(lonHi))
	return s2.Rect{
		Lat: r1.Interval{Lo: util.DegreeToRadians(latLo), Hi: util.DegreeToRadians(latHi)},
		Lng: lng,
	}, nil
}

// ContainsWaypoint reports whether wp lies within the box's geographic extent.
func (b BoundingBox) ContainsWaypoint(ds Dataset, wp geo.Waypoint) (bool, error) {
	if err := wp.Validate(); err != nil {
		return false, err
	}
	rect, err := b.Extent(ds)
	if err != nil {
		return false, err
	}
	return rect.ContainsLatLng(wp.LatLng()), nil
}

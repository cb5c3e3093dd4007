package spatialindex

import (
	"math"

	"github.com/lintang-b-s/shiproute/pkg/datastructure"
	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/tidwall/rtree"
	"go.uber.org/zap"
)

// widens search boxes so float rounding never drops a cell on the cap edge
const boxEpsilon = 1e-9

type Rtree struct {
	tr *rtree.RTreeG[CellEntry]
}

// CellEntry is one weather-grid cell in the tree: its index and its center.
type CellEntry struct {
	index grid.GridIndex
	lat   float64
	lon   float64
}

func (ce CellEntry) GetIndex() grid.GridIndex {
	return ce.index
}

func (ce CellEntry) GetLat() float64 {
	return ce.lat
}

func (ce CellEntry) GetLon() float64 {
	return ce.lon
}

func newCellEntry(index grid.GridIndex, lat, lon float64) CellEntry {
	return CellEntry{
		index: index,
		lat:   lat,
		lon:   lon,
	}
}

func NewRtree() *Rtree {
	var tr rtree.RTreeG[CellEntry]
	return &Rtree{
		tr: &tr,
	}
}

// Build inserts every grid cell center as a point leaf keyed by (lon, lat),
// with longitudes normalized to [-180, 180).
func (rt *Rtree) Build(ds grid.Dataset, log *zap.Logger) {
	log.Debug("Building R-tree spatial index...")
	lats, lons := ds.Latitudes(), ds.Longitudes()

	for i, lat := range lats {
		for j, lon := range lons {
			lon = geo.NormalizeLongitude(lon)
			pt := [2]float64{lon, lat}
			rt.tr.Insert(pt, pt, newCellEntry(grid.NewGridIndex(i, j), lat, lon))
		}
	}

	log.Debug("R-tree spatial index built.", zap.Int("cells", rt.tr.Len()))
}

func (rt *Rtree) Len() int {
	return rt.tr.Len()
}

// box is a lon/lat search rectangle in degrees that never crosses ±180.
type box struct {
	min, max [2]float64
}

// searchBoxes returns the rectangles covering the spherical cap of radiusKm
// around (qLat, qLon). A cap containing a pole spans every longitude; a cap
// crossing the antimeridian is split in two.
func searchBoxes(qLat, qLon, radiusKm float64) []box {
	r := radiusKm / geo.EarthRadiusKm
	dLat := util.RadiansToDegree(r)
	lowerLat := qLat - dLat - boxEpsilon
	upperLat := qLat + dLat + boxEpsilon

	if lowerLat <= -90 || upperLat >= 90 || r >= math.Pi/2 {
		return []box{{
			min: [2]float64{-180, math.Max(lowerLat, -90)},
			max: [2]float64{180, math.Min(upperLat, 90)},
		}}
	}

	// half-width of the cap in longitude, reached at the tangent latitude
	ratio := math.Sin(r) / math.Cos(util.DegreeToRadians(qLat))
	if ratio >= 1 {
		return []box{{min: [2]float64{-180, lowerLat}, max: [2]float64{180, upperLat}}}
	}
	dLon := util.RadiansToDegree(math.Asin(ratio)) + boxEpsilon

	lowerLon, upperLon := qLon-dLon, qLon+dLon
	switch {
	case lowerLon < -180:
		return []box{
			{min: [2]float64{lowerLon + 360, lowerLat}, max: [2]float64{180, upperLat}},
			{min: [2]float64{-180, lowerLat}, max: [2]float64{upperLon, upperLat}},
		}
	case upperLon > 180:
		return []box{
			{min: [2]float64{lowerLon, lowerLat}, max: [2]float64{180, upperLat}},
			{min: [2]float64{-180, lowerLat}, max: [2]float64{upperLon - 360, upperLat}},
		}
	default:
		return []box{{min: [2]float64{lowerLon, lowerLat}, max: [2]float64{upperLon, upperLat}}}
	}
}

// SearchWithinRadius returns the grid cells whose center lies within radius (in km)
// of (qLat, qLon), nearest first, at most limit of them.
func (rt *Rtree) SearchWithinRadius(qLat, qLon, radius float64, limit int) []CellEntry {
	qLon = geo.NormalizeLongitude(qLon)

	pq := datastructure.NewFourAryHeap[CellEntry]()
	for _, b := range searchBoxes(qLat, qLon, radius) {
		rt.tr.Search(b.min, b.max, func(_, _ [2]float64, data CellEntry) bool {
			if dist := geo.CalculateHaversineDistance(qLat, qLon, data.lat, data.lon); dist <= radius {
				pq.Insert(datastructure.NewPriorityQueueNode(dist, data))
			}
			return true
		})
	}

	n := pq.Size()
	if limit > 0 && n > limit {
		n = limit
	}
	results := make([]CellEntry, 0, n)
	for len(results) < n {
		node, err := pq.ExtractMin()
		if err != nil {
			break
		}
		results = append(results, node.GetItem())
	}
	return results
}

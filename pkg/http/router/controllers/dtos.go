package controllers

import (
	"math"
	"time"

	"github.com/lintang-b-s/shiproute/pkg/geo"
	"github.com/lintang-b-s/shiproute/pkg/grid"
	"github.com/lintang-b-s/shiproute/pkg/http/usecases"
	"github.com/lintang-b-s/shiproute/pkg/metrics"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/spatialindex"
	"github.com/lintang-b-s/shiproute/pkg/util"
)

type waypointDTO struct {
	Lon float64 `json:"lon" validate:"min=-360,max=360"`
	Lat float64 `json:"lat" validate:"min=-90,max=90"`
}

func (w waypointDTO) toWaypoint() geo.Waypoint {
	return geo.NewWaypoint(w.Lon, w.Lat)
}

func toWaypoints(dtos []waypointDTO) []geo.Waypoint {
	route := make([]geo.Waypoint, len(dtos))
	for i, w := range dtos {
		route[i] = w.toWaypoint()
	}
	return route
}

type routeMetricsRequest struct {
	Route []waypointDTO `json:"route" validate:"required,min=1,dive"`
	// m/s for the whole route, ignored when SegmentSpeeds is set
	Speed         float64    `json:"speed" validate:"required_without=SegmentSpeeds,gte=0"`
	SegmentSpeeds []float64  `json:"segment_speeds" validate:"required_without=Speed"`
	Departure     *time.Time `json:"departure"`
}

func (r routeMetricsRequest) speed() metrics.Speed {
	if len(r.SegmentSpeeds) > 0 {
		return metrics.SegmentSpeeds(r.SegmentSpeeds...)
	}
	return metrics.ConstantSpeed(r.Speed)
}

func (r routeMetricsRequest) departure() time.Time {
	if r.Departure == nil {
		return time.Time{}
	}
	return *r.Departure
}

func (r routeMetricsRequest) toCandidate() usecases.RouteCandidate {
	return usecases.RouteCandidate{
		Route:     toWaypoints(r.Route),
		Speed:     r.speed(),
		Departure: r.departure(),
	}
}

func toCandidates(requests []routeMetricsRequest) []usecases.RouteCandidate {
	candidates := make([]usecases.RouteCandidate, len(requests))
	for i, r := range requests {
		candidates[i] = r.toCandidate()
	}
	return candidates
}

type routeScoreResponse struct {
	CumulativeDistance []float64        `json:"cumulative_distance"` // m
	ElapsedTime        []float64        `json:"elapsed_time"`        // s
	Courses            []float64        `json:"courses"`             // rad
	ArrivalTimes       []time.Time      `json:"arrival_times"`
	FuelPerLeg         []float64        `json:"fuel_per_leg"` // kg
	TotalFuel          float64          `json:"total_fuel"`   // kg
	Path               string           `json:"path"`
	ShipParams         *ship.ShipParams `json:"ship_params"`
}

func NewRouteScoreResponse(score *usecases.RouteScore) routeScoreResponse {
	return routeScoreResponse{
		CumulativeDistance: score.Distances,
		ElapsedTime:        score.ElapsedTimes,
		Courses:            score.Courses,
		ArrivalTimes:       score.ArrivalTimes,
		FuelPerLeg:         score.FuelPerLeg,
		TotalFuel:          score.TotalFuel,
		Path:               score.Polyline,
		ShipParams:         score.Params,
	}
}

type scoreRoutesRequest struct {
	Routes []routeMetricsRequest `json:"routes" validate:"required,min=1,dive"`
}

type scoredRouteResponse struct {
	Index int                 `json:"index"`
	Score *routeScoreResponse `json:"score,omitempty"`
	Error string              `json:"error,omitempty"`
}

func NewScoreRoutesResponse(results []usecases.ScoredRoute) []scoredRouteResponse {
	resp := make([]scoredRouteResponse, len(results))
	for i, r := range results {
		resp[i] = scoredRouteResponse{Index: r.Index}
		if r.Err != nil {
			resp[i].Error = r.Err.Error()
			continue
		}
		score := NewRouteScoreResponse(r.Score)
		resp[i].Score = &score
	}
	return resp
}

type shipParametersRequest struct {
	Courses      []float64   `json:"courses" validate:"required,min=1"`
	Lats         []float64   `json:"lats" validate:"required,min=1,dive,min=-90,max=90"`
	Lons         []float64   `json:"lons" validate:"required,min=1,dive,min=-360,max=360"`
	Times        []time.Time `json:"times"`
	Speeds       []float64   `json:"speeds" validate:"dive,gte=0"`
	UniqueCoords bool        `json:"unique_coords"`
}

func (r shipParametersRequest) toShipParamsRequest() ship.ShipParamsRequest {
	return ship.ShipParamsRequest{
		Courses:      r.Courses,
		Lats:         r.Lats,
		Lons:         r.Lons,
		Times:        r.Times,
		Speeds:       r.Speeds,
		UniqueCoords: r.UniqueCoords,
	}
}

type fuelRateRequest struct {
	WaveHeight float64 `validate:"gte=0"`
	WindSpeed  float64 `validate:"gte=0"`
}

type fuelRateResponse struct {
	FuelRate float64 `json:"fuel_rate"` // kg/s
	Unit     string  `json:"unit"`
}

// variableDTO carries missing cells as JSON null.
type variableDTO struct {
	Name   string     `json:"name" validate:"required"`
	Values []*float64 `json:"values" validate:"required,min=1"`
}

type weatherGridDTO struct {
	Lons      []float64     `json:"longitude" validate:"required,min=1"`
	Lats      []float64     `json:"latitude" validate:"required,min=1"`
	Times     []time.Time   `json:"time"`
	Variables []variableDTO `json:"variables" validate:"dive"`
}

func (d weatherGridDTO) toWeatherGrid() (*grid.WeatherGrid, error) {
	g := grid.NewWeatherGrid(d.Lons, d.Lats, d.Times)
	for _, v := range d.Variables {
		values := make([]float64, len(v.Values))
		for i, p := range v.Values {
			if p == nil {
				values[i] = math.NaN()
				continue
			}
			values[i] = *p
		}
		if err := g.AddVariable(v.Name, values); err != nil {
			return nil, err
		}
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

type searchSpaceRequest struct {
	Grid      weatherGridDTO `json:"grid"`
	Variable  string         `json:"variable" validate:"required"`
	TimeIndex int            `json:"time_index" validate:"gte=0"`
	Corner1   waypointDTO    `json:"corner1"`
	Corner2   waypointDTO    `json:"corner2"`
	Start     waypointDTO    `json:"start"`
	End       waypointDTO    `json:"end"`
}

type extentResponse struct {
	LatLo float64 `json:"lat_lo"`
	LatHi float64 `json:"lat_hi"`
	LonLo float64 `json:"lon_lo"`
	LonHi float64 `json:"lon_hi"`
}

type searchSpaceResponse struct {
	BoundingBox grid.BoundingBox `json:"bounding_box"`
	Extent      extentResponse   `json:"extent"`
	Start       grid.GridIndex   `json:"start"`
	End         grid.GridIndex   `json:"end"`
	StartLocal  *grid.GridIndex  `json:"start_local,omitempty"`
	EndLocal    *grid.GridIndex  `json:"end_local,omitempty"`
	Costs       [][]float64      `json:"costs"`
	Missing     [][]bool         `json:"missing"`
	Penalty     float64          `json:"penalty"`
	Overflow    bool             `json:"overflow"`
}

func NewSearchSpaceResponse(ss *usecases.SearchSpace) searchSpaceResponse {
	resp := searchSpaceResponse{
		BoundingBox: ss.BoundingBox,
		Extent: extentResponse{
			LatLo: util.RadiansToDegree(ss.Extent.Lat.Lo),
			LatHi: util.RadiansToDegree(ss.Extent.Lat.Hi),
			LonLo: util.RadiansToDegree(ss.Extent.Lng.Lo),
			LonHi: util.RadiansToDegree(ss.Extent.Lng.Hi),
		},
		Start:    ss.Start,
		End:      ss.End,
		Penalty:  ss.Costs.Penalty(),
		Overflow: ss.Overflow,
	}
	if ss.StartInBox {
		local := ss.StartLocal
		resp.StartLocal = &local
	}
	if ss.EndInBox {
		local := ss.EndLocal
		resp.EndLocal = &local
	}

	rows, cols := ss.Costs.Shape()
	resp.Costs = make([][]float64, rows)
	resp.Missing = make([][]bool, rows)
	for i := 0; i < rows; i++ {
		resp.Costs[i] = make([]float64, cols)
		resp.Missing[i] = make([]bool, cols)
		for j := 0; j < cols; j++ {
			cell := grid.NewGridIndex(i, j)
			resp.Costs[i][j] = ss.Costs.Cost(cell)
			resp.Missing[i][j] = ss.Costs.WasMissing(cell)
		}
	}
	return resp
}

type nearbyCellsRequest struct {
	Lons     []float64   `json:"longitude" validate:"required,min=1,max=65536"`
	Lats     []float64   `json:"latitude" validate:"required,min=1,max=65536"`
	Waypoint waypointDTO `json:"waypoint"`
	RadiusKm float64     `json:"radius_km" validate:"gt=0"`
	Limit    int         `json:"limit" validate:"gte=0"`
}

func gridFromAxes(lons, lats []float64) *grid.WeatherGrid {
	return grid.NewWeatherGrid(lons, lats, nil)
}

type cellResponse struct {
	Index grid.GridIndex `json:"index"`
	Lat   float64        `json:"lat"`
	Lon   float64        `json:"lon"`
}

func NewCellsResponse(cells []spatialindex.CellEntry) []cellResponse {
	resp := make([]cellResponse, len(cells))
	for i, c := range cells {
		resp[i] = cellResponse{Index: c.GetIndex(), Lat: c.GetLat(), Lon: c.GetLon()}
	}
	return resp
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

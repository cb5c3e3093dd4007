package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	helper "github.com/lintang-b-s/shiproute/pkg/http/router/routerhelper"
	"go.uber.org/zap"
)

type routingAPI struct {
	routeService RouteService
	validator    *requestValidator
	log          *zap.Logger
}

func New(routeService RouteService, log *zap.Logger) *routingAPI {
	return &routingAPI{
		routeService: routeService,
		validator:    newRequestValidator(),
		log:          log,
	}
}

func (api *routingAPI) Routes(group *helper.RouteGroup) {
	group.POST("/routeMetrics", api.routeMetrics)
	group.POST("/scoreRoutes", api.scoreRoutes)
	group.POST("/shipParameters", api.shipParameters)
	group.GET("/fuelRate", api.fuelRate)
	group.POST("/searchSpace", api.searchSpace)
	group.POST("/nearbyCells", api.nearbyCells)
}

// decode reads the JSON body into request and validates it. On failure the
// 400 response is already written.
func (api *routingAPI) decode(w http.ResponseWriter, r *http.Request, request interface{}) bool {
	if err := api.readJSON(w, r, request); err != nil {
		api.BadRequestResponse(w, r, err)
		return false
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return false
	}
	return true
}

func (api *routingAPI) routeMetrics(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request routeMetricsRequest
	if !api.decode(w, r, &request) {
		return
	}

	score, err := api.routeService.ScoreRoute(r.Context(), toWaypoints(request.Route), request.speed(), request.departure())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewRouteScoreResponse(score)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) scoreRoutes(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request scoreRoutesRequest
	if !api.decode(w, r, &request) {
		return
	}

	results := api.routeService.ScoreRoutes(r.Context(), toCandidates(request.Routes)...)
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewScoreRoutesResponse(results)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) shipParameters(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request shipParametersRequest
	if !api.decode(w, r, &request) {
		return
	}

	params, err := api.routeService.ShipParameters(request.toShipParamsRequest())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": params}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) fuelRate(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var (
		request fuelRateRequest
		err     error
	)

	query := r.URL.Query()

	request.WaveHeight, err = strconv.ParseFloat(query.Get("wave_height"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("wave_height is required and must be a valid float"))
		return
	}
	request.WindSpeed, err = strconv.ParseFloat(query.Get("wind_speed"), 64)
	if err != nil {
		api.BadRequestResponse(w, r, errors.New("wind_speed is required and must be a valid float"))
		return
	}
	if err := api.validator.Struct(request); err != nil {
		api.BadRequestResponse(w, r, err)
		return
	}

	rate, err := api.routeService.FuelRate(request.WaveHeight, request.WindSpeed)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	resp := fuelRateResponse{FuelRate: float64(rate), Unit: rate.Unit()}
	if err := api.writeJSON(w, http.StatusOK, envelope{"data": resp}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) searchSpace(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request searchSpaceRequest
	if !api.decode(w, r, &request) {
		return
	}

	weatherGrid, err := request.Grid.toWeatherGrid()
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	ss, err := api.routeService.ResolveSearchSpace(weatherGrid, request.Variable, request.TimeIndex,
		request.Corner1.toWaypoint(), request.Corner2.toWaypoint(), request.Start.toWaypoint(), request.End.toWaypoint())
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewSearchSpaceResponse(ss)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

func (api *routingAPI) nearbyCells(w http.ResponseWriter, r *http.Request, p httprouter.Params) {
	var request nearbyCellsRequest
	if !api.decode(w, r, &request) {
		return
	}

	weatherGrid := gridFromAxes(request.Lons, request.Lats)
	cells, err := api.routeService.NearbyCells(weatherGrid, request.Waypoint.toWaypoint(), request.RadiusKm, request.Limit)
	if err != nil {
		api.getStatusCode(w, r, err)
		return
	}

	if err := api.writeJSON(w, http.StatusOK, envelope{"data": NewCellsResponse(cells)}, nil); err != nil {
		api.ServerErrorResponse(w, r, err)
	}
}

package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	http_server "github.com/lintang-b-s/shiproute/pkg/http/server"
	"github.com/lintang-b-s/shiproute/pkg/http/usecases"
	"github.com/lintang-b-s/shiproute/pkg/ship"
	"github.com/lintang-b-s/shiproute/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, useRateLimit bool, config http_server.Config) http.Handler {
	t.Helper()
	boat := ship.NewConstantFuelBoat(util.BoatConfig{BoatSpeed: 5, ConstantFuelRate: 2}, zap.NewNop())
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC))
	svc := usecases.NewRouteService(zap.NewNop(), boat, clock, 2)
	return NewAPI(zap.NewNop()).Handler(config, useRateLimit, svc)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestRouteMetrics(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodPost, "/api/routeMetrics",
		`{"route":[{"lon":0,"lat":0},{"lon":1,"lat":0},{"lon":2,"lat":0}],"speed":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		CumulativeDistance []float64   `json:"cumulative_distance"`
		ElapsedTime        []float64   `json:"elapsed_time"`
		ArrivalTimes       []time.Time `json:"arrival_times"`
		FuelPerLeg         []float64   `json:"fuel_per_leg"`
		TotalFuel          float64     `json:"total_fuel"`
		Path               string      `json:"path"`
		ShipParams         struct {
			FuelRate   []*float64 `json:"fuel_rate"`
			WaveHeight []*float64 `json:"wave_height"`
		} `json:"ship_params"`
	}
	decodeData(t, rec, &resp)

	assert.Len(t, resp.CumulativeDistance, 3)
	assert.InDelta(t, 2*111319.491, resp.CumulativeDistance[2], 0.02)
	assert.InDelta(t, 2*2*111319.491/5, resp.TotalFuel, 0.01)
	assert.Len(t, resp.FuelPerLeg, 2)
	assert.NotEmpty(t, resp.Path)
	require.Len(t, resp.ShipParams.FuelRate, 3)
	assert.Equal(t, 2.0, *resp.ShipParams.FuelRate[0])
	// the constant boat does not model waves
	assert.Nil(t, resp.ShipParams.WaveHeight[0])
}

func TestRouteMetricsBadRequests(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	testCases := []struct {
		name        string
		body        string
		contentType string
		wantStatus  int
	}{
		{name: "malformed json", body: `{"route":`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", body: `{"route":[{"lon":0,"lat":0}],"speed":5,"foo":1}`, wantStatus: http.StatusBadRequest},
		{name: "empty route", body: `{"route":[],"speed":5}`, wantStatus: http.StatusBadRequest},
		{name: "no speed", body: `{"route":[{"lon":0,"lat":0}]}`, wantStatus: http.StatusBadRequest},
		{name: "latitude out of range", body: `{"route":[{"lon":0,"lat":91}],"speed":5}`, wantStatus: http.StatusBadRequest},
		{name: "zero segment speed", body: `{"route":[{"lon":0,"lat":0},{"lon":1,"lat":0}],"segment_speeds":[0]}`,
			wantStatus: http.StatusBadRequest},
		{name: "wrong content type", body: `{"route":[{"lon":0,"lat":0}],"speed":5}`, contentType: "text/plain",
			wantStatus: http.StatusUnsupportedMediaType},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/routeMetrics", strings.NewReader(tt.body))
			contentType := tt.contentType
			if contentType == "" {
				contentType = "application/json"
			}
			req.Header.Set("Content-Type", contentType)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			assert.Contains(t, rec.Body.String(), `"error"`)
		})
	}
}

func TestScoreRoutes(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodPost, "/api/scoreRoutes", `{"routes":[
		{"route":[{"lon":0,"lat":0},{"lon":1,"lat":0}],"speed":5},
		{"route":[{"lon":0,"lat":0},{"lon":1,"lat":0}],"segment_speeds":[10]}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []struct {
		Index int `json:"index"`
		Score *struct {
			TotalFuel float64 `json:"total_fuel"`
		} `json:"score"`
		Error string `json:"error"`
	}
	decodeData(t, rec, &resp)

	require.Len(t, resp, 2)
	assert.Equal(t, 0, resp[0].Index)
	assert.Equal(t, 1, resp[1].Index)
	require.NotNil(t, resp[0].Score)
	require.NotNil(t, resp[1].Score)
	assert.InDelta(t, 2*resp[1].Score.TotalFuel, resp[0].Score.TotalFuel, 1e-6)
}

func TestShipParameters(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodPost, "/api/shipParameters",
		`{"courses":[0,1.5],"lats":[40,41],"lons":[-70,-69],"speeds":[3]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Speed []*float64 `json:"speed"`
	}
	decodeData(t, rec, &resp)
	require.Len(t, resp.Speed, 2)
	assert.Equal(t, 3.0, *resp.Speed[1])

	rec = do(t, h, http.MethodPost, "/api/shipParameters",
		`{"courses":[0,1.5],"lats":[40],"lons":[-70,-69]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFuelRate(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodGet, "/api/fuelRate?wave_height=1.5&wind_speed=8", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		FuelRate float64 `json:"fuel_rate"`
		Unit     string  `json:"unit"`
	}
	decodeData(t, rec, &resp)
	assert.Equal(t, 2.0, resp.FuelRate)
	assert.Equal(t, "kg/s", resp.Unit)

	rec = do(t, h, http.MethodGet, "/api/fuelRate?wave_height=abc&wind_speed=8", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/fuelRate?wave_height=-1&wind_speed=8", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

const searchSpaceBody = `{
	"grid": {
		"longitude": [0, 1, 2, 3],
		"latitude": [10, 11, 12],
		"variables": [{"name": "cost", "values": [1, 2, 3, 4, 5, 6, null, 8, 9, 10, 11, 12]}]
	},
	"variable": "%s",
	"time_index": 0,
	"corner1": {"lon": 0.9, "lat": 10.2},
	"corner2": {"lon": 2.2, "lat": 11.9},
	"start": {"lon": 1, "lat": 10},
	"end": {"lon": 3, "lat": 12}
}`

func TestSearchSpace(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodPost, "/api/searchSpace", strings.Replace(searchSpaceBody, "%s", "cost", 1))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		BoundingBox struct {
			LonMinIdx int `json:"lon_min_idx"`
			LonMaxIdx int `json:"lon_max_idx"`
		} `json:"bounding_box"`
		StartLocal *struct{} `json:"start_local"`
		EndLocal   *struct{} `json:"end_local"`
		Costs      [][]float64 `json:"costs"`
		Missing    [][]bool    `json:"missing"`
		Overflow   bool        `json:"overflow"`
	}
	decodeData(t, rec, &resp)

	assert.Equal(t, 1, resp.BoundingBox.LonMinIdx)
	assert.Equal(t, 2, resp.BoundingBox.LonMaxIdx)
	assert.NotNil(t, resp.StartLocal)
	assert.Nil(t, resp.EndLocal)
	require.Len(t, resp.Costs, 3)
	assert.Equal(t, []float64{2, 3}, resp.Costs[0])
	assert.True(t, resp.Missing[1][1])
	assert.InEpsilon(t, 11e100, resp.Costs[1][1], 1e-12)
	assert.False(t, resp.Overflow)

	rec = do(t, h, http.MethodPost, "/api/searchSpace", strings.Replace(searchSpaceBody, "%s", "wind", 1))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNearbyCells(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodPost, "/api/nearbyCells", `{
		"longitude": [-72, -71.5, -71, -70.5, -70],
		"latitude": [40, 40.5, 41, 41.5, 42],
		"waypoint": {"lon": -71, "lat": 41},
		"radius_km": 60
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp []struct {
		Index struct {
			LatIdx int `json:"lat_idx"`
			LonIdx int `json:"lon_idx"`
		} `json:"index"`
	}
	decodeData(t, rec, &resp)
	require.Len(t, resp, 5)
	assert.Equal(t, 2, resp[0].Index.LatIdx)
	assert.Equal(t, 2, resp[0].Index.LonIdx)
}

func TestHealthzAndMetrics(t *testing.T) {
	h := newTestHandler(t, false, http_server.Config{})

	rec := do(t, h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	do(t, h, http.MethodGet, "/api/fuelRate?wave_height=1&wind_speed=1", "")
	rec = do(t, h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `shiproute_http_requests_total{method="GET",route="/api/fuelRate",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	h := newTestHandler(t, true, http_server.Config{RPS: 0.001, Burst: 1})

	rec := do(t, h, http.MethodGet, "/api/fuelRate?wave_height=1&wind_speed=1", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = do(t, h, http.MethodGet, "/api/fuelRate?wave_height=1&wind_speed=1", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bloomviewer/internal/fixtures"
	"bloomviewer/internal/metrics"
	"bloomviewer/internal/services"
	"bloomviewer/internal/store"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	seed, err := fixtures.Default()
	require.NoError(t, err)

	logr := zap.NewNop()
	locs := store.NewMemoryStore(seed.Locations)
	clock := clockwork.NewFakeClockAt(time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))

	overlaySvc, err := services.NewOverlayService(seed.Overlays, locs)
	require.NoError(t, err)

	lh := NewLocationHandler(
		services.NewLocationService(locs, metrics.NewForTesting(), logr),
		services.NewBloomService(locs, clock),
		logr,
	)
	oh := NewOverlayHandler(overlaySvc, logr)
	sh := NewSpeciesHandler(services.NewSpeciesService(seed.Species), logr)

	r := chi.NewRouter()
	r.Route("/locations", func(r chi.Router) {
		r.Get("/", lh.List)
		r.Post("/", lh.Create)
		r.Put("/", lh.Update)
		r.Delete("/", lh.Delete)
		r.Get("/in-bloom", lh.InBloom)
		r.Get("/{id}", lh.Get)
		r.Put("/{id}", lh.Update)
		r.Delete("/{id}", lh.Delete)
	})
	r.Route("/overlays", func(r chi.Router) {
		r.Get("/", oh.List)
		r.Get("/at", oh.At)
		r.Get("/summary", oh.Summary)
		r.Get("/{id}", oh.Get)
	})
	r.Get("/species", sh.List)
	r.Get("/species/{id}", sh.Get)
	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

const testGarden = `{
	"speciesId": 2,
	"locationName": " Test Garden ",
	"coordinates": [106.7, 10.78],
	"bloomingPeriod": {"start": "2024-03-01", "peak": "2024-03-15", "end": "2024-04-01"}
}`

func TestCreateLocation(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPost, "/locations", testGarden)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, env.Success)

	var loc struct {
		ID             int64     `json:"id"`
		LocationName   string    `json:"locationName"`
		Coordinates    []float64 `json:"coordinates"`
		BloomingPeriod struct {
			Start, Peak, End string
		} `json:"bloomingPeriod"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &loc))
	assert.Equal(t, int64(4), loc.ID)
	assert.Equal(t, "Test Garden", loc.LocationName)
	assert.Equal(t, []float64{106.7, 10.78}, loc.Coordinates)
	assert.Equal(t, "2024-03-15", loc.BloomingPeriod.Peak)
}

func TestCreateLocation_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{
			name:    "malformed json",
			body:    `{"speciesId":`,
			message: msgInvalidBody,
		},
		{
			name:    "missing fields",
			body:    `{"locationName":"Nowhere"}`,
			message: "Missing required fields: speciesId, locationName, coordinates, bloomingPeriod",
		},
		{
			name:    "coordinates shape",
			body:    `{"speciesId":1,"locationName":"A","coordinates":[1],"bloomingPeriod":{"start":"2024-01-01","peak":"2024-01-02","end":"2024-01-03"}}`,
			message: "Coordinates must be an array of [longitude, latitude]",
		},
		{
			name:    "period incomplete",
			body:    `{"speciesId":1,"locationName":"A","coordinates":[1,2],"bloomingPeriod":{"start":"2024-01-01"}}`,
			message: "Blooming period must include start, peak, and end dates",
		},
		{
			name:    "peak before start",
			body:    `{"speciesId":2,"locationName":"A","coordinates":[1,2],"bloomingPeriod":{"start":"2024-03-15","peak":"2024-03-01","end":"2024-04-01"}}`,
			message: "Invalid blooming period: dates must be in chronological order (start <= peak <= end)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestRouter(t)
			code, env := do(t, h, http.MethodPost, "/locations", tt.body)
			assert.Equal(t, http.StatusBadRequest, code)
			assert.False(t, env.Success)
			assert.Equal(t, tt.message, env.Message)

			_, list := do(t, h, http.MethodGet, "/locations", "")
			var locs []json.RawMessage
			require.NoError(t, json.Unmarshal(list.Data, &locs))
			assert.Len(t, locs, 3)
		})
	}
}

func TestListLocations_SpeciesFilter(t *testing.T) {
	h := newTestRouter(t)

	cases := map[string]int{
		"/locations":              3,
		"/locations?speciesId=1":  2,
		"/locations?speciesId=2":  1,
		"/locations?speciesId=7":  0,
		"/locations?speciesId=ab": 0,
	}
	for target, want := range cases {
		code, env := do(t, h, http.MethodGet, target, "")
		require.Equal(t, http.StatusOK, code, target)
		var locs []json.RawMessage
		require.NoError(t, json.Unmarshal(env.Data, &locs))
		assert.Len(t, locs, want, target)
		assert.NotEqual(t, "null", string(env.Data), target)
	}
}

func TestUpdateLocation(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodPut, "/locations/2", `{"locationName":"Tao Dan Park East"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"locationName":"Tao Dan Park East"`)
	assert.Contains(t, string(env.Data), `"speciesId":2`)

	code, env = do(t, h, http.MethodPut, "/locations?id=1", `{"speciesId":3}`)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"speciesId":3`)

	code, env = do(t, h, http.MethodPut, "/locations", `{"speciesId":3}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgIDRequired, env.Message)

	code, env = do(t, h, http.MethodPut, "/locations/abc", `{"speciesId":3}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgInvalidID, env.Message)

	code, env = do(t, h, http.MethodPut, "/locations/99", `{"speciesId":3}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, msgLocationAbsent, env.Message)

	code, env = do(t, h, http.MethodPut, "/locations/1", `{"bloomingPeriod":{"start":"2024-05-01","peak":"2024-04-01","end":"2024-06-01"}}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.False(t, env.Success)
}

func TestDeleteLocation(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodDelete, "/locations/3", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"locationName":"Walker Canyon"`)

	code, _ = do(t, h, http.MethodDelete, "/locations?id=3", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, env = do(t, h, http.MethodDelete, "/locations", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, msgIDRequired, env.Message)

	code, env = do(t, h, http.MethodPost, "/locations", testGarden)
	require.Equal(t, http.StatusCreated, code)
	assert.Contains(t, string(env.Data), `"id":4`)
}

func TestGetLocation(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/locations/1", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"id":1`)

	code, env = do(t, h, http.MethodGet, "/locations/44", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "null", string(env.Data))
}

func TestInBloom(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/locations/in-bloom", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"status":"peak"`)
	assert.Contains(t, string(env.Data), `"status":"blooming"`)

	code, env = do(t, h, http.MethodGet, "/locations/in-bloom?date=2023-01-01", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "[]", string(env.Data))

	code, _ = do(t, h, http.MethodGet, "/locations/in-bloom?date=March", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestOverlays(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/overlays?ids=1,3", "")
	require.Equal(t, http.StatusOK, code)
	var stats []struct {
		ID            int `json:"id"`
		LocationCount int `json:"locationCount"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, 1, stats[0].ID)
	assert.Equal(t, 1, stats[0].LocationCount)

	code, _ = do(t, h, http.MethodGet, "/overlays?ids=one", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, h, http.MethodGet, "/overlays/at?lon=-118.44&lat=34.764", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"name":"Antelope Valley Poppy Reserve"`)

	code, _ = do(t, h, http.MethodGet, "/overlays/at?lon=west", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = do(t, h, http.MethodGet, "/overlays/summary?ids=1&ids=2", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), `"selectedCount":2`)
	assert.Contains(t, string(env.Data), `"locationCount":2`)

	code, _ = do(t, h, http.MethodGet, "/overlays/9", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestSpecies(t *testing.T) {
	h := newTestRouter(t)

	code, env := do(t, h, http.MethodGet, "/species", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(env.Data), "California Poppy")

	code, _ = do(t, h, http.MethodGet, "/species/1", "")
	assert.Equal(t, http.StatusOK, code)

	code, env = do(t, h, http.MethodGet, "/species/8", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Species not found", env.Message)
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	m := NewForTesting()

	m.Observe("create", OutcomeSuccess)
	m.Observe("create", OutcomeSuccess)
	m.Observe("create", OutcomeInvalid)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.LocationOps.WithLabelValues("create", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.LocationOps.WithLabelValues("create", OutcomeInvalid)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.Observe("list", OutcomeSuccess)
		m.SetStored(3)
	})
}

func TestSetStored(t *testing.T) {
	m := NewForTesting()
	m.SetStored(7)
	assert.Equal(t, 7.0, testutil.ToFloat64(m.LocationsStored))
}

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	m.Observe("list", OutcomeSuccess)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["bloomviewer_location_operations_total"])
	assert.True(t, names["bloomviewer_locations_stored"])
}

func TestMiddleware_LabelsRoutePattern(t *testing.T) {
	m := NewForTesting()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/locations/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/locations/12", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

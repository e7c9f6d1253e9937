package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/athletiq/internal/bmi"
)

func TestObserveGeneration(t *testing.T) {
	m := New()
	m.ObserveGeneration("gemini", "ok", 2*time.Second)
	m.ObserveGeneration("gemini", "ok", time.Second)
	m.ObserveGeneration("gemini", "error", time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generations.WithLabelValues("gemini", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generations.WithLabelValues("gemini", "error")))
}

func TestObserveBMI(t *testing.T) {
	m := New()
	m.ObserveBMI(bmi.Obese)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bmiReadings.WithLabelValues("Obese")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/plans/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Handle("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plans/abc", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("/plans/{id}", "GET", "404")))

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), "athletiq_http_requests_total")
}

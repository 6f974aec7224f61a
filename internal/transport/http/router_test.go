package httptransport

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"

	"roster/pkg/platform/middleware/requestid"
	"roster/pkg/platform/sentinel"
	"roster/pkg/testutil"
)

type pingRoutes struct{}

func (pingRoutes) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestNewRouter(t *testing.T) {
	t.Run("mounts registrars under v1", func(t *testing.T) {
		r := NewRouter(Options{Gatherer: prometheus.NewRegistry()}, pingRoutes{})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/v1/ping"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.NotEmpty(t, rr.Header().Get(requestid.Header))
	})

	t.Run("healthz reports ok without checks", func(t *testing.T) {
		r := NewRouter(Options{Gatherer: prometheus.NewRegistry()})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	t.Run("healthz degrades when a check fails", func(t *testing.T) {
		r := NewRouter(Options{
			Gatherer: prometheus.NewRegistry(),
			Checks: map[string]HealthCheck{
				"redis": func(context.Context) error { return sentinel.ErrUnavailable },
			},
		})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(t, rr, "status", "degraded")
	})

	t.Run("metrics are exposed", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "roster_test_total", Help: "test"}))
		r := NewRouter(Options{Gatherer: reg})
		rr := testutil.DoRequest(r, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatusOK(t, rr)
		assert.Contains(t, rr.Body.String(), "roster_test_total")
	})
}

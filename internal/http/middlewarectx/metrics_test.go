package middlewarectx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/online-rent/internal/http/middlewarectx"
)

func TestMetrics_Middleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := middlewarectx.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/item/{itemId}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/userinfo", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	for _, path := range []string{"/item/1", "/item/2", "/userinfo"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	expected := `
# HELP online_rent_http_requests_total Number of HTTP requests by route, method and status.
# TYPE online_rent_http_requests_total counter
online_rent_http_requests_total{method="GET",route="/item/{itemId}",status="404"} 2
online_rent_http_requests_total{method="GET",route="/userinfo",status="200"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "online_rent_http_requests_total"))
	n, err := testutil.GatherAndCount(reg, "online_rent_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

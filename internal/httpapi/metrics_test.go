package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// The middleware counts the request under its status and leaves the
// in-flight gauge where it started.
func TestMetricsMiddlewareCountsStatusAndRestoresInflight(t *testing.T) {
	inflightBefore := testutil.ToFloat64(httpInflight)
	counter := httpRequestsTotal.WithLabelValues("/teapot", http.MethodPost, "418")
	before := testutil.ToFloat64(counter)

	var inflightDuring float64
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inflightDuring = testutil.ToFloat64(httpInflight)
		w.WriteHeader(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/teapot", nil))

	if rr.Code != http.StatusTeapot {
		t.Fatalf("status=%d", rr.Code)
	}
	if inflightDuring != inflightBefore+1 {
		t.Fatalf("inflight during request = %v, want %v", inflightDuring, inflightBefore+1)
	}
	if got := testutil.ToFloat64(httpInflight); got != inflightBefore {
		t.Fatalf("inflight after request = %v, want %v", got, inflightBefore)
	}
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("requests_total = %v, want %v", got, before+1)
	}
}

func TestMetricsEndpointExposesHTTPFamilies(t *testing.T) {
	MetricsMiddleware(http.NotFoundHandler()).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	countCommandError("switch", http.StatusNotFound)

	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
	body := rr.Body.Bytes()
	for _, name := range []string{
		"audiod_http_requests_total",
		"audiod_http_request_duration_seconds",
		"audiod_http_inflight_requests",
		"audiod_http_command_errors_total",
	} {
		if !bytes.Contains(body, []byte(name)) {
			t.Fatalf("metric family %s missing from /metrics", name)
		}
	}
}

package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestNewMetricsDisabled(t *testing.T) {
	m := NewMetrics(nil, MetricsConfig{})
	if m != nil {
		t.Fatalf("expected nil metrics when disabled")
	}
	// nil receivers are safe
	m.ObserveAPI("GET", "/x", 200, time.Millisecond)
	m.IncResourceOp("wishlist", "create", nil)
	m.InflightInc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", rec.Code)
	}
}

func TestMetricsExposition(t *testing.T) {
	m := NewMetrics(nil, MetricsConfig{Enabled: true})
	m.ObserveAPI("get", "/wishlists/:id", 404, 30*time.Millisecond)
	m.ObserveAPI("GET", "/wishlists/:id", 404, 30*time.Millisecond)
	m.IncResourceOp("wishlist", "delete", errors.New("boom"))
	m.IncAuthEvent("sign_in", nil)
	m.InflightInc()
	m.InflightInc()
	m.InflightDec()

	if got := m.apiRequests.Value("GET", "/wishlists/:id", "404"); got != 2 {
		t.Fatalf("api requests: got %v want 2", got)
	}
	if got := m.apiInflight.Value(); got != 1 {
		t.Fatalf("inflight: got %v want 1", got)
	}

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`wl_api_requests_total{method="GET",route="/wishlists/:id",status="404"} 2`,
		`wl_api_request_duration_seconds_bucket{method="GET",route="/wishlists/:id",le="0.05"} 2`,
		`wl_api_request_duration_seconds_count{method="GET",route="/wishlists/:id"} 2`,
		`wl_resource_operations_total{kind="wishlist",op="delete",outcome="error"} 1`,
		`wl_auth_events_total{event="sign_in",outcome="ok"} 1`,
		"# TYPE wl_api_inflight_requests gauge",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("exposition missing %q\n%s", want, body)
		}
	}
}

func TestLabelString(t *testing.T) {
	if got := labelString(nil, nil); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := labelString([]string{"a", "b"}, []string{`x"y`}); got != `{a="x\"y",b="unknown"}` {
		t.Fatalf("got %q", got)
	}
	if got := withLe("", "1"); got != `{le="1"}` {
		t.Fatalf("got %q", got)
	}
}

func TestParseHeaders(t *testing.T) {
	h := ParseHeaders(" api-key = abc ,bad, x=")
	if len(h) != 1 || h["api-key"] != "abc" {
		t.Fatalf("unexpected headers: %#v", h)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}

func TestInitOTelDisabled(t *testing.T) {
	shutdown := InitOTel(context.Background(), nil, OtelConfig{})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

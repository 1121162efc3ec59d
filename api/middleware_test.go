package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog/log"
)

func TestCORSPolicy(t *testing.T) {
	env := newTestEnv(t, map[string]string{"ACCEPTED_ORIGINS": "https://site.example, http://localhost"})

	tests := []struct {
		name       string
		origin     string
		status     int
		allowedHdr string
	}{
		{"no origin", "", http.StatusOK, ""},
		{"null origin", "null", http.StatusOK, "null"},
		{"listed origin", "https://site.example", http.StatusOK, "https://site.example"},
		{"second listed origin", "http://localhost", http.StatusOK, "http://localhost"},
		{"unknown origin", "https://evil.example", http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := env.do(t, req)
			expectStatus(t, rec, tt.status)

			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.allowedHdr {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.allowedHdr)
			}
			if tt.allowedHdr != "" && rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
				t.Error("credentials not allowed for accepted origin")
			}
			if tt.status == http.StatusForbidden {
				body := decode[map[string]interface{}](t, rec)
				msg, _ := body["message"].(string)
				if !strings.Contains(msg, "not allowed by CORS policy") || body["status"] != "error" {
					t.Errorf("unexpected rejection body %v", body)
				}
			}
		})
	}
}

func TestCORSDefaultOrigins(t *testing.T) {
	env := newTestEnv(t, nil)

	for _, origin := range DefaultAcceptedOrigins {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Origin", origin)
		expectStatus(t, env.do(t, req), http.StatusOK)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := env.do(t, req)

	if rec.Code >= 300 {
		t.Fatalf("preflight status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://localhost" {
		t.Fatalf("preflight headers = %v", rec.Header())
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	expectStatus(t, rec, http.StatusOK)
	body := decode[healthResponse](t, rec)
	if body.Status != "ok" || body.Database != "ok" || body.Uptime == "" {
		t.Fatalf("unexpected health %+v", body)
	}

	if err := env.db.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	rec = env.do(t, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	expectStatus(t, rec, http.StatusServiceUnavailable)
}

func TestMetrics(t *testing.T) {
	env := newTestEnv(t, nil)
	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/videos", "200")
	before := testutil.ToFloat64(counter)
	rejectedBefore := testutil.ToFloat64(CORSRejectionsTotal)

	expectStatus(t, env.do(t, httptest.NewRequest(http.MethodGet, "/api/videos", nil)), http.StatusOK)
	if got := testutil.ToFloat64(counter); got != before+1 {
		t.Fatalf("request counter = %v, want %v", got, before+1)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	req.Header.Set("Origin", "https://evil.example")
	env.do(t, req)
	if got := testutil.ToFloat64(CORSRejectionsTotal); got != rejectedBefore+1 {
		t.Fatalf("rejection counter = %v, want %v", got, rejectedBefore+1)
	}

	rec := env.do(t, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	expectStatus(t, rec, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "citf_http_requests_total") {
		t.Fatal("metrics exposition misses request counter")
	}
}

func TestLogInternalServerErrorsRecoversPanics(t *testing.T) {
	h := LogInternalServerErrors(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	expectStatus(t, rec, http.StatusInternalServerError)
	body := decode[map[string]interface{}](t, rec)
	if body["status"] != "error" || body["error"] == nil {
		t.Fatalf("unexpected panic body %v", body)
	}
}

func TestWriteErrorHidesForeignErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	NewResponder(log.Logger).WriteError(rec, errString("pq: password authentication failed"))

	expectStatus(t, rec, http.StatusInternalServerError)
	if strings.Contains(rec.Body.String(), "password authentication") {
		t.Fatalf("raw error leaked: %s", rec.Body.String())
	}
}

type errString string

func (e errString) Error() string { return string(e) }

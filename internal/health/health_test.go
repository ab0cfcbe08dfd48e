package health_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/medvoice/inscribe/internal/health"
)

func TestHealthzAlwaysOK(t *testing.T) {
	t.Parallel()

	h := health.New(health.Probe{
		Name:  "queue",
		Check: func(context.Context) error { return errors.New("stopped") },
	})
	mux := http.NewServeMux()
	h.Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("healthz status = %d, want 200 even with failing probes", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		probeErr   error
		wantStatus int
		wantBody   string
	}{
		{name: "ready", probeErr: nil, wantStatus: http.StatusOK, wantBody: `"queue":"ok"`},
		{name: "not ready", probeErr: errors.New("worker stopped"), wantStatus: http.StatusServiceUnavailable, wantBody: "fail: worker stopped"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := health.New(health.Probe{
				Name:  "queue",
				Check: func(context.Context) error { return tt.probeErr },
			})
			mux := http.NewServeMux()
			h.Register(mux)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("readyz status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body %q does not contain %q", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

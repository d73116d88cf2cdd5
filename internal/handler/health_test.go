package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHealthChecker is a mock implementation of HealthChecker for testing.
type mockHealthChecker struct {
	err error
}

func (m *mockHealthChecker) Ping(ctx context.Context) error {
	return m.err
}

func decodeHealth(t *testing.T, rec *httptest.ResponseRecorder) HealthResponse {
	t.Helper()
	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return response
}

func TestHealthHandler_Healthz(t *testing.T) {
	h := NewHealthHandler(NamedCheck{Name: "aws", Checker: &mockHealthChecker{err: errors.New("down")}})

	rec := httptest.NewRecorder()
	h.Healthz(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeHealth(t, rec).Status)
}

func TestHealthHandler_Readyz(t *testing.T) {
	tests := []struct {
		name       string
		checks     []NamedCheck
		wantCode   int
		wantStatus string
		wantChecks map[string]string
	}{
		{
			name: "all healthy",
			checks: []NamedCheck{
				{Name: "aws", Checker: &mockHealthChecker{}},
				{Name: "gemini", Checker: CheckerFunc(func(context.Context) error { return nil })},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"aws": "ok", "gemini": "ok"},
		},
		{
			name: "credentials unavailable",
			checks: []NamedCheck{
				{Name: "aws", Checker: &mockHealthChecker{err: errors.New("no credentials")}},
			},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "unhealthy",
			wantChecks: map[string]string{"aws": "error: no credentials"},
		},
		{
			name: "unconfigured dependency does not fail readiness",
			checks: []NamedCheck{
				{Name: "aws", Checker: nil},
			},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantChecks: map[string]string{"aws": "not configured"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(tt.checks...)

			rec := httptest.NewRecorder()
			h.Readyz(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			response := decodeHealth(t, rec)
			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, tt.wantChecks, response.Checks)
		})
	}
}

package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wavechat/internal/app/chat"
	"wavechat/internal/configs"
)

type apiEnvelope struct {
	Success bool           `json:"success"`
	Error   string         `json:"error"`
	Data    map[string]any `json:"data"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	deps := &AppDeps{
		Hub: chat.NewHub(),
		Config: &configs.AppConfig{
			Environment:    "development",
			Port:           8080,
			AllowedOrigins: []string{},
		},
	}
	return Router(deps)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "body: %s", rec.Body.String())
	return rec, envelope
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Equal(t, "ok", envelope.Data["status"])
}

func TestGenerateThenValidateConnectionID(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/api/connection-id/generate", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)

	id, ok := envelope.Data["connectionId"].(string)
	require.True(t, ok)
	assert.Regexp(t, `^\d{3}$`, id)

	rec, envelope = doJSON(t, router, http.MethodPost, "/api/connection-id/validate",
		fmt.Sprintf(`{"connectionId":%q}`, id))
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, envelope.Success)
	assert.Equal(t, true, envelope.Data["valid"])
	assert.Equal(t, true, envelope.Data["available"])
}

func TestValidateConnectionIDBadFormat(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/connection-id/validate",
		`{"connectionId":"12"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
	assert.Equal(t, "Connection ID must be exactly 3 digits (e.g., 001, 042, 999)", envelope.Error)
}

func TestValidateConnectionIDRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/connection-id/validate",
		`{"connectionId":"123","extra":true}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, envelope.Success)
}

func TestValidateConnectionIDRequiresJSONContentType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/connection-id/validate",
		strings.NewReader(`{"connectionId":"123"}`))
	req.Header.Set("Content-Type", "text/plain")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "Unsupported request format.", envelope.Error)
}

func TestRegisterCheckValid(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/api/connection-id/register",
		`{"connectionId":"123","name":"Alice"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, envelope.Success)
	assert.Contains(t, envelope.Data["message"], "WebSocket")
}

func TestRegisterCheckRejectsInvalidName(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name      string
		body      string
		wantError string
	}{
		{
			name:      "name too short",
			body:      `{"connectionId":"123","name":"Al"}`,
			wantError: "Name must be at least 3 characters",
		},
		{
			name:      "name too long",
			body:      `{"connectionId":"123","name":"AliceAliceAlice1"}`,
			wantError: "Name must be 15 characters or less",
		},
		{
			name:      "name bad chars",
			body:      `{"connectionId":"123","name":"Alice!"}`,
			wantError: "Name can only contain letters and numbers",
		},
		{
			name:      "bad connection id",
			body:      `{"connectionId":"12","name":"Alice"}`,
			wantError: "Connection ID must be exactly 3 digits (e.g., 001, 042, 999)",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, envelope := doJSON(t, router, http.MethodPost, "/api/connection-id/register", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, envelope.Success)
			assert.Equal(t, tc.wantError, envelope.Error)
		})
	}
}

// The generate endpoint is rate limited per IP: the burst allows a handful of
// draws, then requests are refused until the bucket refills.
func TestGenerateConnectionIDRateLimited(t *testing.T) {
	router := newTestRouter(t)

	var lastCode int
	for i := 0; i < GenerateBurst+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/connection-id/generate", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

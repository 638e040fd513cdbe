package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ride-tracker-backend/internal/services"

	"github.com/stretchr/testify/require"
)

type testDeps struct {
	activities *mockActivityService
	exporter   *mockExporter
	users      *mockUserService
	contact    *mockContactSender
	hub        *services.FeedHub
}

func newTestRouter(t *testing.T) (http.Handler, *testDeps) {
	t.Helper()
	deps := &testDeps{
		activities: new(mockActivityService),
		exporter:   new(mockExporter),
		users:      new(mockUserService),
		contact:    new(mockContactSender),
		hub:        services.NewFeedHub(),
	}
	t.Cleanup(deps.hub.Close)

	router := NewRouter(RouterConfig{
		APIPrefix:      "/api",
		AllowedOrigins: []string{"*"},
		Activities:     NewActivityHandler(deps.activities, deps.exporter),
		Users:          NewUserHandler(deps.users),
		Contact:        NewContactHandler(deps.contact),
		Feed:           NewFeedHandler(deps.hub, []string{"*"}),
	})
	return router, deps
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp.Detail
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHealthHandler_HealthCheck(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	handler := NewHealthHandler(zap.New(core))

	w := httptest.NewRecorder()
	handler.HealthCheck(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	entries := logs.FilterMessage("health check").All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "health", entries[0].LoggerName)
	}
}

package handler

import (
	"net/http"

	"github.com/niklvrr/teammembers/internal/transport/dto/response"
	"go.uber.org/zap"
)

// HealthHandler отвечает на проверки живости процесса.
// Хранилище не опрашивается: при недоступной БД сервис не стартует
type HealthHandler struct {
	log *zap.Logger
}

func NewHealthHandler(log *zap.Logger) *HealthHandler {
	return &HealthHandler{log: log.Named("health")}
}

func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("health check", zap.String("remote_addr", r.RemoteAddr))
	writeJSON(w, http.StatusOK, response.HealthResponse{Status: response.HealthStatusOK})
}

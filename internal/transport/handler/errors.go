package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/niklvrr/teammembers/internal/transport/dto/request"
	"github.com/niklvrr/teammembers/internal/usecase/service"
)

// ErrorResponse тело ответа с ошибкой: строка либо список ошибок валидации
type ErrorResponse struct {
	Detail any `json:"detail"`
}

const (
	internalErrorDetail = "Internal Server Error"
	timeoutErrorDetail  = "Request Timeout"
)

// HandleError маппит доменные ошибки на HTTP коды и ErrorResponse
func HandleError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusOK, ErrorResponse{}
	}

	var validationErr *request.ValidationError
	if errors.As(err, &validationErr) {
		return http.StatusUnprocessableEntity, ErrorResponse{
			Detail: validationErr.Fields,
		}
	}

	// Дедлайн запроса истёк во время обращения к хранилищу
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout, ErrorResponse{
			Detail: timeoutErrorDetail,
		}
	}

	var domainErr *service.DomainError
	if errors.As(err, &domainErr) {
		// Маппим код ошибки на HTTP статус
		statusCode := mapErrorCodeToHTTPStatus(domainErr.Code)
		return statusCode, ErrorResponse{
			Detail: domainErr.Message,
		}
	}

	// Неизвестная ошибка - возвращаем 500
	return http.StatusInternalServerError, ErrorResponse{
		Detail: internalErrorDetail,
	}
}

// mapErrorCodeToHTTPStatus маппит код доменной ошибки на HTTP статус
func mapErrorCodeToHTTPStatus(code string) int {
	switch code {
	case "ALREADY_EXISTS":
		return http.StatusBadRequest // 400
	case "INVALID_ID":
		return http.StatusBadRequest // 400
	case "INVALID_INPUT":
		return http.StatusBadRequest // 400
	case "NOT_FOUND":
		return http.StatusNotFound // 404
	default:
		return http.StatusInternalServerError // 500
	}
}

// WriteError отправляет ErrorResponse клиенту
func WriteError(w http.ResponseWriter, statusCode int, errResp ErrorResponse) {
	writeJSON(w, statusCode, errResp)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/niklvrr/teammembers/internal/transport/handler"
	transportMiddleware "github.com/niklvrr/teammembers/internal/transport/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterOptions struct {
	AllowedOrigins []string
	// RequestTimeout 0 отключает ограничение времени запроса
	RequestTimeout time.Duration
}

func NewRouter(
	teamMemberHandler *handler.TeamMemberHandler,
	itemHandler *handler.ItemHandler,
	healthHandler *handler.HealthHandler,
	opts RouterOptions,
	log *zap.Logger,
) *chi.Mux {
	router := chi.NewRouter()

	// Recovery должен быть первым для обработки паник во всех middleware
	router.Use(transportMiddleware.Recovery(log))

	// RequestID для трейсинга запросов
	router.Use(middleware.RequestID)

	// Logging для структурированного логирования всех запросов
	router.Use(transportMiddleware.Logging(log))

	// CORS до маршрутизации, чтобы preflight OPTIONS не получал 405
	router.Use(transportMiddleware.CORS(opts.AllowedOrigins))

	if opts.RequestTimeout > 0 {
		router.Use(transportMiddleware.Timeout(opts.RequestTimeout, log))
	}

	// Metrics для сбора метрик производительности
	router.Use(transportMiddleware.Metrics)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		// Путь, отличающийся только завершающим слэшем, перенаправляем на существующий маршрут
		if alt, ok := toggleTrailingSlash(r.URL.Path); ok && router.Match(chi.NewRouteContext(), r.Method, alt) {
			target := *r.URL
			target.Path = alt
			http.Redirect(w, r, target.RequestURI(), http.StatusTemporaryRedirect)
			return
		}
		handler.WriteError(w, http.StatusNotFound, handler.ErrorResponse{Detail: "Not Found"})
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.WriteError(w, http.StatusMethodNotAllowed, handler.ErrorResponse{Detail: "Method Not Allowed"})
	})

	// Эндпоинт для Prometheus метрик
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/items/{item_id}", itemHandler.ReadItem)

	router.Post("/teammember/", teamMemberHandler.CreateTeamMember)
	router.Get("/teammembers/", teamMemberHandler.ListTeamMembers)
	router.Get("/teammember/{teammember_id}", teamMemberHandler.GetTeamMember)
	router.Put("/teammembers/{teammember_id}", teamMemberHandler.UpdateTeamMember)
	router.Delete("/teammembers/{teammember_id}", teamMemberHandler.DeleteTeamMember)

	router.Get("/health", healthHandler.HealthCheck)
	return router
}

func toggleTrailingSlash(path string) (string, bool) {
	switch {
	case path == "" || path == "/":
		return "", false
	case strings.HasSuffix(path, "/"):
		return strings.TrimSuffix(path, "/"), true
	default:
		return path + "/", true
	}
}

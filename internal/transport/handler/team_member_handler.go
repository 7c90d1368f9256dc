package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/teammembers/internal/domain"
	"github.com/niklvrr/teammembers/internal/transport/dto/request"
	"github.com/niklvrr/teammembers/internal/transport/dto/response"
	"go.uber.org/zap"
)

const teamMemberIdParam = "teammember_id"

type TeamMemberService interface {
	Create(ctx context.Context, member *domain.TeamMember) (*domain.TeamMemberInDB, error)
	List(ctx context.Context) ([]*domain.TeamMemberInDB, error)
	Get(ctx context.Context, storageId string) (*domain.TeamMemberInDB, error)
	Update(ctx context.Context, storageId string, member *domain.TeamMember) (*domain.TeamMemberInDB, error)
	Delete(ctx context.Context, storageId string) error
}

type TeamMemberHandler struct {
	svc TeamMemberService
	log *zap.Logger
}

func NewTeamMemberHandler(svc TeamMemberService, log *zap.Logger) *TeamMemberHandler {
	return &TeamMemberHandler{
		svc: svc,
		log: log,
	}
}

func (h *TeamMemberHandler) CreateTeamMember(w http.ResponseWriter, r *http.Request) {
	h.log.Info("createTeamMember request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	// Парсим и валидируем тело запроса
	member, err := request.ParseTeamMember(r.Body)
	if err != nil {
		h.log.Warn("validation failed", zap.Error(err))
		h.fail(w, err)
		return
	}

	// Вызов сервиса
	resp, err := h.svc.Create(r.Context(), member)
	if err != nil {
		h.log.Error("failed to create team member",
			zap.Int64("id", member.Id),
			zap.Error(err),
		)
		h.fail(w, err)
		return
	}

	h.log.Info("team member created successfully",
		zap.String("_id", resp.StorageId),
		zap.Int64("id", resp.Id),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamMemberHandler) ListTeamMembers(w http.ResponseWriter, r *http.Request) {
	h.log.Info("listTeamMembers request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	resp, err := h.svc.List(r.Context())
	if err != nil {
		h.log.Error("failed to list team members", zap.Error(err))
		h.fail(w, err)
		return
	}

	// Пустая коллекция отдаётся как [], а не null
	if resp == nil {
		resp = make([]*domain.TeamMemberInDB, 0)
	}

	h.log.Info("team members listed successfully", zap.Int("count", len(resp)))

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamMemberHandler) GetTeamMember(w http.ResponseWriter, r *http.Request) {
	h.log.Info("getTeamMember request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	storageId := chi.URLParam(r, teamMemberIdParam)

	resp, err := h.svc.Get(r.Context(), storageId)
	if err != nil {
		h.log.Error("failed to get team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		h.fail(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamMemberHandler) UpdateTeamMember(w http.ResponseWriter, r *http.Request) {
	h.log.Info("updateTeamMember request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	storageId := chi.URLParam(r, teamMemberIdParam)

	member, err := request.ParseTeamMember(r.Body)
	if err != nil {
		h.log.Warn("validation failed",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		h.fail(w, err)
		return
	}

	resp, err := h.svc.Update(r.Context(), storageId, member)
	if err != nil {
		h.log.Error("failed to update team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		h.fail(w, err)
		return
	}

	h.log.Info("team member updated successfully",
		zap.String("_id", resp.StorageId),
		zap.Int64("id", resp.Id),
	)

	writeJSON(w, http.StatusOK, resp)
}

func (h *TeamMemberHandler) DeleteTeamMember(w http.ResponseWriter, r *http.Request) {
	h.log.Info("deleteTeamMember request received",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)

	storageId := chi.URLParam(r, teamMemberIdParam)

	if err := h.svc.Delete(r.Context(), storageId); err != nil {
		h.log.Error("failed to delete team member",
			zap.String("_id", storageId),
			zap.Error(err),
		)
		h.fail(w, err)
		return
	}

	h.log.Info("team member deleted successfully", zap.String("_id", storageId))

	writeJSON(w, http.StatusOK, response.MessageResponse{
		Message: response.TeamMemberDeletedMessage,
	})
}

func (h *TeamMemberHandler) fail(w http.ResponseWriter, err error) {
	statusCode, errResp := HandleError(err)
	WriteError(w, statusCode, errResp)
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/niklvrr/teammembers/internal/transport/dto/request"
	"github.com/niklvrr/teammembers/internal/transport/dto/response"
	"go.uber.org/zap"
)

// ItemHandler диагностический эндпоинт, к хранилищу не обращается
type ItemHandler struct {
	log *zap.Logger
}

func NewItemHandler(log *zap.Logger) *ItemHandler {
	return &ItemHandler{
		log: log,
	}
}

func (h *ItemHandler) ReadItem(w http.ResponseWriter, r *http.Request) {
	itemId, err := request.ParseItemId(chi.URLParam(r, "item_id"))
	if err != nil {
		h.log.Warn("validation failed: item_id is not an integer", zap.Error(err))
		statusCode, errResp := HandleError(err)
		WriteError(w, statusCode, errResp)
		return
	}

	writeJSON(w, http.StatusOK, response.ItemResponse{ItemId: itemId})
}

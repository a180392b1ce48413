package delete_block

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	blocksService "github.com/m04kA/SMC-ScheduleService/internal/service/blocks"
)

const (
	msgInvalidBlockID = "некорректный ID блокировки"
	msgInvalidUserID  = "некорректный ID пользователя"
	msgBlockNotFound  = "блокировка не найдена"
	msgForbidden      = "нет прав на управление блокировками салона"
)

type Handler struct {
	service BlocksService
	logger  Logger
}

func NewHandler(service BlocksService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	blockID, err := strconv.ParseInt(vars["blockId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("DELETE /blocks/{id} - Invalid user ID: %v", err)
		handlers.RespondUnauthorized(w, msgInvalidUserID)
		return
	}

	if err := h.service.Delete(r.Context(), blockID, userID); err != nil {
		switch {
		case errors.Is(err, blocksService.ErrBlockNotFound):
			h.logger.Warn("DELETE /blocks/{id} - Block not found: block_id=%d", blockID)
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, blocksService.ErrAccessDenied):
			h.logger.Warn("DELETE /blocks/{id} - Access denied: block_id=%d, user_id=%d", blockID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /blocks/{id} - Failed to delete block: block_id=%d, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /blocks/{id} - Block deleted: block_id=%d, user_id=%d", blockID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

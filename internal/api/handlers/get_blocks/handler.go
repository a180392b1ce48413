package get_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	"github.com/m04kA/SMC-ScheduleService/internal/api/middleware"
	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	blocksService "github.com/m04kA/SMC-ScheduleService/internal/service/blocks"
	"github.com/m04kA/SMC-ScheduleService/internal/service/blocks/models"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgInvalidUserID   = "некорректный ID пользователя"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMasterNotFound  = "мастер не найден"
	msgForbidden       = "нет прав на просмотр блокировок салона"
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

// Handle GET /api/v1/masters/{masterId}/blocks
// Query params: startDate, endDate (optional, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/blocks - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	userID, err := middleware.UserIDFromRequest(r)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/blocks - Invalid user ID: %v", err)
		handlers.RespondUnauthorized(w, msgInvalidUserID)
		return
	}

	req := &models.ListBlocksRequest{
		UserID:   userID,
		MasterID: masterID,
	}

	query := r.URL.Query()

	if raw := query.Get("startDate"); raw != "" {
		startDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /masters/{id}/blocks - Invalid startDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.StartDate = &startDate
	}

	if raw := query.Get("endDate"); raw != "" {
		endDate, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			h.logger.Warn("GET /masters/{id}/blocks - Invalid endDate: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.EndDate = &endDate
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, blocksService.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/blocks - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, blocksService.ErrAccessDenied):
			h.logger.Warn("GET /masters/{id}/blocks - Access denied: master_id=%d, user_id=%d", masterID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, blocksService.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/blocks - Invalid params: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidMasterID)

		default:
			h.logger.Error("GET /masters/{id}/blocks - Failed to list blocks: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/blocks - Blocks listed: master_id=%d, count=%d", masterID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_hours

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	resolveHours "github.com/m04kA/SMC-ScheduleService/internal/usecase/resolve_hours"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMasterNotFound  = "мастер не найден"
	msgSalonNotFound   = "салон не найден"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	useCase ResolveHoursUseCase
	logger  Logger
}

func NewHandler(useCase ResolveHoursUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/hours
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/hours - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /masters/{id}/hours - Missing date: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(masterID, dateStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/hours - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, resolveHours.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/hours - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, resolveHours.ErrSalonNotFound):
			h.logger.Warn("GET /masters/{id}/hours - Salon not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, resolveHours.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/hours - Invalid params: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /masters/{id}/hours - Failed to resolve hours: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/hours - Hours resolved: master_id=%d, open=%t, source=%s",
		masterID, result.Open, result.Source)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

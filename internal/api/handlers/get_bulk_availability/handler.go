package get_bulk_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	getBulkAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_bulk_availability"
)

const (
	msgInvalidMasterID = "некорректный ID мастера"
	msgMissingDates    = "параметры startDate и endDate обязательны"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingDuration = "длительность услуги обязательна"
	msgInvalidDuration = "некорректная длительность услуги"
	msgMasterNotFound  = "мастер не найден"
	msgInvalidParams   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetBulkAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetBulkAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/masters/{masterId}/availability
// Query params: startDate, endDate (required, YYYY-MM-DD), durationMinutes (required)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	query := r.URL.Query()

	startDateStr := query.Get("startDate")
	endDateStr := query.Get("endDate")
	if startDateStr == "" || endDateStr == "" {
		h.logger.Warn("GET /masters/{id}/availability - Missing dates: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingDates)
		return
	}

	durationStr := query.Get("durationMinutes")
	if durationStr == "" {
		h.logger.Warn("GET /masters/{id}/availability - Missing duration: master_id=%d", masterID)
		handlers.RespondBadRequest(w, msgMissingDuration)
		return
	}

	durationMinutes, err := strconv.Atoi(durationStr)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid duration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDuration)
		return
	}

	useCaseReq, err := ToUseCaseRequest(masterID, startDateStr, endDateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /masters/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getBulkAvailability.ErrMasterNotFound):
			h.logger.Warn("GET /masters/{id}/availability - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, getBulkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /masters/{id}/availability - Invalid params: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /masters/{id}/availability - Failed to get availability: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /masters/{id}/availability - Availability summarized: master_id=%d, days=%d",
		masterID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

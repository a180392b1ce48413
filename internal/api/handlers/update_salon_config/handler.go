package update_salon_config

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	configService "github.com/m04kA/SMC-ScheduleService/internal/service/config"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

const (
	msgInvalidSalonID     = "некорректный ID салона"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidData        = "некорректные данные конфигурации"
	msgSalonNotFound      = "салон не найден"
	msgForbidden          = "нет прав на управление салоном"
)

type Handler struct {
	service ConfigService
	logger  Logger
}

func NewHandler(service ConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/salons/{salonId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	salonID, err := strconv.ParseInt(vars["salonId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule-config - Invalid salon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidSalonID)
		return
	}

	var req models.UpdateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("PUT /salons/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.SalonID = salonID

	result, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, configService.ErrSalonNotFound):
			h.logger.Warn("PUT /salons/{id}/schedule-config - Salon not found: salon_id=%d", salonID)
			handlers.RespondNotFound(w, msgSalonNotFound)

		case errors.Is(err, configService.ErrAccessDenied):
			h.logger.Warn("PUT /salons/{id}/schedule-config - Access denied: salon_id=%d, user_id=%d", salonID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, configService.ErrInvalidInput):
			h.logger.Warn("PUT /salons/{id}/schedule-config - Invalid data: salon_id=%d, error=%v", salonID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /salons/{id}/schedule-config - Failed to update config: salon_id=%d, error=%v", salonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /salons/{id}/schedule-config - Config updated: salon_id=%d", salonID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

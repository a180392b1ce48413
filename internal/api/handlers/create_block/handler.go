package create_block

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	createBlock "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_block"
)

const (
	msgInvalidMasterID    = "некорректный ID мастера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidData        = "некорректные данные блокировки"
	msgMasterNotFound     = "мастер не найден"
	msgForbidden          = "нет прав на управление расписанием салона"
	msgTimeConflict       = "время пересекается с существующей записью или блокировкой"
)

type Handler struct {
	useCase CreateBlockUseCase
	logger  Logger
}

func NewHandler(useCase CreateBlockUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/masters/{masterId}/blocks
// Query params: dryRun (optional) - только проверить конфликт
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	masterID, err := strconv.ParseInt(vars["masterId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/blocks - Invalid master ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMasterID)
		return
	}

	var req CreateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("POST /masters/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	dryRun, _ := strconv.ParseBool(r.URL.Query().Get("dryRun"))

	useCaseReq, err := req.ToUseCaseRequest(masterID, dryRun)
	if err != nil {
		h.logger.Warn("POST /masters/{id}/blocks - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		var conflict *createBlock.ConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Info("POST /masters/{id}/blocks - Time conflict: master_id=%d, %v", masterID, conflict)
			handlers.RespondJSON(w, http.StatusConflict,
				FromConflictError(http.StatusConflict, msgTimeConflict, conflict))

		case errors.Is(err, createBlock.ErrMasterNotFound):
			h.logger.Warn("POST /masters/{id}/blocks - Master not found: master_id=%d", masterID)
			handlers.RespondNotFound(w, msgMasterNotFound)

		case errors.Is(err, createBlock.ErrForbidden):
			h.logger.Warn("POST /masters/{id}/blocks - Access denied: master_id=%d, user_id=%d", masterID, req.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, createBlock.ErrInvalidInput):
			h.logger.Warn("POST /masters/{id}/blocks - Invalid data: master_id=%d, error=%v", masterID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /masters/{id}/blocks - Failed to create block: master_id=%d, error=%v", masterID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if dryRun {
		h.logger.Info("POST /masters/{id}/blocks - Dry run passed: master_id=%d", masterID)
		handlers.RespondJSON(w, http.StatusOK, DryRunResponse{Available: true})
		return
	}

	h.logger.Info("POST /masters/{id}/blocks - Block created: id=%d, master_id=%d", result.Block.ID, masterID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

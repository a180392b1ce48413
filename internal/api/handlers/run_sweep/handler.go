package run_sweep

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
	runReminderSweep "github.com/m04kA/SMC-ScheduleService/internal/usecase/run_reminder_sweep"
)

type Handler struct {
	useCase RunSweepUseCase
	logger  Logger
}

func NewHandler(useCase RunSweepUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// SweepResponse HTTP response model итогов прохода
type SweepResponse struct {
	TickID  string `json:"tickId"`
	Salons  int    `json:"salons"`
	Due     int    `json:"due"`
	Sent    int    `json:"sent"`
	Failed  int    `json:"failed"`
	Skipped int    `json:"skipped"`
}

// Handle POST /api/v1/reminders/sweep
// Ручной запуск одного прохода рассылки, не дожидаясь тика воркера
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &runReminderSweep.Request{Now: time.Now()})
	if err != nil {
		h.logger.Error("POST /reminders/sweep - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /reminders/sweep - Manual sweep %s done: due=%d, sent=%d, failed=%d, skipped=%d",
		result.TickID, result.Due, result.Sent, result.Failed, result.Skipped)

	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		TickID:  result.TickID,
		Salons:  result.Salons,
		Due:     result.Due,
		Sent:    result.Sent,
		Failed:  result.Failed,
		Skipped: result.Skipped,
	})
}

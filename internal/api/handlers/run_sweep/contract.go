package run_sweep

import (
	"context"

	runReminderSweep "github.com/m04kA/SMC-ScheduleService/internal/usecase/run_reminder_sweep"
)

type RunSweepUseCase interface {
	Execute(ctx context.Context, req *runReminderSweep.Request) (*runReminderSweep.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

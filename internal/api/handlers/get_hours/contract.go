package get_hours

import (
	"context"

	resolveHours "github.com/m04kA/SMC-ScheduleService/internal/usecase/resolve_hours"
)

type ResolveHoursUseCase interface {
	Execute(ctx context.Context, req *resolveHours.Request) (*resolveHours.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

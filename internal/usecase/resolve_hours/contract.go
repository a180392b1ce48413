package resolve_hours

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSalonSchedule(ctx context.Context, salonID int64) (domain.WeeklySchedule, error)
	GetMasterSchedule(ctx context.Context, masterID int64) (domain.WeeklySchedule, error)
	// GetOverride получает исключение мастера на дату, ErrOverrideNotFound если его нет
	GetOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DateOverride, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	GetMaster(ctx context.Context, masterID int64) (*salonservice.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория ручных блокировок
type BlockRepository interface {
	GetWithFilter(ctx context.Context, filter domain.TimeBlocksFilter) ([]*domain.TimeBlock, error)
}

// ScheduleRepository интерфейс репозитория расписаний
type ScheduleRepository interface {
	GetSalonSchedule(ctx context.Context, salonID int64) (domain.WeeklySchedule, error)
	GetMasterSchedule(ctx context.Context, masterID int64) (domain.WeeklySchedule, error)
	GetOverride(ctx context.Context, masterID int64, date time.Time) (*domain.DateOverride, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания салона
type ConfigRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonScheduleConfig, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetMaster(ctx context.Context, masterID int64) (*salonservice.Master, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

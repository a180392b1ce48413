package create_block

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	GetWithFilter(ctx context.Context, filter domain.MasterBookingsFilter) ([]*domain.Booking, error)
}

// BlockRepository интерфейс репозитория ручных блокировок
type BlockRepository interface {
	Create(ctx context.Context, timeBlock *domain.TimeBlock) (*domain.TimeBlock, error)
	GetWithFilter(ctx context.Context, filter domain.TimeBlocksFilter) ([]*domain.TimeBlock, error)
}

// ConfigRepository интерфейс репозитория конфигурации расписания салона
type ConfigRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonScheduleConfig, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetMaster(ctx context.Context, masterID int64) (*salonservice.Master, error)
	IsManager(ctx context.Context, salonID, userID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

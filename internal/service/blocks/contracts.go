package blocks

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// BlockRepository интерфейс репозитория ручных блокировок
type BlockRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.TimeBlock, error)
	GetWithFilter(ctx context.Context, filter domain.TimeBlocksFilter) ([]*domain.TimeBlock, error)
	Delete(ctx context.Context, id int64) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetMaster(ctx context.Context, masterID int64) (*salonservice.Master, error)
	IsManager(ctx context.Context, salonID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

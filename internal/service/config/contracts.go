package config

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания салона
type ConfigRepository interface {
	GetBySalonID(ctx context.Context, salonID int64) (*domain.SalonScheduleConfig, error)
	Upsert(ctx context.Context, cfg *domain.SalonScheduleConfig) (*domain.SalonScheduleConfig, error)
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
	IsManager(ctx context.Context, salonID, userID int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

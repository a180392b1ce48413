package run_reminder_sweep

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// ConfigRepository интерфейс репозитория конфигурации расписания салона
type ConfigRepository interface {
	// ListWithRemindersEnabled получает конфигурации салонов,
	// у которых включено хотя бы одно правило напоминаний
	ListWithRemindersEnabled(ctx context.Context) ([]*domain.SalonScheduleConfig, error)
}

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	GetForReminders(ctx context.Context, salonID int64, dates []time.Time) ([]*domain.Booking, error)
}

// ReminderRepository интерфейс журнала отправленных напоминаний
type ReminderRepository interface {
	// Claim атомарно занимает пару (бронирование, тип напоминания).
	// claimed=false означает, что пара уже занята другим проходом
	Claim(ctx context.Context, bookingID int64, reminderType domain.ReminderType) (*domain.SentReminder, bool, error)
	MarkStatus(ctx context.Context, id int64, status domain.SentReminderStatus) error
}

// SalonServiceClient интерфейс клиента для SalonService
type SalonServiceClient interface {
	GetSalon(ctx context.Context, salonID int64) (*salonservice.Salon, error)
}

// NotifyServiceClient интерфейс клиента для NotifyService
type NotifyServiceClient interface {
	SendReminder(ctx context.Context, msg *notifyservice.ReminderMessage) error
}

// MetricsCollector интерфейс для метрик рассылки, nil отключает метрики
type MetricsCollector interface {
	ObserveReminderDispatch(reminderType, status string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package run_reminder_sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// UseCase use case одного прохода рассылки напоминаний.
// Гарантия "не более одного раза" держится на атомарном захвате пары
// (бронирование, тип) в журнале, а не на расписании проходов: два
// конкурентных прохода с одинаковым временем отправят каждое
// напоминание ровно один раз
type UseCase struct {
	configRepo   ConfigRepository
	bookingRepo  BookingRepository
	reminderRepo ReminderRepository
	salonClient  SalonServiceClient
	notifyClient NotifyServiceClient
	metrics      MetricsCollector
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	configRepo ConfigRepository,
	bookingRepo BookingRepository,
	reminderRepo ReminderRepository,
	salonClient SalonServiceClient,
	notifyClient NotifyServiceClient,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		configRepo:   configRepo,
		bookingRepo:  bookingRepo,
		reminderRepo: reminderRepo,
		salonClient:  salonClient,
		notifyClient: notifyClient,
		metrics:      metrics,
		logger:       logger,
	}
}

// Execute выполняет один проход рассылки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.Now.IsZero() {
		return nil, fmt.Errorf("%w: now is required", ErrInvalidInput)
	}

	tickID := req.TickID
	if tickID == "" {
		tickID = uuid.New().String()
	}

	uc.logger.Info("ReminderSweep[%s]: started, now=%s", tickID, req.Now.Format(time.RFC3339))

	// 1. Салоны с включёнными напоминаниями
	configs, err := uc.configRepo.ListWithRemindersEnabled(ctx)
	if err != nil {
		uc.logger.Error("ReminderSweep[%s]: failed to list salon configs: %v", tickID, err)
		return nil, fmt.Errorf("%w: failed to list salon configs: %v", ErrInternal, err)
	}

	resp := &Response{TickID: tickID, Salons: len(configs)}

	// 2. Обрабатываем салоны независимо: сбой одного не прерывает проход
	for _, config := range configs {
		uc.sweepSalon(ctx, tickID, req.Now, config, resp)
	}

	uc.logger.Info("ReminderSweep[%s]: finished, salons=%d, due=%d, sent=%d, failed=%d, skipped=%d",
		tickID, resp.Salons, resp.Due, resp.Sent, resp.Failed, resp.Skipped)

	return resp, nil
}

// sweepSalon обрабатывает один салон: по каждому включённому правилу ищет
// бронирования в окне напоминания и рассылает по ним уведомления
func (uc *UseCase) sweepSalon(ctx context.Context, tickID string, now time.Time, config *domain.SalonScheduleConfig, resp *Response) {
	salon, err := uc.salonClient.GetSalon(ctx, config.SalonID)
	if err != nil {
		uc.logger.Error("ReminderSweep[%s]: failed to get salon id=%d, skipping: %v", tickID, config.SalonID, err)
		return
	}

	for _, reminderType := range enabledTypes(config) {
		uc.sweepType(ctx, tickID, now, salon, reminderType, resp)
	}
}

// sweepType обрабатывает одно правило напоминаний салона
func (uc *UseCase) sweepType(ctx context.Context, tickID string, now time.Time, salon *salonservice.Salon, reminderType domain.ReminderType, resp *Response) {
	lead := reminderType.LeadTime()
	tolerance := reminderType.Tolerance()

	// Окно допуска может пересекать полночь, тогда читаем обе даты
	target := now.Add(lead)
	dates := windowDates(target, tolerance)

	bookings, err := uc.bookingRepo.GetForReminders(ctx, salon.ID, dates)
	if err != nil {
		uc.logger.Error("ReminderSweep[%s]: failed to get bookings for salon=%d, type=%s: %v",
			tickID, salon.ID, reminderType, err)
		return
	}

	for _, booking := range bookings {
		if !booking.NeedsReminder() {
			continue
		}

		startAt, err := booking.StartAt(now.Location())
		if err != nil {
			uc.logger.Warn("ReminderSweep[%s]: booking id=%d has malformed start time, skipping: %v",
				tickID, booking.ID, err)
			continue
		}

		// Бронирование в окне, если отклонение от целевого опережения
		// не превышает допуск
		drift := startAt.Sub(now) - lead
		if drift < -tolerance || drift > tolerance {
			continue
		}

		resp.Due++
		uc.dispatch(ctx, tickID, salon, booking, reminderType, resp)
	}
}

// dispatch отправляет одно напоминание: захват пары в журнале, доставка,
// терминальный статус. Ошибки одного бронирования не прерывают проход
func (uc *UseCase) dispatch(ctx context.Context, tickID string, salon *salonservice.Salon, booking *domain.Booking, reminderType domain.ReminderType, resp *Response) {
	claim, claimed, err := uc.reminderRepo.Claim(ctx, booking.ID, reminderType)
	if err != nil {
		uc.logger.Error("ReminderSweep[%s]: failed to claim booking=%d, type=%s: %v",
			tickID, booking.ID, reminderType, err)
		return
	}
	if !claimed {
		resp.Skipped++
		return
	}

	msg := &notifyservice.ReminderMessage{
		BookingID:    booking.ID,
		ReminderType: string(reminderType),
		ClientName:   booking.ClientName,
		ServiceName:  booking.ServiceName,
		Date:         booking.Date.Format(domain.DateFormat),
		Time:         booking.StartTime.String(),
		SalonName:    salon.Name,
		SalonAddress: salon.Address,
	}

	status := domain.ReminderStatusSent
	if err := uc.notifyClient.SendReminder(ctx, msg); err != nil {
		// Неуспешная доставка терминальна: пара остаётся занятой
		// и повторная отправка не выполняется
		uc.logger.Warn("ReminderSweep[%s]: delivery failed for booking=%d, type=%s: %v",
			tickID, booking.ID, reminderType, err)
		status = domain.ReminderStatusFailed
	}

	if err := uc.reminderRepo.MarkStatus(ctx, claim.ID, status); err != nil {
		uc.logger.Error("ReminderSweep[%s]: failed to mark reminder id=%d as %s: %v",
			tickID, claim.ID, status, err)
		return
	}

	if uc.metrics != nil {
		uc.metrics.ObserveReminderDispatch(string(reminderType), string(status))
	}

	if status == domain.ReminderStatusSent {
		resp.Sent++
		uc.logger.Info("ReminderSweep[%s]: sent %s reminder for booking=%d", tickID, reminderType, booking.ID)
	} else {
		resp.Failed++
	}
}

// enabledTypes возвращает включённые правила напоминаний салона
func enabledTypes(config *domain.SalonScheduleConfig) []domain.ReminderType {
	types := make([]domain.ReminderType, 0, 2)
	if config.Reminder24hEnabled {
		types = append(types, domain.Reminder24h)
	}
	if config.Reminder2hEnabled {
		types = append(types, domain.Reminder2h)
	}
	return types
}

// windowDates возвращает календарные даты, которые покрывает окно допуска
func windowDates(target time.Time, tolerance time.Duration) []time.Time {
	first := truncateToDate(target.Add(-tolerance))
	last := truncateToDate(target.Add(tolerance))

	if first.Equal(last) {
		return []time.Time{first}
	}
	return []time.Time{first, last}
}

// truncateToDate обнуляет время, оставляя календарную дату
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

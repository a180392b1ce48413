package get_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/internal/usecase/resolve_hours"
)

// UseCase use case для построения сетки слотов мастера на дату
type UseCase struct {
	bookingRepo  BookingRepository
	blockRepo    BlockRepository
	scheduleRepo ScheduleRepository
	configRepo   ConfigRepository
	salonClient  SalonServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	scheduleRepo ScheduleRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		blockRepo:    blockRepo,
		scheduleRepo: scheduleRepo,
		configRepo:   configRepo,
		salonClient:  salonClient,
		logger:       logger,
	}
}

// Execute выполняет use case построения сетки слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetSlots: master=%d, date=%s, duration=%d",
		req.MasterID, req.Date.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и салон, которому он принадлежит
	master, err := uc.salonClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, salonClient.ErrMasterNotFound) {
			uc.logger.Warn("GetSlots: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetSlots: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 3. Получаем конфигурацию салона, при отсутствии используем дефолтную
	config, err := uc.configRepo.GetBySalonID(ctx, master.SalonID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetSlots: failed to get salon config: %v", err)
			return nil, fmt.Errorf("%w: failed to get salon config: %v", ErrInternal, err)
		}
		config = domain.DefaultScheduleConfig(master.SalonID)
		uc.logger.Info("GetSlots: using default config for salon=%d", master.SalonID)
	}

	// 4. Определяем рабочие часы мастера на дату
	day, err := resolve_hours.ResolveForDate(ctx, uc.scheduleRepo, master.SalonID, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("GetSlots: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}
	if day.MalformedErr != nil {
		uc.logger.Warn("GetSlots: master=%d, date=%s: %v",
			req.MasterID, req.Date.Format(domain.DateFormat), day.MalformedErr)
	}

	// Закрытый день - валидный ответ с пустой сеткой
	if !day.Resolved.Open {
		uc.logger.Info("GetSlots: master=%d is closed on %s (source=%s)",
			req.MasterID, req.Date.Format(domain.DateFormat), day.Resolved.Source)
		return &Response{
			SalonID:  master.SalonID,
			MasterID: req.MasterID,
			Date:     req.Date,
			Source:   day.Resolved.Source,
			Slots:    []Slot{},
		}, nil
	}

	// 5. Собираем блокирующие интервалы: бронирования с буфером, блокировки как есть
	blockers, err := collectBlockers(ctx, uc.bookingRepo, uc.blockRepo,
		master.SalonID, req.MasterID, req.Date, config.BufferMinutes)
	if err != nil {
		uc.logger.Error("GetSlots: failed to collect blockers: %v", err)
		return nil, fmt.Errorf("%w: failed to collect blockers: %v", ErrInternal, err)
	}

	// 6. Генерируем полную сетку слотов
	grid := domain.GenerateSlots(day.Resolved, req.DurationMinutes, config.SlotStepMinutes, blockers)

	slots := make([]Slot, 0, len(grid))
	for _, s := range grid {
		slots = append(slots, Slot{
			StartTime:       s.StartTime,
			DurationMinutes: s.DurationMinutes,
			Available:       s.Available,
		})
	}

	uc.logger.Info("GetSlots: generated %d slots for master=%d, date=%s",
		len(slots), req.MasterID, req.Date.Format(domain.DateFormat))

	return &Response{
		SalonID:  master.SalonID,
		MasterID: req.MasterID,
		Date:     req.Date,
		Source:   day.Resolved.Source,
		Slots:    slots,
	}, nil
}

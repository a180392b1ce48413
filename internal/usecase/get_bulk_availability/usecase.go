package get_bulk_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
)

// UseCase use case для сводки доступности мастера за период.
// Читает бронирования и блокировки всего периода двумя запросами,
// дальше работает только с данными в памяти
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

// Execute выполняет use case сводки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetBulkAvailability: master=%d, range=%s..%s, duration=%d",
		req.MasterID, req.StartDate.Format(domain.DateFormat),
		req.EndDate.Format(domain.DateFormat), req.DurationMinutes)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetBulkAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и салон, которому он принадлежит
	master, err := uc.salonClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, salonClient.ErrMasterNotFound) {
			uc.logger.Warn("GetBulkAvailability: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("GetBulkAvailability: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 3. Получаем конфигурацию салона, при отсутствии используем дефолтную
	config, err := uc.configRepo.GetBySalonID(ctx, master.SalonID)
	if err != nil {
		if !errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Error("GetBulkAvailability: failed to get salon config: %v", err)
			return nil, fmt.Errorf("%w: failed to get salon config: %v", ErrInternal, err)
		}
		config = domain.DefaultScheduleConfig(master.SalonID)
	}

	// 4. Загружаем входы резолвера на весь период
	salonWeekly, err := uc.scheduleRepo.GetSalonSchedule(ctx, master.SalonID)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to get salon schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get salon schedule: %v", ErrInternal, err)
	}

	masterWeekly, err := uc.scheduleRepo.GetMasterSchedule(ctx, req.MasterID)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to get master schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get master schedule: %v", ErrInternal, err)
	}

	overrides, err := uc.scheduleRepo.GetOverridesForRange(ctx, req.MasterID, req.StartDate, req.EndDate)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to get overrides: %v", err)
		return nil, fmt.Errorf("%w: failed to get overrides: %v", ErrInternal, err)
	}

	overrideByDate := make(map[string]*domain.DateOverride, len(overrides))
	for _, o := range overrides {
		overrideByDate[o.Date.Format(domain.DateFormat)] = o
	}

	// 5. Загружаем бронирования и блокировки всего периода двумя запросами
	blockersByDate, err := uc.collectBlockersByDate(ctx, master.SalonID, req, config.BufferMinutes)
	if err != nil {
		uc.logger.Error("GetBulkAvailability: failed to collect blockers: %v", err)
		return nil, fmt.Errorf("%w: failed to collect blockers: %v", ErrInternal, err)
	}

	// 6. Строим сводку по каждой дате периода.
	// Сетка шаговой гранулярности: ячейка равна шагу, услуга занимает
	// need подряд идущих свободных ячеек
	need := (req.DurationMinutes + config.SlotStepMinutes - 1) / config.SlotStepMinutes

	days := make([]DateSummary, 0, domain.MaxBulkRangeDays)
	for date := req.StartDate; !date.After(req.EndDate); date = date.AddDate(0, 0, 1) {
		key := date.Format(domain.DateFormat)

		hours, resolveErr := domain.ResolveHours(date, overrideByDate[key], masterWeekly, salonWeekly)
		if resolveErr != nil {
			uc.logger.Warn("GetBulkAvailability: master=%d, date=%s: %v", req.MasterID, key, resolveErr)
		}

		grid := domain.GenerateSlots(hours, config.SlotStepMinutes, config.SlotStepMinutes, blockersByDate[key])
		summary := domain.SummarizeGrid(grid, need)

		days = append(days, DateSummary{
			Date:            date,
			HasAvailability: summary.HasAvailability,
			FreeSlotCount:   summary.FreeSlotCount,
			TotalSlotCount:  summary.TotalSlotCount,
		})
	}

	uc.logger.Info("GetBulkAvailability: master=%d, %d days summarized", req.MasterID, len(days))

	return &Response{
		SalonID:         master.SalonID,
		MasterID:        req.MasterID,
		DurationMinutes: req.DurationMinutes,
		Days:            days,
	}, nil
}

// collectBlockersByDate группирует блокирующие интервалы периода по датам
func (uc *UseCase) collectBlockersByDate(
	ctx context.Context,
	salonID int64,
	req *Request,
	bufferMinutes int,
) (map[string][]domain.BlockingInterval, error) {
	startDate, endDate := req.StartDate, req.EndDate

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.MasterBookingsFilter{
		SalonID:   salonID,
		MasterID:  &req.MasterID,
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	blocks, err := uc.blockRepo.GetWithFilter(ctx, domain.TimeBlocksFilter{
		MasterID:  req.MasterID,
		StartDate: &startDate,
		EndDate:   &endDate,
	})
	if err != nil {
		return nil, fmt.Errorf("get time blocks: %w", err)
	}

	byDate := make(map[string][]domain.BlockingInterval)

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		key := b.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], domain.FromBooking(b, bufferMinutes))
	}

	for _, b := range blocks {
		key := b.Date.Format(domain.DateFormat)
		byDate[key] = append(byDate[key], domain.FromTimeBlock(b))
	}

	return byDate, nil
}

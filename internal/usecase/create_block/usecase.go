package create_block

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для создания ручной блокировки времени.
// Проверка конфликтов и вставка выполняются в одной сериализуемой
// транзакции, чтобы два конкурентных запроса не заняли одно время
type UseCase struct {
	bookingRepo BookingRepository
	blockRepo   BlockRepository
	configRepo  ConfigRepository
	salonClient SalonServiceClient
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		blockRepo:   blockRepo,
		configRepo:  configRepo,
		salonClient: salonClient,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute выполняет use case создания блокировки
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBlock: user=%d, master=%d, date=%s, time=%s-%s, dryRun=%t",
		req.UserID, req.MasterID, req.Date.Format(domain.DateFormat),
		req.StartTime, req.EndTime, req.DryRun)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем мастера и салон, которому он принадлежит
	master, err := uc.salonClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, salonClient.ErrMasterNotFound) {
			uc.logger.Warn("CreateBlock: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		uc.logger.Error("CreateBlock: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
	}

	// 3. Проверяем права пользователя на управление салоном
	isManager, err := uc.salonClient.IsManager(ctx, master.SalonID, req.UserID)
	if err != nil {
		uc.logger.Error("CreateBlock: failed to check manager rights: %v", err)
		return nil, fmt.Errorf("%w: failed to check manager rights: %v", ErrInternal, err)
	}
	if !isManager {
		uc.logger.Warn("CreateBlock: user id=%d is not a manager of salon id=%d", req.UserID, master.SalonID)
		return nil, ErrForbidden
	}

	candidate := candidateInterval(req)

	var created *domain.TimeBlock

	// 4. Проверка конфликтов и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Конфигурация салона определяет буфер бронирований
		config, err := uc.configRepo.GetBySalonID(txCtx, master.SalonID)
		if err != nil {
			if !errors.Is(err, configRepo.ErrConfigNotFound) {
				return fmt.Errorf("%w: failed to get salon config: %v", ErrInternal, err)
			}
			config = domain.DefaultScheduleConfig(master.SalonID)
		}

		// 4.2. Собираем занятое время мастера на дату.
		// Чтение внутри транзакции блокирует строки дня до коммита
		blockers, err := uc.collectBlockers(txCtx, master.SalonID, req, config.BufferMinutes)
		if err != nil {
			return fmt.Errorf("%w: failed to collect blockers: %v", ErrInternal, err)
		}

		// 4.3. Первое пересечение завершает проверку
		if blocker, found := domain.FirstOverlap(candidate, blockers); found {
			return conflictError(blocker)
		}

		// 4.4. Dry run заканчивается до вставки
		if req.DryRun {
			return nil
		}

		created, err = uc.blockRepo.Create(txCtx, &domain.TimeBlock{
			SalonID:   master.SalonID,
			MasterID:  req.MasterID,
			Date:      req.Date,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Label:     req.Label,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to create time block: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		var conflict *ConflictError
		if errors.As(err, &conflict) {
			uc.logger.Info("CreateBlock: conflict for master=%d, date=%s: %v",
				req.MasterID, req.Date.Format(domain.DateFormat), conflict)
			return nil, err
		}
		uc.logger.Error("CreateBlock: transaction failed: %v", err)
		return nil, err
	}

	if req.DryRun {
		uc.logger.Info("CreateBlock: dry run passed for master=%d, date=%s, time=%s-%s",
			req.MasterID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)
		return &Response{}, nil
	}

	uc.logger.Info("CreateBlock: created block id=%d for master=%d, date=%s",
		created.ID, req.MasterID, req.Date.Format(domain.DateFormat))

	return &Response{Block: &Block{
		ID:        created.ID,
		SalonID:   created.SalonID,
		MasterID:  created.MasterID,
		Date:      created.Date,
		StartTime: created.StartTime,
		EndTime:   created.EndTime,
		Label:     created.Label,
		CreatedAt: created.CreatedAt,
	}}, nil
}

// collectBlockers загружает занятое время мастера на дату: активные
// бронирования с буфером салона и ручные блокировки как есть
func (uc *UseCase) collectBlockers(ctx context.Context, salonID int64, req *Request, bufferMinutes int) ([]domain.BlockingInterval, error) {
	date := req.Date

	bookings, err := uc.bookingRepo.GetWithFilter(ctx, domain.MasterBookingsFilter{
		SalonID:   salonID,
		MasterID:  &req.MasterID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	blocks, err := uc.blockRepo.GetWithFilter(ctx, domain.TimeBlocksFilter{
		MasterID:  req.MasterID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, fmt.Errorf("get time blocks: %w", err)
	}

	blockers := make([]domain.BlockingInterval, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		blockers = append(blockers, domain.FromBooking(b, bufferMinutes))
	}

	for _, b := range blocks {
		blockers = append(blockers, domain.FromTimeBlock(b))
	}

	return blockers, nil
}

// candidateInterval переводит время запроса в интервал минут дня.
// Времена прошли валидацию, ошибки разбора здесь невозможны
func candidateInterval(req *Request) domain.Interval {
	start, _ := req.StartTime.Minutes()
	end, _ := req.EndTime.Minutes()
	return domain.Interval{Start: start, End: end}
}

// conflictError строит ошибку конфликта по найденному блокеру
func conflictError(blocker domain.BlockingInterval) *ConflictError {
	e := &ConflictError{
		Source: blocker.Source,
		RefID:  blocker.RefID,
		Label:  blocker.Label,
	}

	if start, err := types.NewTimeStringFromMinutes(blocker.Interval.Start); err == nil {
		e.Start = start
	}

	// Буфер может увести конец интервала за полночь
	endMinutes := blocker.Interval.End
	if endMinutes > 24*60 {
		endMinutes = 24 * 60
	}
	if end, err := types.NewTimeStringFromMinutes(endMinutes); err == nil {
		e.End = end
	}

	return e
}

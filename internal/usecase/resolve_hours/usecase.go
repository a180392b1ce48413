package resolve_hours

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	scheduleRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/schedule"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// UseCase use case для определения рабочих часов мастера на дату
type UseCase struct {
	scheduleRepo ScheduleRepository
	salonClient  SalonServiceClient
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	scheduleRepo ScheduleRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		scheduleRepo: scheduleRepo,
		salonClient:  salonClient,
		logger:       logger,
	}
}

// Execute выполняет use case определения рабочих часов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolveHours: salon=%d, master=%d, date=%s",
		req.SalonID, req.MasterID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolveHours: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование мастера; салон выводим из его принадлежности
	if req.MasterID > 0 {
		master, err := uc.salonClient.GetMaster(ctx, req.MasterID)
		if err != nil {
			if errors.Is(err, salonClient.ErrMasterNotFound) {
				uc.logger.Warn("ResolveHours: master id=%d not found", req.MasterID)
				return nil, ErrMasterNotFound
			}
			uc.logger.Error("ResolveHours: failed to get master id=%d: %v", req.MasterID, err)
			return nil, fmt.Errorf("%w: failed to get master: %v", ErrInternal, err)
		}
		if req.SalonID == 0 {
			req.SalonID = master.SalonID
		}
		if master.SalonID != req.SalonID {
			uc.logger.Warn("ResolveHours: master id=%d does not belong to salon id=%d", req.MasterID, req.SalonID)
			return nil, ErrMasterNotFound
		}
	}

	// 3. Проверяем существование салона
	if _, err := uc.salonClient.GetSalon(ctx, req.SalonID); err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			uc.logger.Warn("ResolveHours: salon id=%d not found", req.SalonID)
			return nil, ErrSalonNotFound
		}
		uc.logger.Error("ResolveHours: failed to get salon id=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}

	// 4. Собираем входы резолвера: исключение на дату и оба недельных расписания
	hours, err := ResolveForDate(ctx, uc.scheduleRepo, req.SalonID, req.MasterID, req.Date)
	if err != nil {
		uc.logger.Error("ResolveHours: failed to resolve hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve hours: %v", ErrInternal, err)
	}

	// Некорректная запись расписания закрывает день, но не является ошибкой запроса
	if hours.MalformedErr != nil {
		uc.logger.Warn("ResolveHours: master=%d, date=%s: %v",
			req.MasterID, req.Date.Format(domain.DateFormat), hours.MalformedErr)
	}

	uc.logger.Info("ResolveHours: salon=%d, master=%d, date=%s -> open=%t, source=%s",
		req.SalonID, req.MasterID, req.Date.Format(domain.DateFormat), hours.Resolved.Open, hours.Resolved.Source)

	return buildResponse(req, hours.Resolved), nil
}

// ResolvedDay результат разрешения часов вместе с признаком битой записи
type ResolvedDay struct {
	Resolved     domain.ResolvedHours
	MalformedErr error
}

// ResolveForDate загружает три входа резолвера и вычисляет часы на дату.
// Используется также usecase'ами слотов, поэтому ходит только в репозиторий
func ResolveForDate(ctx context.Context, repo ScheduleRepository, salonID, masterID int64, date time.Time) (ResolvedDay, error) {
	salonWeekly, err := repo.GetSalonSchedule(ctx, salonID)
	if err != nil {
		return ResolvedDay{}, fmt.Errorf("get salon schedule: %w", err)
	}

	var masterWeekly domain.WeeklySchedule
	var override *domain.DateOverride

	if masterID > 0 {
		masterWeekly, err = repo.GetMasterSchedule(ctx, masterID)
		if err != nil {
			return ResolvedDay{}, fmt.Errorf("get master schedule: %w", err)
		}

		override, err = repo.GetOverride(ctx, masterID, date)
		if err != nil && !errors.Is(err, scheduleRepo.ErrOverrideNotFound) {
			return ResolvedDay{}, fmt.Errorf("get date override: %w", err)
		}
	}

	resolved, resolveErr := domain.ResolveHours(date, override, masterWeekly, salonWeekly)

	return ResolvedDay{Resolved: resolved, MalformedErr: resolveErr}, nil
}

// buildResponse преобразует разрешённые часы в модель ответа
func buildResponse(req *Request, hours domain.ResolvedHours) *Response {
	resp := &Response{
		SalonID:  req.SalonID,
		MasterID: req.MasterID,
		Date:     req.Date,
		Open:     hours.Open,
		Source:   hours.Source,
	}

	if hours.Open {
		if start, err := types.NewTimeStringFromMinutes(hours.StartMinutes); err == nil {
			resp.Start = start
		}
		if end, err := types.NewTimeStringFromMinutes(hours.EndMinutes); err == nil {
			resp.End = end
		}
	}

	return resp
}

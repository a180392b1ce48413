package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

// Service сервис для работы с конфигурацией расписания салонов
type Service struct {
	configRepo  ConfigRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:  configRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// Get получает конфигурацию расписания салона
// При отсутствии сохранённой конфигурации возвращает дефолтную
func (s *Service) Get(ctx context.Context, salonID, userID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching config for salon=%d, user=%d", salonID, userID)

	if err := s.checkSalon(ctx, salonID); err != nil {
		return nil, err
	}

	cfg, err := s.configRepo.GetBySalonID(ctx, salonID)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Info("GetConfig: salon=%d has no stored config, returning defaults", salonID)
			return models.FromDomainConfig(domain.DefaultScheduleConfig(salonID), true), nil
		}
		s.logger.Error("GetConfig: repository error for salon=%d: %v", salonID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainConfig(cfg, false), nil
}

// Update сохраняет конфигурацию расписания салона
// Доступно только менеджерам салона
func (s *Service) Update(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating config for salon=%d by user=%d", req.SalonID, req.UserID)

	if err := validateUpdateRequest(req); err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	if err := s.checkSalon(ctx, req.SalonID); err != nil {
		return nil, err
	}

	if err := s.checkManagerAccess(ctx, req.SalonID, req.UserID); err != nil {
		s.logger.Warn("UpdateConfig: access denied for user=%d to salon id=%d", req.UserID, req.SalonID)
		return nil, err
	}

	cfg, err := s.configRepo.Upsert(ctx, req.ToDomain())
	if err != nil {
		s.logger.Error("UpdateConfig: repository error for salon=%d: %v", req.SalonID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated config for salon=%d", req.SalonID)
	return models.FromDomainConfig(cfg, false), nil
}

// validateUpdateRequest проверяет корректность входных данных
func validateUpdateRequest(req *models.UpdateConfigRequest) error {
	if req.SalonID <= 0 {
		return fmt.Errorf("%w: salon id must be positive", ErrInvalidInput)
	}

	if !domain.IsAllowedSlotStep(req.SlotStepMinutes) {
		return fmt.Errorf("%w: slot step must be one of %v", ErrInvalidInput, domain.AllowedSlotSteps)
	}

	if req.BufferMinutes < domain.MinBufferMinutes || req.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: buffer must be between %d and %d minutes",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}

	return nil
}

// checkSalon проверяет существование и активность салона
func (s *Service) checkSalon(ctx context.Context, salonID int64) error {
	if _, err := s.salonClient.GetSalon(ctx, salonID); err != nil {
		if errors.Is(err, salonClient.ErrSalonNotFound) {
			s.logger.Warn("Config: salon id=%d not found", salonID)
			return ErrSalonNotFound
		}
		s.logger.Error("Config: failed to get salon id=%d: %v", salonID, err)
		return fmt.Errorf("%w: failed to get salon: %v", ErrInternal, err)
	}
	return nil
}

// checkManagerAccess проверяет, что пользователь управляет салоном
func (s *Service) checkManagerAccess(ctx context.Context, salonID, userID int64) error {
	isManager, err := s.salonClient.IsManager(ctx, salonID, userID)
	if err != nil {
		return fmt.Errorf("%w: failed to check manager rights: %v", ErrInternal, err)
	}
	if !isManager {
		return ErrAccessDenied
	}
	return nil
}

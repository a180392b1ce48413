package blocks

import (
	"context"
	"errors"
	"fmt"

	blockRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/block"
	salonClient "github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/blocks/models"
)

// Service сервис для работы с ручными блокировками времени
type Service struct {
	blockRepo   BlockRepository
	salonClient SalonServiceClient
	logger      Logger
}

// NewService создает новый экземпляр сервиса блокировок
func NewService(
	blockRepo BlockRepository,
	salonClient SalonServiceClient,
	logger Logger,
) *Service {
	return &Service{
		blockRepo:   blockRepo,
		salonClient: salonClient,
		logger:      logger,
	}
}

// List получает блокировки мастера за период
// Доступно только менеджерам салона мастера
func (s *Service) List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: fetching blocks for master=%d, user=%d", req.MasterID, req.UserID)

	if req.MasterID <= 0 {
		return nil, fmt.Errorf("%w: master id must be positive", ErrInvalidInput)
	}

	master, err := s.salonClient.GetMaster(ctx, req.MasterID)
	if err != nil {
		if errors.Is(err, salonClient.ErrMasterNotFound) {
			s.logger.Warn("ListBlocks: master id=%d not found", req.MasterID)
			return nil, ErrMasterNotFound
		}
		s.logger.Error("ListBlocks: failed to get master id=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: List - failed to get master: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, master.SalonID, req.UserID); err != nil {
		s.logger.Warn("ListBlocks: access denied for user=%d to salon id=%d", req.UserID, master.SalonID)
		return nil, err
	}

	blocks, err := s.blockRepo.GetWithFilter(ctx, req.ToDomainFilter())
	if err != nil {
		s.logger.Error("ListBlocks: repository error for master=%d: %v", req.MasterID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlocks: successfully fetched %d blocks for master=%d", len(blocks), req.MasterID)
	return models.FromDomainTimeBlockList(blocks), nil
}

// GetByID получает блокировку по ID
// Доступно только менеджерам салона блокировки
func (s *Service) GetByID(ctx context.Context, id, userID int64) (*models.BlockResponse, error) {
	s.logger.Info("GetBlock: fetching block id=%d for user=%d", id, userID)

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("GetBlock: block id=%d not found", id)
			return nil, ErrBlockNotFound
		}
		s.logger.Error("GetBlock: repository error for block id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, block.SalonID, userID); err != nil {
		s.logger.Warn("GetBlock: access denied for user=%d to block id=%d", userID, id)
		return nil, err
	}

	return models.FromDomainTimeBlock(block), nil
}

// Delete удаляет блокировку
// Доступно только менеджерам салона блокировки
func (s *Service) Delete(ctx context.Context, id, userID int64) error {
	s.logger.Info("DeleteBlock: deleting block id=%d by user=%d", id, userID)

	block, err := s.blockRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%d not found", id)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.checkManagerAccess(ctx, block.SalonID, userID); err != nil {
		s.logger.Warn("DeleteBlock: access denied for user=%d to block id=%d", userID, id)
		return err
	}

	if err := s.blockRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error for block id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlock: successfully deleted block id=%d", id)
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

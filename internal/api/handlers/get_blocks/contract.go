package get_blocks

import (
	"context"

	"github.com/m04kA/SMC-ScheduleService/internal/service/blocks/models"
)

type BlocksService interface {
	List(ctx context.Context, req *models.ListBlocksRequest) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

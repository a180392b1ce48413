package create_block

import (
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}

	if req.MasterID <= 0 {
		return fmt.Errorf("%w: master id must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}

	if err := req.EndTime.Validate(); err != nil {
		return fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}

	start, _ := req.StartTime.Minutes()
	end, _ := req.EndTime.Minutes()

	if end < start {
		return fmt.Errorf("%w: end time is before start time", ErrInvalidInput)
	}

	// Пустой интервал допустим только как проверка: блокировать нечего
	if end == start && !req.DryRun {
		return fmt.Errorf("%w: block interval is empty", ErrInvalidInput)
	}

	if len(req.Label) > domain.MaxBlockLabelLen {
		return fmt.Errorf("%w: label must not exceed %d characters", ErrInvalidInput, domain.MaxBlockLabelLen)
	}

	return nil
}

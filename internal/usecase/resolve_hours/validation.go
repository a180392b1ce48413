package resolve_hours

import "fmt"

// validateRequest проверяет корректность входных данных
func validateRequest(req *Request) error {
	if req.SalonID < 0 || req.MasterID < 0 {
		return fmt.Errorf("%w: ids must not be negative", ErrInvalidInput)
	}

	if req.SalonID == 0 && req.MasterID == 0 {
		return fmt.Errorf("%w: salon id or master id is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}

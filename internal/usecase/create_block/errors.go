package create_block

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

var (
	// ErrMasterNotFound возвращается, когда мастер не найден или неактивен
	ErrMasterNotFound = errors.New("master not found")

	// ErrForbidden возвращается, когда пользователь не управляет салоном мастера
	ErrForbidden = errors.New("user is not a manager of the salon")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrConflict возвращается, когда интервал пересекается с занятым временем
	ErrConflict = errors.New("time conflict")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

// ConflictError описывает первое найденное пересечение: кто занял время и
// каким диапазоном. Для бронирования Label - имя клиента, для ручной
// блокировки - её подпись
type ConflictError struct {
	Source domain.BlockSource
	RefID  int64
	Label  string
	Start  types.TimeString
	End    types.TimeString
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%v: %s id=%d (%s) occupies %s-%s",
		ErrConflict, e.Source, e.RefID, e.Label, e.Start, e.End)
}

// Unwrap позволяет проверять конфликт через errors.Is(err, ErrConflict)
func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

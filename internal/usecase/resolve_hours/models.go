package resolve_hours

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса рабочих часов
type Request struct {
	SalonID  int64     // ID салона (0 - определяется по мастеру)
	MasterID int64     // ID мастера (0 - часы салона без персонального расписания)
	Date     time.Time // Дата, на которую определяются часы (без времени)
}

// Response модель ответа с разрешёнными рабочими часами
type Response struct {
	SalonID  int64              // ID салона
	MasterID int64              // ID мастера
	Date     time.Time          // Дата запроса
	Open     bool               // Работает ли мастер в эту дату
	Start    types.TimeString   // Начало рабочего окна (пустое, если закрыто)
	End      types.TimeString   // Конец рабочего окна (пустое, если закрыто)
	Source   domain.HoursSource // Уровень конфигурации, давший результат
}

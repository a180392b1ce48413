package get_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// Request модель запроса сетки слотов на дату
type Request struct {
	MasterID        int64     // ID мастера
	Date            time.Time // Дата, на которую строится сетка (без времени)
	DurationMinutes int       // Длительность услуги в минутах
}

// Response модель ответа с полной сеткой слотов
type Response struct {
	SalonID  int64              // ID салона мастера
	MasterID int64              // ID мастера
	Date     time.Time          // Дата запроса
	Source   domain.HoursSource // Уровень конфигурации рабочих часов
	Slots    []Slot             // Полная сетка: занятые слоты не отфильтрованы
}

// Slot модель ячейки сетки слотов
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Свободен ли слот целиком
}

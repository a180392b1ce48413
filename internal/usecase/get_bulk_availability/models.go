package get_bulk_availability

import "time"

// Request модель запроса сводки доступности за период
type Request struct {
	MasterID        int64     // ID мастера
	StartDate       time.Time // Начало периода (включительно)
	EndDate         time.Time // Конец периода (включительно)
	DurationMinutes int       // Длительность услуги в минутах
}

// Response модель ответа со сводкой по каждой дате периода
type Response struct {
	SalonID         int64         // ID салона мастера
	MasterID        int64         // ID мастера
	DurationMinutes int           // Длительность услуги
	Days            []DateSummary // Сводки в порядке дат, по одной на каждую дату периода
}

// DateSummary сводка доступности на одну дату
type DateSummary struct {
	Date            time.Time // Дата
	HasAvailability bool      // Есть ли хотя бы один свободный вариант записи
	FreeSlotCount   int       // Количество стартовых позиций, вмещающих услугу целиком
	TotalSlotCount  int       // Размер сетки на эту дату
}

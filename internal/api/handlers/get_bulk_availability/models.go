package get_bulk_availability

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getBulkAvailability "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_bulk_availability"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	SalonID         int64         `json:"salonId"`
	MasterID        int64         `json:"masterId"`
	DurationMinutes int           `json:"durationMinutes"`
	Days            []DateSummary `json:"days"`
}

// DateSummary сводка доступности на одну дату
type DateSummary struct {
	Date            string `json:"date"`
	HasAvailability bool   `json:"hasAvailability"`
	FreeSlotCount   int    `json:"freeSlotCount"`
	TotalSlotCount  int    `json:"totalSlotCount"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getBulkAvailability.Response) *AvailabilityResponse {
	days := make([]DateSummary, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = DateSummary{
			Date:            day.Date.Format(domain.DateFormat),
			HasAvailability: day.HasAvailability,
			FreeSlotCount:   day.FreeSlotCount,
			TotalSlotCount:  day.TotalSlotCount,
		}
	}

	return &AvailabilityResponse{
		SalonID:         resp.SalonID,
		MasterID:        resp.MasterID,
		DurationMinutes: resp.DurationMinutes,
		Days:            days,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(masterID int64, startDateStr, endDateStr string, durationMinutes int) (*getBulkAvailability.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, startDateStr)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, endDateStr)
	if err != nil {
		return nil, err
	}

	return &getBulkAvailability.Request{
		MasterID:        masterID,
		StartDate:       startDate,
		EndDate:         endDate,
		DurationMinutes: durationMinutes,
	}, nil
}

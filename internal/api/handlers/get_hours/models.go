package get_hours

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	resolveHours "github.com/m04kA/SMC-ScheduleService/internal/usecase/resolve_hours"
)

// HoursResponse HTTP response model
type HoursResponse struct {
	SalonID   int64  `json:"salonId"`
	MasterID  int64  `json:"masterId"`
	Date      string `json:"date"`
	Open      bool   `json:"open"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
	Source    string `json:"source"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *resolveHours.Response) *HoursResponse {
	return &HoursResponse{
		SalonID:   resp.SalonID,
		MasterID:  resp.MasterID,
		Date:      resp.Date.Format(domain.DateFormat),
		Open:      resp.Open,
		StartTime: resp.Start.String(),
		EndTime:   resp.End.String(),
		Source:    string(resp.Source),
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(masterID int64, dateStr string) (*resolveHours.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &resolveHours.Request{
		MasterID: masterID,
		Date:     date,
	}, nil
}

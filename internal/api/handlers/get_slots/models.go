package get_slots

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slots"
)

// SlotsResponse HTTP response model
type SlotsResponse struct {
	SalonID  int64  `json:"salonId"`
	MasterID int64  `json:"masterId"`
	Date     string `json:"date"`
	Source   string `json:"source"`
	Slots    []Slot `json:"slots"`
}

// Slot модель ячейки сетки слотов
type Slot struct {
	StartTime       string `json:"startTime"`
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSlots.Response) *SlotsResponse {
	slots := make([]Slot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = Slot{
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
		}
	}

	return &SlotsResponse{
		SalonID:  resp.SalonID,
		MasterID: resp.MasterID,
		Date:     resp.Date.Format(domain.DateFormat),
		Source:   string(resp.Source),
		Slots:    slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров маршрута
func ToUseCaseRequest(masterID int64, dateStr string, durationMinutes int) (*getSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getSlots.Request{
		MasterID:        masterID,
		Date:            date,
		DurationMinutes: durationMinutes,
	}, nil
}

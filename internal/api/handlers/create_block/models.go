package create_block

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	createBlock "github.com/m04kA/SMC-ScheduleService/internal/usecase/create_block"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// CreateBlockRequest HTTP request model
type CreateBlockRequest struct {
	UserID    int64  `json:"userId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
	Label     string `json:"label"`
}

// ToUseCaseRequest конвертирует HTTP request в запрос use case
func (r *CreateBlockRequest) ToUseCaseRequest(masterID int64, dryRun bool) (*createBlock.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBlock.Request{
		UserID:    r.UserID,
		MasterID:  masterID,
		Date:      date,
		StartTime: types.TimeString(r.StartTime),
		EndTime:   types.TimeString(r.EndTime),
		Label:     r.Label,
		DryRun:    dryRun,
	}, nil
}

// BlockResponse HTTP response model созданной блокировки
type BlockResponse struct {
	ID        int64  `json:"id"`
	SalonID   int64  `json:"salonId"`
	MasterID  int64  `json:"masterId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Label     string `json:"label"`
	CreatedAt string `json:"createdAt"`
}

// DryRunResponse HTTP response model успешной проверки без создания
type DryRunResponse struct {
	Available bool `json:"available"`
}

// ConflictResponse HTTP response model конфликта времени
type ConflictResponse struct {
	Code     int             `json:"code"`
	Message  string          `json:"message"`
	Conflict ConflictDetails `json:"conflict"`
}

// ConflictDetails детали первого найденного пересечения
type ConflictDetails struct {
	Source    string `json:"source"`
	RefID     int64  `json:"refId"`
	Label     string `json:"label"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBlock.Response) *BlockResponse {
	b := resp.Block
	return &BlockResponse{
		ID:        b.ID,
		SalonID:   b.SalonID,
		MasterID:  b.MasterID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		Label:     b.Label,
		CreatedAt: b.CreatedAt.Format(time.RFC3339),
	}
}

// FromConflictError конвертирует ошибку конфликта в HTTP response
func FromConflictError(code int, message string, conflict *createBlock.ConflictError) *ConflictResponse {
	return &ConflictResponse{
		Code:    code,
		Message: message,
		Conflict: ConflictDetails{
			Source:    string(conflict.Source),
			RefID:     conflict.RefID,
			Label:     conflict.Label,
			StartTime: conflict.Start.String(),
			EndTime:   conflict.End.String(),
		},
	}
}

package models

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// Request модели

// ListBlocksRequest запрос на получение блокировок мастера
type ListBlocksRequest struct {
	UserID    int64      `json:"userId"`
	MasterID  int64      `json:"masterId"`
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBlocksRequest) ToDomainFilter() domain.TimeBlocksFilter {
	return domain.TimeBlocksFilter{
		MasterID:  r.MasterID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}
}

// Response модели

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID        int64  `json:"id"`
	SalonID   int64  `json:"salonId"`
	MasterID  int64  `json:"masterId"`
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "13:00"
	EndTime   string `json:"endTime"`   // "14:00"
	Label     string `json:"label"`
	CreatedAt string `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainTimeBlock конвертирует domain модель в response
func FromDomainTimeBlock(b *domain.TimeBlock) *BlockResponse {
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

// FromDomainTimeBlockList конвертирует список domain моделей в response
func FromDomainTimeBlockList(items []*domain.TimeBlock) *BlockListResponse {
	blocks := make([]BlockResponse, 0, len(items))
	for _, b := range items {
		blocks = append(blocks, *FromDomainTimeBlock(b))
	}
	return &BlockListResponse{Blocks: blocks}
}

package models

import "github.com/m04kA/SMC-ScheduleService/internal/domain"

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания салона
type UpdateConfigRequest struct {
	UserID             int64 `json:"userId"`
	SalonID            int64 `json:"salonId"`
	SlotStepMinutes    int   `json:"slotStepMinutes"`
	BufferMinutes      int   `json:"bufferMinutes"`
	Reminder24hEnabled bool  `json:"reminder24hEnabled"`
	Reminder2hEnabled  bool  `json:"reminder2hEnabled"`
}

// ToDomain конвертирует request в domain модель
func (r *UpdateConfigRequest) ToDomain() *domain.SalonScheduleConfig {
	return &domain.SalonScheduleConfig{
		SalonID:            r.SalonID,
		SlotStepMinutes:    r.SlotStepMinutes,
		BufferMinutes:      r.BufferMinutes,
		Reminder24hEnabled: r.Reminder24hEnabled,
		Reminder2hEnabled:  r.Reminder2hEnabled,
	}
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания салона
type ConfigResponse struct {
	SalonID            int64 `json:"salonId"`
	SlotStepMinutes    int   `json:"slotStepMinutes"`
	BufferMinutes      int   `json:"bufferMinutes"`
	Reminder24hEnabled bool  `json:"reminder24hEnabled"`
	Reminder2hEnabled  bool  `json:"reminder2hEnabled"`

	// IsDefault true, когда у салона нет сохранённой конфигурации
	IsDefault bool `json:"isDefault"`
}

// FromDomainConfig конвертирует domain модель в response
func FromDomainConfig(c *domain.SalonScheduleConfig, isDefault bool) *ConfigResponse {
	return &ConfigResponse{
		SalonID:            c.SalonID,
		SlotStepMinutes:    c.SlotStepMinutes,
		BufferMinutes:      c.BufferMinutes,
		Reminder24hEnabled: c.Reminder24hEnabled,
		Reminder2hEnabled:  c.Reminder2hEnabled,
		IsDefault:          isDefault,
	}
}

package domain

import "time"

// SalonScheduleConfig represents per-salon scheduling configuration.
// It is owned by the salon management collaborator and read-only to the core.
type SalonScheduleConfig struct {
	ID      int64
	SalonID int64

	// SlotStepMinutes is the granularity of the slot grid (10/15/20/30/60).
	SlotStepMinutes int

	// BufferMinutes is appended after every booking's end before it stops
	// blocking. Manual blocks are never padded.
	BufferMinutes int

	// Reminder rules per lead time
	Reminder24hEnabled bool
	Reminder2hEnabled  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasBuffer returns true if bookings are padded before blocking checks
func (c *SalonScheduleConfig) HasBuffer() bool {
	return c.BufferMinutes > 0
}

// RemindersEnabled returns true if at least one reminder rule is active
func (c *SalonScheduleConfig) RemindersEnabled() bool {
	return c.Reminder24hEnabled || c.Reminder2hEnabled
}

// DefaultScheduleConfig returns the configuration applied when a salon has
// no stored config row.
func DefaultScheduleConfig(salonID int64) *SalonScheduleConfig {
	return &SalonScheduleConfig{
		SalonID:         salonID,
		SlotStepMinutes: DefaultSlotStepMinutes,
		BufferMinutes:   DefaultBufferMinutes,
	}
}

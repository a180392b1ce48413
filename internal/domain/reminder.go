package domain

import "time"

// ReminderType is the lead-time class of a reminder.
type ReminderType string

const (
	Reminder24h ReminderType = "24h"
	Reminder2h  ReminderType = "2h"
)

// LeadTime returns how far before the booking start the reminder fires.
func (t ReminderType) LeadTime() time.Duration {
	switch t {
	case Reminder24h:
		return 24 * time.Hour
	case Reminder2h:
		return 2 * time.Hour
	default:
		return 0
	}
}

// Tolerance returns the allowed drift around the lead-time offset within
// which a booking is still considered due on a sweep tick. The sweep is not
// guaranteed to tick exactly on the hour, so a booking must be caught by some
// tick even when the cadence drifts.
func (t ReminderType) Tolerance() time.Duration {
	switch t {
	case Reminder24h:
		return time.Hour
	case Reminder2h:
		return 15 * time.Minute
	default:
		return 0
	}
}

// SentReminderStatus is the lifecycle state of a ledger row.
type SentReminderStatus string

const (
	// ReminderStatusPending marks a claimed pair whose delivery is in flight.
	ReminderStatusPending SentReminderStatus = "pending"
	// ReminderStatusSent marks a successfully delivered reminder.
	ReminderStatusSent SentReminderStatus = "sent"
	// ReminderStatusFailed marks a delivery failure. Failed is terminal:
	// the pair is never re-attempted.
	ReminderStatusFailed SentReminderStatus = "failed"
)

// SentReminder is a ledger row recording a dispatch attempt for a
// (booking, reminder type) pair. Uniqueness on that pair, enforced atomically
// by the storage layer, is what turns at-most-once delivery from a goal into
// a guarantee under concurrent sweeps.
type SentReminder struct {
	ID        int64
	BookingID int64
	Type      ReminderType
	Status    SentReminderStatus
	SentAt    time.Time
}

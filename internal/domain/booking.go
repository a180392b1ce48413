package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending           BookingStatus = "pending"
	StatusConfirmed         BookingStatus = "confirmed"
	StatusInProgress        BookingStatus = "in_progress"
	StatusCompleted         BookingStatus = "completed"
	StatusCancelledByClient BookingStatus = "cancelled_by_client"
	StatusCancelledBySalon  BookingStatus = "cancelled_by_salon"
	StatusRejected          BookingStatus = "rejected"
	StatusNoShow            BookingStatus = "no_show"
)

// Booking represents a client appointment with a master.
// The scheduling core reads bookings to derive blocking intervals and to find
// reminder candidates; it never creates or mutates them.
type Booking struct {
	ID              int64
	SalonID         int64
	MasterID        int64
	ClientID        int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized display data used in conflict and reminder messages
	ClientName  string
	ServiceName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking occupies its time slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByClient &&
		b.Status != StatusCancelledBySalon &&
		b.Status != StatusRejected &&
		b.Status != StatusNoShow
}

// NeedsReminder returns true if the booking should receive reminders.
// Pending and rejected bookings are excluded from the reminder sweep.
func (b *Booking) NeedsReminder() bool {
	return b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// Interval returns the booking's raw time range in minutes of day.
// Returns an empty interval if the stored start time is malformed.
func (b *Booking) Interval() Interval {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return Interval{}
	}
	return Interval{Start: start, End: start + b.DurationMinutes}
}

// StartAt returns the booking's start as an absolute wall-clock instant in loc.
func (b *Booking) StartAt(loc *time.Location) (time.Time, error) {
	startMinutes, err := b.StartTime.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	day := time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, loc)
	return day.Add(time.Duration(startMinutes) * time.Minute), nil
}

// MasterBookingsFilter фильтр для выборки бронирований
type MasterBookingsFilter struct {
	SalonID         int64      // Обязательный параметр
	MasterID        *int64     // Фильтр по мастеру (nil - все мастера салона)
	StartDate       *time.Time // Начало периода (включительно)
	EndDate         *time.Time // Конец периода (включительно)
	Status          *BookingStatus
	IncludeInactive bool // Включать ли отменённые и no-show бронирования
}

// InactiveStatuses список статусов, не занимающих время мастера
// Используется при подсчёте блокирующих интервалов
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusRejected,
	StatusNoShow,
}

// ReminderSkipStatuses список статусов, исключённых из рассылки напоминаний
var ReminderSkipStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledBySalon,
	StatusRejected,
	StatusNoShow,
	StatusPending,
}

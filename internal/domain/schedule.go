package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// DaySchedule is a single weekday's working window.
type DaySchedule struct {
	Enabled bool
	Start   types.TimeString
	End     types.TimeString
}

// WeeklySchedule maps weekdays to working windows. It is held at two levels:
// the salon default and an optional per-master override of that default.
// A missing weekday entry means the day is disabled.
type WeeklySchedule map[time.Weekday]DaySchedule

// Day returns the schedule entry for a weekday.
// An absent entry is reported as a disabled day.
func (s WeeklySchedule) Day(weekday time.Weekday) (DaySchedule, bool) {
	if s == nil {
		return DaySchedule{}, false
	}
	day, ok := s[weekday]
	return day, ok
}

// DateOverride is a per-date exception to a master's weekly schedule.
// At most one override exists per (master, date); the storage layer enforces
// this uniqueness. A present override is absolute for the resolver.
type DateOverride struct {
	ID        int64
	MasterID  int64
	Date      time.Time
	IsWorking bool
	// Start/End override the weekday's hours when IsWorking is true.
	// When nil, the day is toggled on with the weekly schedule's hours.
	Start  *types.TimeString
	End    *types.TimeString
	Reason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoursSource identifies which configuration level produced resolved hours.
// The builtin default is a distinct source so that logs and tests can tell
// default-filled output apart from an explicitly configured schedule.
type HoursSource string

const (
	SourceDateOverride   HoursSource = "date_override"
	SourceMasterSchedule HoursSource = "master_schedule"
	SourceSalonSchedule  HoursSource = "salon_schedule"
	SourceBuiltinDefault HoursSource = "builtin_default"
)

// ResolvedHours is the effective working window of a master on a date.
type ResolvedHours struct {
	Open         bool
	StartMinutes int
	EndMinutes   int
	Source       HoursSource
}

// Window returns the working hours as an interval.
// Closed hours yield an empty interval.
func (h ResolvedHours) Window() Interval {
	if !h.Open {
		return Interval{}
	}
	return Interval{Start: h.StartMinutes, End: h.EndMinutes}
}

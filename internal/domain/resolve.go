package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// ErrMalformedSchedule marks a stored schedule record that cannot produce a
// valid working window. Resolution fails closed: the error is always paired
// with closed hours, and callers log it instead of surfacing it.
var ErrMalformedSchedule = errors.New("malformed schedule record")

// ResolveHours computes the effective working window of a master on a date.
//
// Precedence, first match wins:
//  1. a date override for that exact date is absolute;
//  2. the master's weekly schedule entry for the weekday;
//  3. the salon's weekly schedule entry for the weekday;
//  4. the builtin default window when no schedule is configured at all.
//
// A salon schedule that exists but omits the weekday means the salon is
// closed that day; the builtin default applies only to fully unconfigured
// owners. A non-nil error always comes with closed hours.
func ResolveHours(date time.Time, override *DateOverride, masterWeekly, salonWeekly WeeklySchedule) (ResolvedHours, error) {
	weekday := date.Weekday()

	if override != nil {
		return resolveFromOverride(override, weekday, masterWeekly, salonWeekly)
	}

	if day, ok := masterWeekly.Day(weekday); ok {
		return resolveFromDay(day, SourceMasterSchedule)
	}

	if day, ok := salonWeekly.Day(weekday); ok {
		return resolveFromDay(day, SourceSalonSchedule)
	}

	if len(salonWeekly) > 0 || len(masterWeekly) > 0 {
		return closedHours(SourceSalonSchedule), nil
	}

	return ResolvedHours{
		Open:         true,
		StartMinutes: DefaultOpenMinutes,
		EndMinutes:   DefaultCloseMinutes,
		Source:       SourceBuiltinDefault,
	}, nil
}

func resolveFromOverride(override *DateOverride, weekday time.Weekday, masterWeekly, salonWeekly WeeklySchedule) (ResolvedHours, error) {
	if !override.IsWorking {
		return closedHours(SourceDateOverride), nil
	}

	if override.Start != nil && override.End != nil {
		return windowFromTimes(*override.Start, *override.End, SourceDateOverride)
	}

	if override.Start != nil || override.End != nil {
		return closedHours(SourceDateOverride), fmt.Errorf("%w: override %d carries a single time bound", ErrMalformedSchedule, override.ID)
	}

	// A working override without times inherits the weekday's hours.
	day, ok := masterWeekly.Day(weekday)
	if !ok {
		day, ok = salonWeekly.Day(weekday)
	}
	if !ok || !day.Enabled {
		return closedHours(SourceDateOverride), fmt.Errorf("%w: override %d marks the day working but the weekday has no hours to inherit", ErrMalformedSchedule, override.ID)
	}

	return windowFromTimes(day.Start, day.End, SourceDateOverride)
}

func resolveFromDay(day DaySchedule, source HoursSource) (ResolvedHours, error) {
	if !day.Enabled {
		return closedHours(source), nil
	}
	return windowFromTimes(day.Start, day.End, source)
}

func windowFromTimes(start, end types.TimeString, source HoursSource) (ResolvedHours, error) {
	startMinutes, err := start.Minutes()
	if err != nil {
		return closedHours(source), fmt.Errorf("%w: start time %q: %v", ErrMalformedSchedule, start, err)
	}

	endMinutes, err := end.Minutes()
	if err != nil {
		return closedHours(source), fmt.Errorf("%w: end time %q: %v", ErrMalformedSchedule, end, err)
	}

	if endMinutes <= startMinutes {
		return closedHours(source), fmt.Errorf("%w: window %s-%s is empty", ErrMalformedSchedule, start, end)
	}

	return ResolvedHours{
		Open:         true,
		StartMinutes: startMinutes,
		EndMinutes:   endMinutes,
		Source:       source,
	}, nil
}

func closedHours(source HoursSource) ResolvedHours {
	return ResolvedHours{Open: false, Source: source}
}

package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// GenerateSlots walks the working window from its start in stepMinutes
// increments and emits every candidate [t, t+durationMinutes) that fits
// inside the window, flagged available when it overlaps no blocker.
// Unavailable candidates are kept, so the result is the full day grid.
// Closed hours and a duration longer than the window both yield an empty
// grid, never an error.
func GenerateSlots(hours ResolvedHours, durationMinutes, stepMinutes int, blockers []BlockingInterval) []Slot {
	slots := make([]Slot, 0)

	if !hours.Open || durationMinutes <= 0 || stepMinutes <= 0 {
		return slots
	}

	for t := hours.StartMinutes; t+durationMinutes <= hours.EndMinutes; t += stepMinutes {
		startTime, err := types.NewTimeStringFromMinutes(t)
		if err != nil {
			continue
		}

		candidate := Interval{Start: t, End: t + durationMinutes}

		slots = append(slots, Slot{
			StartTime:       startTime,
			DurationMinutes: durationMinutes,
			Available:       !OverlapsAny(candidate, blockers),
		})
	}

	return slots
}

// OverlapsAny reports whether the candidate overlaps at least one blocker.
func OverlapsAny(candidate Interval, blockers []BlockingInterval) bool {
	for _, b := range blockers {
		if candidate.Overlaps(b.Interval) {
			return true
		}
	}
	return false
}

// FirstOverlap returns the first blocker the candidate overlaps, in the
// order given. Used by conflict checks to name the blocking entity.
func FirstOverlap(candidate Interval, blockers []BlockingInterval) (BlockingInterval, bool) {
	for _, b := range blockers {
		if candidate.Overlaps(b.Interval) {
			return b, true
		}
	}
	return BlockingInterval{}, false
}

// SummarizeGrid reduces a step-granularity grid (candidate length equals the
// step) to a per-date availability summary for a service spanning need
// consecutive steps. A starting position is counted free only when it admits
// a full run of need free cells.
func SummarizeGrid(grid []Slot, need int) DateAvailability {
	summary := DateAvailability{TotalSlotCount: len(grid)}

	if need <= 0 || len(grid) < need {
		return summary
	}

	run := 0
	for i := len(grid) - 1; i >= 0; i-- {
		if grid[i].Available {
			run++
		} else {
			run = 0
		}
		if run >= need {
			summary.FreeSlotCount++
		}
	}

	summary.HasAvailability = summary.FreeSlotCount > 0
	return summary
}

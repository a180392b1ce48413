package domain

import "github.com/m04kA/SMC-ScheduleService/pkg/types"

// Slot is a single cell of the availability grid. Unavailable slots are kept
// in the sequence so callers can render a full day grid; callers that only
// want bookable times filter on Available.
type Slot struct {
	StartTime       types.TimeString
	DurationMinutes int
	Available       bool
}

// DateAvailability is the per-date summary produced by bulk availability
// queries. FreeSlotCount counts starting positions that admit a full run of
// consecutive free steps for the requested duration, not raw free cells.
type DateAvailability struct {
	HasAvailability bool
	FreeSlotCount   int
	TotalSlotCount  int
}

package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

func openHours(start, end int) ResolvedHours {
	return ResolvedHours{Open: true, StartMinutes: start, EndMinutes: end, Source: SourceSalonSchedule}
}

func TestGenerateSlotsFullGrid(t *testing.T) {
	// 09:00-18:00, 60-minute service on a 30-minute grid: last start 17:00.
	grid := GenerateSlots(openHours(540, 1080), 60, 30, nil)

	require.Len(t, grid, 17)
	assert.Equal(t, types.TimeString("09:00"), grid[0].StartTime)
	assert.Equal(t, types.TimeString("17:00"), grid[16].StartTime)
	for _, slot := range grid {
		assert.True(t, slot.Available)
		assert.Equal(t, 60, slot.DurationMinutes)
	}
}

func TestGenerateSlotsBookingWithBufferBlocks(t *testing.T) {
	// A 10:00-11:00 booking with a 15-minute buffer blocks candidates
	// overlapping [10:00, 11:15): 09:30..11:00 stay busy, 11:30 is free.
	booking := &Booking{
		ID:              7,
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          StatusConfirmed,
		ClientName:      "Анна",
	}
	blockers := []BlockingInterval{FromBooking(booking, 15)}

	grid := GenerateSlots(openHours(540, 1080), 60, 30, blockers)
	require.Len(t, grid, 17)

	byStart := make(map[types.TimeString]bool, len(grid))
	for _, slot := range grid {
		byStart[slot.StartTime] = slot.Available
	}

	assert.True(t, byStart["09:00"])
	assert.False(t, byStart["09:30"], "09:30+60 overlaps the booking")
	assert.False(t, byStart["10:00"])
	assert.False(t, byStart["10:30"])
	assert.False(t, byStart["11:00"], "11:00 falls inside the buffer tail")
	assert.True(t, byStart["11:30"], "buffer ends at 11:15, 11:30 is clear")
}

func TestGenerateSlotsManualBlockUnpadded(t *testing.T) {
	block := &TimeBlock{ID: 3, StartTime: "13:00", EndTime: "14:00", Label: "обед"}
	blockers := []BlockingInterval{FromTimeBlock(block)}

	grid := GenerateSlots(openHours(540, 1080), 30, 30, blockers)

	byStart := make(map[types.TimeString]bool, len(grid))
	for _, slot := range grid {
		byStart[slot.StartTime] = slot.Available
	}

	assert.True(t, byStart["12:30"])
	assert.False(t, byStart["13:00"])
	assert.False(t, byStart["13:30"])
	assert.True(t, byStart["14:00"], "touching the block end does not overlap")
}

func TestGenerateSlotsClosedDay(t *testing.T) {
	grid := GenerateSlots(ResolvedHours{Open: false}, 60, 30, nil)
	assert.NotNil(t, grid)
	assert.Empty(t, grid)
}

func TestGenerateSlotsDurationLongerThanWindow(t *testing.T) {
	grid := GenerateSlots(openHours(540, 600), 120, 30, nil)
	assert.NotNil(t, grid)
	assert.Empty(t, grid)
}

func TestGenerateSlotsDurationExactlyWindow(t *testing.T) {
	grid := GenerateSlots(openHours(540, 600), 60, 30, nil)
	require.Len(t, grid, 1)
	assert.Equal(t, types.TimeString("09:00"), grid[0].StartTime)
}

func TestGenerateSlotsInvalidParams(t *testing.T) {
	assert.Empty(t, GenerateSlots(openHours(540, 1080), 0, 30, nil))
	assert.Empty(t, GenerateSlots(openHours(540, 1080), 60, 0, nil))
	assert.Empty(t, GenerateSlots(openHours(540, 1080), -30, 30, nil))
}

// naiveAvailable is a straight reimplementation used as an oracle: a start is
// available when the candidate fits the window and minute-by-minute scanning
// finds no blocked minute.
func naiveAvailable(start, duration int, hours ResolvedHours, blockers []BlockingInterval) bool {
	if start < hours.StartMinutes || start+duration > hours.EndMinutes {
		return false
	}
	for m := start; m < start+duration; m++ {
		for _, b := range blockers {
			if !b.Interval.IsEmpty() && m >= b.Interval.Start && m < b.Interval.End {
				return false
			}
		}
	}
	return true
}

func TestGenerateSlotsAgainstNaiveReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		hours := openHours(480, 480+60*(4+rng.Intn(10)))
		duration := 15 * (1 + rng.Intn(8))
		step := AllowedSlotSteps[rng.Intn(len(AllowedSlotSteps))]

		var blockers []BlockingInterval
		for i := 0; i < rng.Intn(6); i++ {
			start := 480 + rng.Intn(600)
			blockers = append(blockers, BlockingInterval{
				Interval: Interval{Start: start, End: start + rng.Intn(180)},
				Source:   BlockSourceManualBlock,
				RefID:    int64(i),
			})
		}

		grid := GenerateSlots(hours, duration, step, blockers)
		for _, slot := range grid {
			start, err := slot.StartTime.Minutes()
			require.NoError(t, err)
			want := naiveAvailable(start, duration, hours, blockers)
			assert.Equal(t, want, slot.Available,
				"trial %d: start=%d duration=%d step=%d", trial, start, duration, step)
		}
	}
}

func TestFirstOverlapReturnsFirstInOrder(t *testing.T) {
	blockers := []BlockingInterval{
		{Interval: Interval{600, 660}, Source: BlockSourceBooking, RefID: 1},
		{Interval: Interval{630, 690}, Source: BlockSourceManualBlock, RefID: 2},
	}

	hit, ok := FirstOverlap(Interval{640, 700}, blockers)
	require.True(t, ok)
	assert.Equal(t, int64(1), hit.RefID)
	assert.Equal(t, BlockSourceBooking, hit.Source)

	_, ok = FirstOverlap(Interval{700, 760}, blockers)
	assert.False(t, ok)
}

func TestSummarizeGrid(t *testing.T) {
	mk := func(avail ...bool) []Slot {
		grid := make([]Slot, len(avail))
		for i, a := range avail {
			grid[i] = Slot{Available: a}
		}
		return grid
	}

	cases := []struct {
		name      string
		grid      []Slot
		need      int
		wantFree  int
		wantTotal int
	}{
		{"single step per slot", mk(true, false, true, true), 1, 3, 4},
		{"needs two consecutive", mk(true, true, false, true, true, true), 2, 3, 6},
		{"no run long enough", mk(true, false, true, false), 2, 0, 4},
		{"whole grid one run", mk(true, true, true), 3, 1, 3},
		{"need longer than grid", mk(true, true), 3, 0, 2},
		{"empty grid", mk(), 1, 0, 0},
		{"all busy", mk(false, false, false), 1, 0, 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SummarizeGrid(tc.grid, tc.need)
			assert.Equal(t, tc.wantFree, got.FreeSlotCount)
			assert.Equal(t, tc.wantTotal, got.TotalSlotCount)
			assert.Equal(t, tc.wantFree > 0, got.HasAvailability)
		})
	}
}

func TestBookingIsActive(t *testing.T) {
	active := []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted}
	for _, s := range active {
		b := Booking{Status: s}
		assert.True(t, b.IsActive(), string(s))
	}

	inactive := []BookingStatus{StatusCancelledByClient, StatusCancelledBySalon, StatusRejected, StatusNoShow}
	for _, s := range inactive {
		b := Booking{Status: s}
		assert.False(t, b.IsActive(), string(s))
	}
}

func TestBookingNeedsReminder(t *testing.T) {
	needs := []BookingStatus{StatusConfirmed, StatusInProgress}
	for _, s := range needs {
		b := Booking{Status: s}
		assert.True(t, b.NeedsReminder(), string(s))
	}

	skipped := []BookingStatus{StatusPending, StatusCompleted, StatusCancelledByClient, StatusRejected}
	for _, s := range skipped {
		b := Booking{Status: s}
		assert.False(t, b.NeedsReminder(), string(s))
	}
}

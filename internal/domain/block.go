package domain

import (
	"time"

	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// TimeBlock is a manual unavailability range created by a master or manager
// (lunch break, cleaning, personal leave). Unlike bookings, blocks carry
// operator-authored exact ranges and receive no buffer padding.
type TimeBlock struct {
	ID        int64
	SalonID   int64
	MasterID  int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Label     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the block's time range in minutes of day.
// Returns an empty interval if stored times are malformed.
func (b *TimeBlock) Interval() Interval {
	start, err := b.StartTime.Minutes()
	if err != nil {
		return Interval{}
	}
	end, err := b.EndTime.Minutes()
	if err != nil {
		return Interval{}
	}
	return Interval{Start: start, End: end}
}

// TimeBlocksFilter фильтр для выборки ручных блокировок
type TimeBlocksFilter struct {
	MasterID  int64
	StartDate *time.Time // Начало периода (включительно)
	EndDate   *time.Time // Конец периода (включительно)
}

// BlockSource identifies the origin of a blocking interval.
type BlockSource string

const (
	BlockSourceBooking     BlockSource = "booking"
	BlockSourceManualBlock BlockSource = "manual_block"
)

// BlockingInterval is the single shape all unavailability is reduced to before
// reaching the interval arithmetic: a padded booking or a raw manual block,
// carrying just enough identity for conflict messages. Blocking intervals are
// derived per query and never stored.
type BlockingInterval struct {
	Interval Interval
	Source   BlockSource
	RefID    int64
	// Label names the blocker for conflict messages:
	// the client name for a booking, the block label for a manual block.
	Label string
}

// FromBooking builds a blocking interval from an active booking,
// padding its end with the salon buffer.
func FromBooking(b *Booking, bufferMinutes int) BlockingInterval {
	return BlockingInterval{
		Interval: b.Interval().Pad(bufferMinutes),
		Source:   BlockSourceBooking,
		RefID:    b.ID,
		Label:    b.ClientName,
	}
}

// FromTimeBlock builds a blocking interval from a manual block, unpadded.
func FromTimeBlock(b *TimeBlock) BlockingInterval {
	return BlockingInterval{
		Interval: b.Interval(),
		Source:   BlockSourceManualBlock,
		RefID:    b.ID,
		Label:    b.Label,
	}
}

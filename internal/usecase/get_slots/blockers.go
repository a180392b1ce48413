package get_slots

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
)

// collectBlockers загружает активные бронирования и ручные блокировки мастера
// на дату и приводит их к единому виду блокирующих интервалов.
// Буфер салона добавляется к бронированию ровно один раз на этом шаге;
// ручные блокировки буфером не расширяются
func collectBlockers(
	ctx context.Context,
	bookingRepo BookingRepository,
	blockRepo BlockRepository,
	salonID, masterID int64,
	date time.Time,
	bufferMinutes int,
) ([]domain.BlockingInterval, error) {
	bookings, err := bookingRepo.GetWithFilter(ctx, domain.MasterBookingsFilter{
		SalonID:   salonID,
		MasterID:  &masterID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	blocks, err := blockRepo.GetWithFilter(ctx, domain.TimeBlocksFilter{
		MasterID:  masterID,
		StartDate: &date,
		EndDate:   &date,
	})
	if err != nil {
		return nil, fmt.Errorf("get time blocks: %w", err)
	}

	blockers := make([]domain.BlockingInterval, 0, len(bookings)+len(blocks))

	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		blockers = append(blockers, domain.FromBooking(b, bufferMinutes))
	}

	for _, b := range blocks {
		blockers = append(blockers, domain.FromTimeBlock(b))
	}

	return blockers, nil
}

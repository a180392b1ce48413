package get_bulk_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// 2025-06-02 is a Monday
var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

func day(offset int) time.Time {
	return monday.AddDate(0, 0, offset)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	calls    int
}

func (f *fakeBookingRepo) GetWithFilter(_ context.Context, _ domain.MasterBookingsFilter) ([]*domain.Booking, error) {
	f.calls++
	return f.bookings, nil
}

type fakeBlockRepo struct {
	blocks []*domain.TimeBlock
	calls  int
}

func (f *fakeBlockRepo) GetWithFilter(_ context.Context, _ domain.TimeBlocksFilter) ([]*domain.TimeBlock, error) {
	f.calls++
	return f.blocks, nil
}

type fakeScheduleRepo struct {
	salonWeekly   domain.WeeklySchedule
	masterWeekly  domain.WeeklySchedule
	overrides     []*domain.DateOverride
	overrideCalls int
}

func (f *fakeScheduleRepo) GetSalonSchedule(_ context.Context, _ int64) (domain.WeeklySchedule, error) {
	return f.salonWeekly, nil
}

func (f *fakeScheduleRepo) GetMasterSchedule(_ context.Context, _ int64) (domain.WeeklySchedule, error) {
	return f.masterWeekly, nil
}

func (f *fakeScheduleRepo) GetOverridesForRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.DateOverride, error) {
	f.overrideCalls++
	return f.overrides, nil
}

type fakeConfigRepo struct {
	config *domain.SalonScheduleConfig
}

func (f *fakeConfigRepo) GetBySalonID(_ context.Context, _ int64) (*domain.SalonScheduleConfig, error) {
	return f.config, nil
}

type fakeSalonClient struct{}

func (fakeSalonClient) GetMaster(_ context.Context, id int64) (*salonservice.Master, error) {
	if id != 5 {
		return nil, salonservice.ErrMasterNotFound
	}
	return &salonservice.Master{ID: 5, SalonID: 10, Name: "Анна", IsActive: true}, nil
}

type fixture struct {
	bookingRepo  *fakeBookingRepo
	blockRepo    *fakeBlockRepo
	scheduleRepo *fakeScheduleRepo
	uc           *UseCase
}

// allWeek включает один и тот же график на каждый день недели
func allWeek(start, end types.TimeString) domain.WeeklySchedule {
	weekly := domain.WeeklySchedule{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		weekly[wd] = domain.DaySchedule{Enabled: true, Start: start, End: end}
	}
	return weekly
}

func newFixture() *fixture {
	f := &fixture{
		bookingRepo: &fakeBookingRepo{},
		blockRepo:   &fakeBlockRepo{},
		scheduleRepo: &fakeScheduleRepo{
			salonWeekly: allWeek("09:00", "18:00"),
		},
	}
	configRepo := &fakeConfigRepo{
		config: &domain.SalonScheduleConfig{
			SalonID:         10,
			SlotStepMinutes: 30,
			BufferMinutes:   0,
		},
	}
	f.uc = NewUseCase(f.bookingRepo, f.blockRepo, f.scheduleRepo, configRepo, fakeSalonClient{}, nopLogger{})
	return f
}

func TestExecuteValidation(t *testing.T) {
	f := newFixture()

	cases := []struct {
		name string
		req  *Request
	}{
		{"zero master", &Request{StartDate: monday, EndDate: monday, DurationMinutes: 60}},
		{"missing dates", &Request{MasterID: 5, DurationMinutes: 60}},
		{"inverted range", &Request{MasterID: 5, StartDate: day(3), EndDate: monday, DurationMinutes: 60}},
		{"range too long", &Request{MasterID: 5, StartDate: monday, EndDate: day(31), DurationMinutes: 60}},
		{"duration too long", &Request{MasterID: 5, StartDate: monday, EndDate: day(3), DurationMinutes: 481}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecuteMaxRangeAccepted(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: day(30), DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Days, 31)
}

func TestExecuteMasterNotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 99, StartDate: monday, EndDate: day(3), DurationMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestExecuteOneSummaryPerDate(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: day(6), DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 7)
	for i, d := range resp.Days {
		assert.Equal(t, day(i), d.Date)
		// 09:00-18:00 on a 30-minute step grid holds 18 cells;
		// a 60-minute service needs 2 consecutive free cells: 17 starts
		assert.Equal(t, 18, d.TotalSlotCount)
		assert.Equal(t, 17, d.FreeSlotCount)
		assert.True(t, d.HasAvailability)
	}
}

func TestExecuteSingleBatchedFetch(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: day(30), DurationMinutes: 60,
	})
	require.NoError(t, err)

	// The whole range is served by one query per source
	assert.Equal(t, 1, f.bookingRepo.calls)
	assert.Equal(t, 1, f.blockRepo.calls)
	assert.Equal(t, 1, f.scheduleRepo.overrideCalls)
}

func TestExecuteBlockersLandOnTheirDates(t *testing.T) {
	f := newFixture()
	// Booking fills 09:00-18:00 on the second date entirely
	f.bookingRepo.bookings = []*domain.Booking{
		{
			ID: 7, SalonID: 10, MasterID: 5,
			Date: day(1), StartTime: "09:00", DurationMinutes: 540,
			Status: domain.StatusConfirmed,
		},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: day(2), DurationMinutes: 60,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 3)
	assert.True(t, resp.Days[0].HasAvailability)
	assert.False(t, resp.Days[1].HasAvailability)
	assert.Equal(t, 0, resp.Days[1].FreeSlotCount)
	assert.True(t, resp.Days[2].HasAvailability)
}

func TestExecuteOverrideClosesItsDate(t *testing.T) {
	f := newFixture()
	f.scheduleRepo.overrides = []*domain.DateOverride{
		{ID: 1, MasterID: 5, Date: day(1), IsWorking: false},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: day(2), DurationMinutes: 60,
	})
	require.NoError(t, err)

	assert.True(t, resp.Days[0].HasAvailability)
	assert.False(t, resp.Days[1].HasAvailability)
	assert.Equal(t, 0, resp.Days[1].TotalSlotCount)
	assert.True(t, resp.Days[2].HasAvailability)
}

func TestExecuteRunCountingNeedsConsecutiveCells(t *testing.T) {
	f := newFixture()
	// 10:00-10:30 booked: splits the morning run
	f.bookingRepo.bookings = []*domain.Booking{
		{
			ID: 7, SalonID: 10, MasterID: 5,
			Date: monday, StartTime: "10:00", DurationMinutes: 30,
			Status: domain.StatusConfirmed,
		},
	}

	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: monday, DurationMinutes: 90,
	})
	require.NoError(t, err)

	require.Len(t, resp.Days, 1)
	// 18 cells, the 10:00 cell busy. A 90-minute service needs 3 consecutive
	// free cells: the 2-cell morning run cannot host it, starts from 10:30
	// through 16:30 can, giving 13 positions
	assert.Equal(t, 18, resp.Days[0].TotalSlotCount)
	assert.Equal(t, 13, resp.Days[0].FreeSlotCount)
}

// matches the grid arithmetic of the per-date slot endpoint
func TestExecuteAgreesWithSingleDateGrid(t *testing.T) {
	f := newFixture()
	f.bookingRepo.bookings = []*domain.Booking{
		{
			ID: 7, SalonID: 10, MasterID: 5,
			Date: monday, StartTime: "11:00", DurationMinutes: 60,
			Status: domain.StatusConfirmed,
		},
	}
	f.blockRepo.blocks = []*domain.TimeBlock{
		{ID: 3, SalonID: 10, MasterID: 5, Date: monday, StartTime: "15:00", EndTime: "16:00", Label: "обед"},
	}

	duration := 60
	resp, err := f.uc.Execute(context.Background(), &Request{
		MasterID: 5, StartDate: monday, EndDate: monday, DurationMinutes: duration,
	})
	require.NoError(t, err)

	// Reference: full-duration grid built directly over the same inputs
	hours := domain.ResolvedHours{Open: true, StartMinutes: 540, EndMinutes: 1080, Source: domain.SourceSalonSchedule}
	blockers := []domain.BlockingInterval{
		domain.FromBooking(f.bookingRepo.bookings[0], 0),
		domain.FromTimeBlock(f.blockRepo.blocks[0]),
	}
	reference := domain.GenerateSlots(hours, duration, 30, blockers)

	wantFree := 0
	for _, s := range reference {
		if s.Available {
			wantFree++
		}
	}

	require.Len(t, resp.Days, 1)
	assert.Equal(t, wantFree, resp.Days[0].FreeSlotCount)
	assert.Equal(t, wantFree > 0, resp.Days[0].HasAvailability)
}

package run_reminder_sweep

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/notifyservice"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/pkg/types"
)

// sweepNow is 12:00 on 2025-06-02 (Monday): the 24h window lands on
// 2025-06-03 12:00, the 2h window on 14:00 the same day
var sweepNow = time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeConfigRepo struct {
	configs []*domain.SalonScheduleConfig
}

func (f *fakeConfigRepo) ListWithRemindersEnabled(_ context.Context) ([]*domain.SalonScheduleConfig, error) {
	return f.configs, nil
}

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetForReminders(_ context.Context, _ int64, _ []time.Time) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.bookings, nil
}

// fakeReminderRepo моделирует журнал с уникальностью пары (booking, type)
type fakeReminderRepo struct {
	mu       sync.Mutex
	nextID   int64
	claimed  map[string]*domain.SentReminder
	statuses map[int64]domain.SentReminderStatus
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{
		claimed:  make(map[string]*domain.SentReminder),
		statuses: make(map[int64]domain.SentReminderStatus),
	}
}

func claimKey(bookingID int64, t domain.ReminderType) string {
	return fmt.Sprintf("%d/%s", bookingID, t)
}

func (f *fakeReminderRepo) Claim(_ context.Context, bookingID int64, reminderType domain.ReminderType) (*domain.SentReminder, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := claimKey(bookingID, reminderType)
	if _, exists := f.claimed[key]; exists {
		return nil, false, nil
	}

	f.nextID++
	claim := &domain.SentReminder{
		ID:        f.nextID,
		BookingID: bookingID,
		Type:      reminderType,
		Status:    domain.ReminderStatusPending,
	}
	f.claimed[key] = claim
	return claim, true, nil
}

func (f *fakeReminderRepo) MarkStatus(_ context.Context, id int64, status domain.SentReminderStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
	return nil
}

type fakeSalonClient struct{}

func (fakeSalonClient) GetSalon(_ context.Context, id int64) (*salonservice.Salon, error) {
	if id == 666 {
		return nil, salonservice.ErrSalonNotFound
	}
	return &salonservice.Salon{ID: id, Name: "Салон", Address: "Тверская 1", IsActive: true}, nil
}

type fakeNotifyClient struct {
	mu      sync.Mutex
	sent    []*notifyservice.ReminderMessage
	failFor map[int64]bool
}

func (f *fakeNotifyClient) SendReminder(_ context.Context, msg *notifyservice.ReminderMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[msg.BookingID] {
		return errors.New("notify service unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeMetrics struct {
	mu           sync.Mutex
	observations map[string]int
}

func (f *fakeMetrics) ObserveReminderDispatch(reminderType, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.observations == nil {
		f.observations = make(map[string]int)
	}
	f.observations[reminderType+"/"+status]++
}

type fixture struct {
	configRepo   *fakeConfigRepo
	bookingRepo  *fakeBookingRepo
	reminderRepo *fakeReminderRepo
	notifyClient *fakeNotifyClient
	metrics      *fakeMetrics
	uc           *UseCase
}

func newFixture() *fixture {
	f := &fixture{
		configRepo: &fakeConfigRepo{
			configs: []*domain.SalonScheduleConfig{
				{SalonID: 10, Reminder24hEnabled: true, Reminder2hEnabled: true},
			},
		},
		bookingRepo:  &fakeBookingRepo{},
		reminderRepo: newFakeReminderRepo(),
		notifyClient: &fakeNotifyClient{failFor: map[int64]bool{}},
		metrics:      &fakeMetrics{},
	}
	f.uc = NewUseCase(f.configRepo, f.bookingRepo, f.reminderRepo, fakeSalonClient{}, f.notifyClient, f.metrics, nopLogger{})
	return f
}

// bookingAt возвращает подтверждённое бронирование с началом в startAt
func bookingAt(id int64, startAt time.Time) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		SalonID:         10,
		MasterID:        5,
		Date:            time.Date(startAt.Year(), startAt.Month(), startAt.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       types.NewTimeString(startAt),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
		ClientName:      "Ирина",
		ServiceName:     "Стрижка",
	}
}

func TestExecuteRequiresNow(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecuteGeneratesTickID(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.TickID)

	resp2, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.NotEqual(t, resp.TickID, resp2.TickID)
}

func TestExecuteSendsDueReminder(t *testing.T) {
	f := newFixture()
	// Booking starts exactly 24 hours from now
	f.bookingRepo.bookings = []*domain.Booking{bookingAt(1, sweepNow.Add(24*time.Hour))}

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow, TickID: "tick-1"})
	require.NoError(t, err)

	assert.Equal(t, "tick-1", resp.TickID)
	assert.Equal(t, 1, resp.Salons)
	assert.Equal(t, 1, resp.Due)
	assert.Equal(t, 1, resp.Sent)
	assert.Zero(t, resp.Failed)

	require.Len(t, f.notifyClient.sent, 1)
	msg := f.notifyClient.sent[0]
	assert.Equal(t, int64(1), msg.BookingID)
	assert.Equal(t, "24h", msg.ReminderType)
	assert.Equal(t, "Ирина", msg.ClientName)
	assert.Equal(t, "Салон", msg.SalonName)

	assert.Equal(t, 1, f.metrics.observations["24h/sent"])
}

func TestExecuteToleranceEdges(t *testing.T) {
	// 24h rule tolerates +/- 1 hour of drift
	cases := []struct {
		name    string
		startAt time.Time
		due     bool
	}{
		{"exactly on target", sweepNow.Add(24 * time.Hour), true},
		{"at plus tolerance", sweepNow.Add(25 * time.Hour), true},
		{"at minus tolerance", sweepNow.Add(23 * time.Hour), true},
		{"past plus tolerance", sweepNow.Add(25*time.Hour + time.Minute), false},
		{"past minus tolerance", sweepNow.Add(23*time.Hour - time.Minute), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.configRepo.configs[0].Reminder2hEnabled = false
			f.bookingRepo.bookings = []*domain.Booking{bookingAt(1, tc.startAt)}

			resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
			require.NoError(t, err)

			if tc.due {
				assert.Equal(t, 1, resp.Due)
				assert.Equal(t, 1, resp.Sent)
			} else {
				assert.Zero(t, resp.Due)
				assert.Zero(t, resp.Sent)
			}
		})
	}
}

func TestExecuteSkipsBookingsNotNeedingReminder(t *testing.T) {
	f := newFixture()
	pending := bookingAt(1, sweepNow.Add(24*time.Hour))
	pending.Status = domain.StatusPending
	cancelled := bookingAt(2, sweepNow.Add(24*time.Hour))
	cancelled.Status = domain.StatusCancelledByClient
	f.bookingRepo.bookings = []*domain.Booking{pending, cancelled}

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.Zero(t, resp.Due)
	assert.Empty(t, f.notifyClient.sent)
}

func TestExecuteAtMostOnceAcrossSweeps(t *testing.T) {
	f := newFixture()
	f.configRepo.configs[0].Reminder2hEnabled = false
	f.bookingRepo.bookings = []*domain.Booking{bookingAt(1, sweepNow.Add(24*time.Hour))}

	first, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Due)
	assert.Zero(t, second.Sent)
	assert.Equal(t, 1, second.Skipped)

	assert.Len(t, f.notifyClient.sent, 1)
}

func TestExecuteAtMostOnceUnderConcurrentSweeps(t *testing.T) {
	f := newFixture()
	f.configRepo.configs[0].Reminder2hEnabled = false
	for id := int64(1); id <= 20; id++ {
		f.bookingRepo.bookings = append(f.bookingRepo.bookings, bookingAt(id, sweepNow.Add(24*time.Hour)))
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Каждое бронирование получило ровно одно напоминание
	assert.Len(t, f.notifyClient.sent, 20)
	seen := make(map[int64]int)
	for _, msg := range f.notifyClient.sent {
		seen[msg.BookingID]++
	}
	for id, count := range seen {
		assert.Equal(t, 1, count, "booking %d", id)
	}
}

func TestExecuteFailedDeliveryIsTerminal(t *testing.T) {
	f := newFixture()
	f.configRepo.configs[0].Reminder2hEnabled = false
	f.bookingRepo.bookings = []*domain.Booking{bookingAt(1, sweepNow.Add(24*time.Hour))}
	f.notifyClient.failFor[1] = true

	first, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Failed)
	assert.Zero(t, first.Sent)
	assert.Equal(t, domain.ReminderStatusFailed, f.reminderRepo.statuses[1])
	assert.Equal(t, 1, f.metrics.observations["24h/failed"])

	// Доставка не повторяется даже после восстановления сервиса
	f.notifyClient.failFor[1] = false
	second, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)
	assert.Zero(t, second.Sent)
	assert.Equal(t, 1, second.Skipped)
	assert.Empty(t, f.notifyClient.sent)
}

func TestExecutePerBookingIsolation(t *testing.T) {
	f := newFixture()
	f.configRepo.configs[0].Reminder2hEnabled = false
	f.bookingRepo.bookings = []*domain.Booking{
		bookingAt(1, sweepNow.Add(24*time.Hour)),
		bookingAt(2, sweepNow.Add(24*time.Hour)),
		bookingAt(3, sweepNow.Add(24*time.Hour)),
	}
	f.notifyClient.failFor[2] = true

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Due)
	assert.Equal(t, 2, resp.Sent)
	assert.Equal(t, 1, resp.Failed)
}

func TestExecutePerSalonIsolation(t *testing.T) {
	f := newFixture()
	// Салон 666 недоступен в SalonService, салон 10 обрабатывается
	f.configRepo.configs = []*domain.SalonScheduleConfig{
		{SalonID: 666, Reminder24hEnabled: true},
		{SalonID: 10, Reminder24hEnabled: true},
	}
	f.bookingRepo.bookings = []*domain.Booking{bookingAt(1, sweepNow.Add(24*time.Hour))}

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Salons)
	assert.Equal(t, 1, resp.Sent)
}

func TestExecuteBothRulesProduceSeparateReminders(t *testing.T) {
	f := newFixture()
	// Два бронирования: одно в окне 24h, другое в окне 2h
	f.bookingRepo.bookings = []*domain.Booking{
		bookingAt(1, sweepNow.Add(24*time.Hour)),
		bookingAt(2, sweepNow.Add(2*time.Hour)),
	}

	resp, err := f.uc.Execute(context.Background(), &Request{Now: sweepNow})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Sent)

	byType := make(map[string]int64)
	for _, msg := range f.notifyClient.sent {
		byType[msg.ReminderType] = msg.BookingID
	}
	assert.Equal(t, int64(1), byType["24h"])
	assert.Equal(t, int64(2), byType["2h"])
}

func TestWindowDatesMidnightCrossing(t *testing.T) {
	// Target 00:30 with a 1-hour tolerance spans two calendar dates
	target := time.Date(2025, 6, 3, 0, 30, 0, 0, time.UTC)
	dates := windowDates(target, time.Hour)

	require.Len(t, dates, 2)
	assert.Equal(t, time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC), dates[0])
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), dates[1])

	// Midday target stays within one date
	midday := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	dates = windowDates(midday, time.Hour)
	require.Len(t, dates, 1)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), dates[0])
}

func TestEnabledTypes(t *testing.T) {
	both := &domain.SalonScheduleConfig{Reminder24hEnabled: true, Reminder2hEnabled: true}
	assert.Equal(t, []domain.ReminderType{domain.Reminder24h, domain.Reminder2h}, enabledTypes(both))

	only2h := &domain.SalonScheduleConfig{Reminder2hEnabled: true}
	assert.Equal(t, []domain.ReminderType{domain.Reminder2h}, enabledTypes(only2h))

	none := &domain.SalonScheduleConfig{}
	assert.Empty(t, enabledTypes(none))
}

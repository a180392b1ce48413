package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	configRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/config"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/config/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeConfigRepo struct {
	configs map[int64]*domain.SalonScheduleConfig
}

func (f *fakeConfigRepo) GetBySalonID(_ context.Context, salonID int64) (*domain.SalonScheduleConfig, error) {
	c, ok := f.configs[salonID]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return c, nil
}

func (f *fakeConfigRepo) Upsert(_ context.Context, c *domain.SalonScheduleConfig) (*domain.SalonScheduleConfig, error) {
	f.configs[c.SalonID] = c
	return c, nil
}

type fakeSalonClient struct {
	managerOf map[int64]bool
}

func (f *fakeSalonClient) GetSalon(_ context.Context, id int64) (*salonservice.Salon, error) {
	if id != 10 {
		return nil, salonservice.ErrSalonNotFound
	}
	return &salonservice.Salon{ID: 10, Name: "Салон", IsActive: true}, nil
}

func (f *fakeSalonClient) IsManager(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.managerOf[userID], nil
}

func newService() (*Service, *fakeConfigRepo) {
	repo := &fakeConfigRepo{configs: map[int64]*domain.SalonScheduleConfig{}}
	client := &fakeSalonClient{managerOf: map[int64]bool{1: true}}
	return NewService(repo, client, nopLogger{}), repo
}

func TestGetReturnsDefaultsWhenNotStored(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.Get(context.Background(), 10, 0)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.Equal(t, domain.DefaultSlotStepMinutes, resp.SlotStepMinutes)
	assert.Equal(t, domain.DefaultBufferMinutes, resp.BufferMinutes)
	assert.False(t, resp.Reminder24hEnabled)
}

func TestGetReturnsStoredConfig(t *testing.T) {
	svc, repo := newService()
	repo.configs[10] = &domain.SalonScheduleConfig{
		SalonID: 10, SlotStepMinutes: 15, BufferMinutes: 10, Reminder24hEnabled: true,
	}

	resp, err := svc.Get(context.Background(), 10, 0)
	require.NoError(t, err)

	assert.False(t, resp.IsDefault)
	assert.Equal(t, 15, resp.SlotStepMinutes)
	assert.Equal(t, 10, resp.BufferMinutes)
	assert.True(t, resp.Reminder24hEnabled)
}

func TestGetSalonNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.Get(context.Background(), 99, 0)
	assert.ErrorIs(t, err, ErrSalonNotFound)
}

func TestUpdateStoresConfig(t *testing.T) {
	svc, repo := newService()

	resp, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		UserID: 1, SalonID: 10,
		SlotStepMinutes: 20, BufferMinutes: 15,
		Reminder24hEnabled: true, Reminder2hEnabled: true,
	})
	require.NoError(t, err)

	assert.Equal(t, 20, resp.SlotStepMinutes)
	assert.False(t, resp.IsDefault)

	stored := repo.configs[10]
	require.NotNil(t, stored)
	assert.Equal(t, 20, stored.SlotStepMinutes)
	assert.True(t, stored.Reminder2hEnabled)
}

func TestUpdateValidation(t *testing.T) {
	svc, _ := newService()

	cases := []struct {
		name string
		req  *models.UpdateConfigRequest
	}{
		{"zero salon", &models.UpdateConfigRequest{UserID: 1, SlotStepMinutes: 30}},
		{"disallowed step", &models.UpdateConfigRequest{UserID: 1, SalonID: 10, SlotStepMinutes: 25}},
		{"negative buffer", &models.UpdateConfigRequest{UserID: 1, SalonID: 10, SlotStepMinutes: 30, BufferMinutes: -5}},
		{"buffer too large", &models.UpdateConfigRequest{UserID: 1, SalonID: 10, SlotStepMinutes: 30, BufferMinutes: 121}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(context.Background(), tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpdateDeniedForNonManager(t *testing.T) {
	svc, repo := newService()

	_, err := svc.Update(context.Background(), &models.UpdateConfigRequest{
		UserID: 42, SalonID: 10, SlotStepMinutes: 30,
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, repo.configs)
}

package blocks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	blockRepo "github.com/m04kA/SMC-ScheduleService/internal/infra/storage/block"
	"github.com/m04kA/SMC-ScheduleService/internal/integrations/salonservice"
	"github.com/m04kA/SMC-ScheduleService/internal/service/blocks/models"
)

var monday = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeBlockRepo struct {
	blocks  map[int64]*domain.TimeBlock
	deleted []int64
}

func (f *fakeBlockRepo) GetByID(_ context.Context, id int64) (*domain.TimeBlock, error) {
	b, ok := f.blocks[id]
	if !ok {
		return nil, blockRepo.ErrBlockNotFound
	}
	return b, nil
}

func (f *fakeBlockRepo) GetWithFilter(_ context.Context, _ domain.TimeBlocksFilter) ([]*domain.TimeBlock, error) {
	out := make([]*domain.TimeBlock, 0, len(f.blocks))
	for _, b := range f.blocks {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBlockRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.blocks[id]; !ok {
		return blockRepo.ErrBlockNotFound
	}
	delete(f.blocks, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSalonClient struct {
	managerOf map[int64]bool
}

func (f *fakeSalonClient) GetMaster(_ context.Context, id int64) (*salonservice.Master, error) {
	if id != 5 {
		return nil, salonservice.ErrMasterNotFound
	}
	return &salonservice.Master{ID: 5, SalonID: 10, Name: "Анна", IsActive: true}, nil
}

func (f *fakeSalonClient) IsManager(_ context.Context, _ int64, userID int64) (bool, error) {
	return f.managerOf[userID], nil
}

func newService() (*Service, *fakeBlockRepo) {
	repo := &fakeBlockRepo{
		blocks: map[int64]*domain.TimeBlock{
			3: {
				ID: 3, SalonID: 10, MasterID: 5,
				Date: monday, StartTime: "13:00", EndTime: "14:00", Label: "обед",
				CreatedAt: monday,
			},
		},
	}
	client := &fakeSalonClient{managerOf: map[int64]bool{1: true}}
	return NewService(repo, client, nopLogger{}), repo
}

func TestListReturnsBlocks(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.List(context.Background(), &models.ListBlocksRequest{UserID: 1, MasterID: 5})
	require.NoError(t, err)

	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, int64(3), resp.Blocks[0].ID)
	assert.Equal(t, "2025-06-02", resp.Blocks[0].Date)
	assert.Equal(t, "13:00", resp.Blocks[0].StartTime)
	assert.Equal(t, "обед", resp.Blocks[0].Label)
}

func TestListDeniedForNonManager(t *testing.T) {
	svc, _ := newService()

	_, err := svc.List(context.Background(), &models.ListBlocksRequest{UserID: 42, MasterID: 5})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestListMasterNotFound(t *testing.T) {
	svc, _ := newService()

	_, err := svc.List(context.Background(), &models.ListBlocksRequest{UserID: 1, MasterID: 99})
	assert.ErrorIs(t, err, ErrMasterNotFound)
}

func TestGetByID(t *testing.T) {
	svc, _ := newService()

	resp, err := svc.GetByID(context.Background(), 3, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)

	_, err = svc.GetByID(context.Background(), 404, 1)
	assert.ErrorIs(t, err, ErrBlockNotFound)

	_, err = svc.GetByID(context.Background(), 3, 42)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDelete(t *testing.T) {
	svc, repo := newService()

	require.NoError(t, svc.Delete(context.Background(), 3, 1))
	assert.Equal(t, []int64{3}, repo.deleted)

	assert.ErrorIs(t, svc.Delete(context.Background(), 3, 1), ErrBlockNotFound)
}

func TestDeleteDeniedForNonManager(t *testing.T) {
	svc, repo := newService()

	assert.ErrorIs(t, svc.Delete(context.Background(), 3, 42), ErrAccessDenied)
	assert.Empty(t, repo.deleted)
}

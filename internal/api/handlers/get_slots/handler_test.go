package get_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ScheduleService/internal/domain"
	getSlots "github.com/m04kA/SMC-ScheduleService/internal/usecase/get_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	gotReq *getSlots.Request
	resp   *getSlots.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getSlots.Request) (*getSlots.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func doRequest(t *testing.T, uc *fakeUseCase, target string) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(uc, nopLogger{})
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/masters/{masterId}/slots", handler.Handle).Methods(http.MethodGet)

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleOK(t *testing.T) {
	uc := &fakeUseCase{
		resp: &getSlots.Response{
			SalonID:  10,
			MasterID: 5,
			Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Source:   domain.SourceMasterSchedule,
			Slots: []getSlots.Slot{
				{StartTime: "10:00", DurationMinutes: 60, Available: true},
				{StartTime: "10:30", DurationMinutes: 60, Available: false},
			},
		},
	}

	rec := doRequest(t, uc, "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=60")

	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, uc.gotReq)
	assert.Equal(t, int64(5), uc.gotReq.MasterID)
	assert.Equal(t, 60, uc.gotReq.DurationMinutes)

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-02", resp.Date)
	assert.Equal(t, "master_schedule", resp.Source)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime)
	assert.True(t, resp.Slots[0].Available)
	assert.False(t, resp.Slots[1].Available)
}

func TestHandleEmptyGridKeepsSlotsArray(t *testing.T) {
	uc := &fakeUseCase{
		resp: &getSlots.Response{
			SalonID:  10,
			MasterID: 5,
			Date:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
			Source:   domain.SourceDateOverride,
			Slots:    []getSlots.Slot{},
		},
	}

	rec := doRequest(t, uc, "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=60")

	assert.Equal(t, http.StatusOK, rec.Code)
	// Закрытый день сериализуется как пустой массив, не null
	assert.Contains(t, rec.Body.String(), `"slots":[]`)
}

func TestHandleErrors(t *testing.T) {
	cases := []struct {
		name     string
		target   string
		ucErr    error
		wantCode int
	}{
		{"invalid master id", "/api/v1/masters/abc/slots?date=2025-06-02&durationMinutes=60", nil, http.StatusBadRequest},
		{"missing date", "/api/v1/masters/5/slots?durationMinutes=60", nil, http.StatusBadRequest},
		{"bad date format", "/api/v1/masters/5/slots?date=02.06.2025&durationMinutes=60", nil, http.StatusBadRequest},
		{"missing duration", "/api/v1/masters/5/slots?date=2025-06-02", nil, http.StatusBadRequest},
		{"bad duration", "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=abc", nil, http.StatusBadRequest},
		{"master not found", "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=60", getSlots.ErrMasterNotFound, http.StatusNotFound},
		{"invalid input", "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=60", getSlots.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/api/v1/masters/5/slots?date=2025-06-02&durationMinutes=60", getSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &fakeUseCase{err: tc.ucErr}
			rec := doRequest(t, uc, tc.target)
			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

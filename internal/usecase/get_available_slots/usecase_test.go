package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotly/appointment-service/internal/domain"
	scheduleRepo "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	"github.com/slotly/appointment-service/internal/integrations/catalogservice"
	"github.com/slotly/appointment-service/pkg/types"
)

type fakeIntervalRepo struct {
	intervals []*domain.BookedInterval
	err       error
}

func (f *fakeIntervalRepo) ListByOwnerAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BookedInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.intervals, nil
}

type fakeScheduleRepo struct {
	config *domain.ScheduleConfig
	err    error
}

func (f *fakeScheduleRepo) GetByOwnerID(_ context.Context, _ int64) (*domain.ScheduleConfig, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.config, nil
}

type fakeCatalogClient struct {
	service *catalogservice.Service
	err     error
}

func (f *fakeCatalogClient) GetService(_ context.Context, _, _ int64) (*catalogservice.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.service, nil
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

var testDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 16, hour, minute, 0, 0, time.UTC)
}

func testConfig(open, close types.TimeString, interval, notice int) *domain.ScheduleConfig {
	return &domain.ScheduleConfig{
		ID:                      1,
		OwnerID:                 1,
		OpenTime:                open,
		CloseTime:               close,
		SlotIntervalMinutes:     interval,
		MinBookingNoticeMinutes: notice,
	}
}

func testService(durationMinutes int) *catalogservice.Service {
	return &catalogservice.Service{
		ID:              10,
		OwnerID:         1,
		Name:            "Haircut",
		DurationMinutes: durationMinutes,
		PriceMinorUnits: 150000,
		Currency:        "RUB",
		IsActive:        true,
	}
}

func newTestUseCase(intervals *fakeIntervalRepo, schedule *fakeScheduleRepo, catalog *fakeCatalogClient, now time.Time) *UseCase {
	uc := NewUseCase(intervals, schedule, catalog, time.UTC, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func slotStarts(slots []Slot) map[types.TimeString]bool {
	starts := make(map[types.TimeString]bool, len(slots))
	for _, slot := range slots {
		starts[slot.StartTime] = true
	}
	return starts
}

func TestExecute_FullDayGrid(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// От 09:00 до 17:30 с шагом 15 минут, последний слот целиком
	// помещается до закрытия: 17:30 + 30 минут = 18:00
	require.Len(t, resp.Slots, 35)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[len(resp.Slots)-1].StartTime)

	for _, slot := range resp.Slots {
		assert.Equal(t, 30, slot.DurationMinutes)
	}
}

func TestExecute_BookedIntervalBlocksOverlappingSlots(t *testing.T) {
	intervals := &fakeIntervalRepo{intervals: []*domain.BookedInterval{
		{ID: 1, OwnerID: 1, AppointmentID: "2d9adf01-24c7-4b9e-9f0e-93f6a1e0a001", StartAt: at(10, 0), EndAt: at(10, 30)},
	}}

	uc := newTestUseCase(
		intervals,
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// Занято [10:00, 10:30): выпадают 09:45, 10:00 и 10:15,
	// слоты 09:30 и 10:30 граничат с занятым интервалом и остаются
	require.Len(t, resp.Slots, 32)

	starts := slotStarts(resp.Slots)
	assert.True(t, starts["09:30"])
	assert.False(t, starts["09:45"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:15"])
	assert.True(t, starts["10:30"])
}

func TestExecute_MinNoticeAppliesToToday(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(10, 50),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// now=10:50 + 30 минут уведомления = 11:20, первый подходящий слот 11:30
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("11:30"), resp.Slots[0].StartTime)
	require.Len(t, resp.Slots, 25)
}

func TestExecute_MinNoticeIgnoredForFutureDates(t *testing.T) {
	tomorrow := testDate.AddDate(0, 0, 1)

	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(17, 45),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: tomorrow})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 35)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestExecute_NoticePastClosingYieldsEmptyToday(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(17, 45),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultsWhenConfigMissing(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{err: scheduleRepo.ErrConfigNotFound},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// Дефолтная конфигурация: 09:00-18:00 с шагом 30 минут
	require.Len(t, resp.Slots, 18)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("17:30"), resp.Slots[len(resp.Slots)-1].StartTime)
}

func TestExecute_OpenAfterCloseYieldsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("18:00", "09:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceLongerThanWorkingDayYieldsEmpty(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(600)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_LastSlotMustFitBeforeClose(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(60)},
		at(8, 0),
	)

	resp, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.NoError(t, err)

	// Часовая услуга: последний старт 17:00, 17:15 уже не помещается
	require.NotEmpty(t, resp.Slots)
	assert.Equal(t, types.TimeString("17:00"), resp.Slots[len(resp.Slots)-1].StartTime)
}

func TestExecute_PastDateRejected(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	yesterday := testDate.AddDate(0, 0, -1)
	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: yesterday})
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ServiceValidation(t *testing.T) {
	tests := []struct {
		name    string
		catalog *fakeCatalogClient
		wantErr error
	}{
		{
			name:    "not found in catalog",
			catalog: &fakeCatalogClient{err: catalogservice.ErrServiceNotFound},
			wantErr: ErrServiceNotFound,
		},
		{
			name:    "catalog unavailable",
			catalog: &fakeCatalogClient{err: catalogservice.ErrServiceUnavailable},
			wantErr: ErrCatalogUnavailable,
		},
		{
			name: "belongs to another owner",
			catalog: &fakeCatalogClient{service: &catalogservice.Service{
				ID: 10, OwnerID: 2, DurationMinutes: 30, IsActive: true,
			}},
			wantErr: ErrServiceNotFound,
		},
		{
			name: "not active",
			catalog: &fakeCatalogClient{service: &catalogservice.Service{
				ID: 10, OwnerID: 1, DurationMinutes: 30, IsActive: false,
			}},
			wantErr: ErrServiceNotActive,
		},
		{
			name: "zero duration",
			catalog: &fakeCatalogClient{service: &catalogservice.Service{
				ID: 10, OwnerID: 1, DurationMinutes: 0, IsActive: true,
			}},
			wantErr: ErrInvalidServiceDuration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(
				&fakeIntervalRepo{},
				&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
				tt.catalog,
				at(8, 0),
			)

			_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero owner", req: &Request{OwnerID: 0, ServiceID: 10, Date: testDate}},
		{name: "zero service", req: &Request{OwnerID: 1, ServiceID: 0, Date: testDate}},
		{name: "zero date", req: &Request{OwnerID: 1, ServiceID: 10}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_IntervalRepoFailure(t *testing.T) {
	uc := newTestUseCase(
		&fakeIntervalRepo{err: assert.AnError},
		&fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		&fakeCatalogClient{service: testService(30)},
		at(8, 0),
	)

	_, err := uc.Execute(context.Background(), &Request{OwnerID: 1, ServiceID: 10, Date: testDate})
	require.ErrorIs(t, err, ErrInternal)
}

package create_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	intervalStorage "github.com/slotly/appointment-service/internal/infra/storage/interval"
	scheduleStorage "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	"github.com/slotly/appointment-service/internal/integrations/catalogservice"
	"github.com/slotly/appointment-service/pkg/ptr"
	"github.com/slotly/appointment-service/pkg/txmanager"
	"github.com/slotly/appointment-service/pkg/types"
)

type fakeAppointmentRepo struct {
	created []*domain.Appointment
	err     error
}

func (f *fakeAppointmentRepo) Create(_ context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	stored := *appointment
	stored.CreatedAt = time.Date(2025, 6, 16, 8, 0, 0, 0, time.UTC)
	f.created = append(f.created, &stored)
	return &stored, nil
}

type fakeIntervalRepo struct {
	intervals []*domain.BookedInterval
	listErr   error
	createErr error
	created   []*domain.BookedInterval
}

func (f *fakeIntervalRepo) ListByOwnerAndRange(_ context.Context, _ int64, _, _ time.Time) ([]*domain.BookedInterval, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.intervals, nil
}

func (f *fakeIntervalRepo) Create(_ context.Context, interval *domain.BookedInterval) (*domain.BookedInterval, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	stored := *interval
	stored.ID = int64(len(f.created) + 1)
	f.created = append(f.created, &stored)
	return &stored, nil
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

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct {
	beginErr error
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx)
}

type fakeNotifier struct {
	events []notify.ScheduleChangedEvent
	err    error
}

func (f *fakeNotifier) ScheduleChanged(_ context.Context, event notify.ScheduleChangedEvent) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
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

type testEnv struct {
	appointments *fakeAppointmentRepo
	intervals    *fakeIntervalRepo
	schedule     *fakeScheduleRepo
	catalog      *fakeCatalogClient
	txManager    *fakeTxManager
	notifier     *fakeNotifier
	uc           *UseCase
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		appointments: &fakeAppointmentRepo{},
		intervals:    &fakeIntervalRepo{},
		schedule:     &fakeScheduleRepo{config: testConfig("09:00", "18:00", 15, 30)},
		catalog:      &fakeCatalogClient{service: testService(30)},
		txManager:    &fakeTxManager{},
		notifier:     &fakeNotifier{},
	}
	env.uc = NewUseCase(
		env.appointments,
		env.intervals,
		env.schedule,
		env.catalog,
		env.txManager,
		env.notifier,
		time.UTC,
		nopLogger{},
	)
	env.uc.timeProvider = fixedTime{now: now}
	return env
}

func validRequest() *Request {
	return &Request{
		CustomerID:    100,
		OwnerID:       1,
		ServiceID:     10,
		Date:          testDate,
		StartTime:     "10:00",
		CustomerName:  "Ivan Petrov",
		CustomerPhone: "+79991234567",
		CustomerEmail: ptr.Ptr("ivan@example.com"),
	}
}

func TestExecute_Success(t *testing.T) {
	env := newTestEnv(at(8, 0))

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	_, err = uuid.Parse(resp.ID)
	require.NoError(t, err, "appointment id must be a valid uuid")

	assert.Equal(t, int64(1), resp.OwnerID)
	assert.Equal(t, int64(100), resp.CustomerID)
	assert.Equal(t, int64(10), resp.ServiceID)
	assert.Equal(t, at(10, 0), resp.StartAt)
	assert.Equal(t, at(10, 30), resp.EndAt)

	// Снапшот услуги скопирован из каталога
	assert.Equal(t, "Haircut", resp.ServiceName)
	assert.Equal(t, int64(150000), resp.ServicePriceMinorUnits)
	assert.Equal(t, 30, resp.ServiceDurationMinutes)

	// Запись и интервал созданы вместе и ссылаются друг на друга
	require.Len(t, env.appointments.created, 1)
	require.Len(t, env.intervals.created, 1)
	interval := env.intervals.created[0]
	assert.Equal(t, resp.ID, interval.AppointmentID)
	assert.Equal(t, at(10, 0), interval.StartAt)
	assert.Equal(t, at(10, 30), interval.EndAt)

	// Событие изменения расписания опубликовано
	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notify.ScheduleChangedEvent{
		OwnerID: 1,
		Date:    "2025-06-16",
		Reason:  notify.ReasonBooked,
	}, env.notifier.events[0])
}

func TestExecute_ConflictOnRecheck(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.intervals.intervals = []*domain.BookedInterval{
		{ID: 1, OwnerID: 1, AppointmentID: uuid.New().String(), StartAt: at(10, 0), EndAt: at(10, 30)},
	}

	req := validRequest()
	req.StartTime = "10:15"

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotConflict)

	// До вставки дело не дошло
	assert.Empty(t, env.appointments.created)
	assert.Empty(t, env.intervals.created)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_BackToBackSlotAllowed(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.intervals.intervals = []*domain.BookedInterval{
		{ID: 1, OwnerID: 1, AppointmentID: uuid.New().String(), StartAt: at(10, 0), EndAt: at(10, 30)},
	}

	// Слот начинается ровно в момент окончания занятого интервала
	req := validRequest()
	req.StartTime = "10:30"

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, at(10, 30), resp.StartAt)
}

func TestExecute_ConflictOnExclusionConstraint(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.intervals.createErr = fmt.Errorf("%w: Create - owner_id=1", intervalStorage.ErrIntervalConflict)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotConflict)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_SlotAlignment(t *testing.T) {
	tests := []struct {
		name      string
		open      types.TimeString
		interval  int
		startTime types.TimeString
		wantErr   error
	}{
		{name: "on grid", open: "09:00", interval: 15, startTime: "10:15"},
		{name: "off grid", open: "09:00", interval: 15, startTime: "10:05", wantErr: ErrSlotNotAligned},
		{name: "grid anchored at opening", open: "09:30", interval: 30, startTime: "10:30"},
		{name: "off grid anchored at opening", open: "09:30", interval: 30, startTime: "10:45", wantErr: ErrSlotNotAligned},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(at(8, 0))
			env.schedule.config = testConfig(tt.open, "18:00", tt.interval, 30)

			req := validRequest()
			req.StartTime = tt.startTime

			_, err := env.uc.Execute(context.Background(), req)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestExecute_OutsideBusinessHours(t *testing.T) {
	tests := []struct {
		name      string
		startTime types.TimeString
	}{
		{name: "before opening", startTime: "08:45"},
		{name: "ends after closing", startTime: "17:45"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(at(8, 0))

			req := validRequest()
			req.StartTime = tt.startTime

			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrOutsideBusinessHours)
		})
	}
}

func TestExecute_LegacyConfigWithoutWorkingHours(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.schedule.config = testConfig("18:00", "09:00", 15, 30)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrOutsideBusinessHours)
}

func TestExecute_MinNotice(t *testing.T) {
	env := newTestEnv(at(10, 50))

	req := validRequest()
	req.StartTime = "11:00"

	// now=10:50 + 30 минут уведомления = 11:20, слот 11:00 уже недоступен
	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrTooLateToBook)

	req.StartTime = "11:30"
	_, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_MinNoticeIgnoredForFutureDates(t *testing.T) {
	env := newTestEnv(at(17, 45))

	req := validRequest()
	req.Date = testDate.AddDate(0, 0, 1)
	req.StartTime = "09:00"

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv(at(8, 0))

	req := validRequest()
	req.Date = testDate.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DefaultsWhenConfigMissing(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.schedule.config = nil
	env.schedule.err = scheduleStorage.ErrConfigNotFound

	// Дефолтная сетка 30 минут от 09:00
	req := validRequest()
	req.StartTime = "10:00"

	_, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	req.StartTime = "10:15"
	_, err = env.uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrSlotNotAligned)
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
			wantErr: ErrOwnerMismatch,
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
			env := newTestEnv(at(8, 0))
			env.catalog = tt.catalog
			env.uc.catalogClient = tt.catalog

			_, err := env.uc.Execute(context.Background(), validRequest())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *Request)
	}{
		{name: "zero customer", mutate: func(req *Request) { req.CustomerID = 0 }},
		{name: "zero owner", mutate: func(req *Request) { req.OwnerID = 0 }},
		{name: "zero service", mutate: func(req *Request) { req.ServiceID = 0 }},
		{name: "zero date", mutate: func(req *Request) { req.Date = time.Time{} }},
		{name: "empty start time", mutate: func(req *Request) { req.StartTime = "" }},
		{name: "malformed start time", mutate: func(req *Request) { req.StartTime = "25:99" }},
		{name: "empty name", mutate: func(req *Request) { req.CustomerName = "  " }},
		{name: "empty phone", mutate: func(req *Request) { req.CustomerPhone = "" }},
		{name: "malformed email", mutate: func(req *Request) { req.CustomerEmail = ptr.Ptr("not-an-email") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(at(8, 0))

			req := validRequest()
			tt.mutate(req)

			_, err := env.uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_TransactionFailureMapsToStoreUnavailable(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.txManager.beginErr = fmt.Errorf("%w: connection refused", txmanager.ErrBeginTransaction)

	_, err := env.uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_NotifyFailureDoesNotFailBooking(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.notifier.err = assert.AnError

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, resp)
	require.Len(t, env.appointments.created, 1)
}

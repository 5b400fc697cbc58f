package cancel_appointment

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	appointmentStorage "github.com/slotly/appointment-service/internal/infra/storage/appointment"
	"github.com/slotly/appointment-service/pkg/txmanager"
)

const testAppointmentID = "0b0d76a5-6b79-4ad7-9a3c-7b8f4ad22a11"

type fakeAppointmentRepo struct {
	appointment *domain.Appointment
	getErr      error
	deleteErr   error
	deleted     []string
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) Delete(_ context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeIntervalRepo struct {
	deletedCount int64
	err          error
	calls        []string
}

func (f *fakeIntervalRepo) DeleteByAppointmentID(_ context.Context, appointmentID string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.calls = append(f.calls, appointmentID)
	return f.deletedCount, nil
}

type fakeTxManager struct {
	beginErr error
}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
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

func at(hour, minute int) time.Time {
	return time.Date(2025, 6, 16, hour, minute, 0, 0, time.UTC)
}

func testAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:                     testAppointmentID,
		OwnerID:                1,
		CustomerID:             100,
		ServiceID:              10,
		ServiceName:            "Haircut",
		ServicePriceMinorUnits: 150000,
		ServiceDurationMinutes: 30,
		StartAt:                at(10, 0),
		EndAt:                  at(10, 30),
		CustomerName:           "Ivan Petrov",
		CustomerPhone:          "+79991234567",
	}
}

type testEnv struct {
	appointments *fakeAppointmentRepo
	intervals    *fakeIntervalRepo
	txManager    *fakeTxManager
	notifier     *fakeNotifier
	uc           *UseCase
}

func newTestEnv(now time.Time) *testEnv {
	env := &testEnv{
		appointments: &fakeAppointmentRepo{appointment: testAppointment()},
		intervals:    &fakeIntervalRepo{deletedCount: 1},
		txManager:    &fakeTxManager{},
		notifier:     &fakeNotifier{},
	}
	env.uc = NewUseCase(
		env.appointments,
		env.intervals,
		env.txManager,
		env.notifier,
		time.UTC,
		nopLogger{},
	)
	env.uc.timeProvider = fixedTime{now: now}
	return env
}

func customerRequest() *Request {
	return &Request{UserID: 100, Role: domain.RoleCustomer, AppointmentID: testAppointmentID}
}

func TestExecute_CustomerCancelsOwnAppointment(t *testing.T) {
	env := newTestEnv(at(8, 0))

	err := env.uc.Execute(context.Background(), customerRequest())
	require.NoError(t, err)

	// Интервал и запись удалены вместе
	require.Equal(t, []string{testAppointmentID}, env.intervals.calls)
	require.Equal(t, []string{testAppointmentID}, env.appointments.deleted)

	// Событие изменения расписания опубликовано
	require.Len(t, env.notifier.events, 1)
	assert.Equal(t, notify.ScheduleChangedEvent{
		OwnerID: 1,
		Date:    "2025-06-16",
		Reason:  notify.ReasonCancelled,
	}, env.notifier.events[0])
}

func TestExecute_OwnerCancelsAppointment(t *testing.T) {
	env := newTestEnv(at(8, 0))

	err := env.uc.Execute(context.Background(), &Request{
		UserID: 1, Role: domain.RoleOwner, AppointmentID: testAppointmentID,
	})
	require.NoError(t, err)
	require.Len(t, env.appointments.deleted, 1)
}

func TestExecute_OwnerCancelsPastAppointment(t *testing.T) {
	env := newTestEnv(at(12, 0))

	err := env.uc.Execute(context.Background(), &Request{
		UserID: 1, Role: domain.RoleOwner, AppointmentID: testAppointmentID,
	})
	require.NoError(t, err)
}

func TestExecute_CustomerCannotCancelPastAppointment(t *testing.T) {
	env := newTestEnv(at(12, 0))

	err := env.uc.Execute(context.Background(), customerRequest())
	require.ErrorIs(t, err, ErrCannotCancelPast)
	assert.Empty(t, env.appointments.deleted)
	assert.Empty(t, env.notifier.events)
}

func TestExecute_AccessDenied(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "customer does not own the appointment",
			req:  &Request{UserID: 200, Role: domain.RoleCustomer, AppointmentID: testAppointmentID},
		},
		{
			name: "owner of another schedule",
			req:  &Request{UserID: 2, Role: domain.RoleOwner, AppointmentID: testAppointmentID},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(at(8, 0))

			err := env.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrAccessDenied)
			assert.Empty(t, env.appointments.deleted)
		})
	}
}

func TestExecute_NotFound(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.appointments.getErr = appointmentStorage.ErrAppointmentNotFound

	err := env.uc.Execute(context.Background(), customerRequest())
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestExecute_MissingIntervalStillCancels(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.intervals.deletedCount = 0

	err := env.uc.Execute(context.Background(), customerRequest())
	require.NoError(t, err)
	require.Len(t, env.appointments.deleted, 1)
	require.Len(t, env.notifier.events, 1)
}

func TestExecute_TransactionFailureMapsToStoreUnavailable(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.txManager.beginErr = fmt.Errorf("%w: connection refused", txmanager.ErrBeginTransaction)

	err := env.uc.Execute(context.Background(), customerRequest())
	require.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "zero user", req: &Request{UserID: 0, Role: domain.RoleCustomer, AppointmentID: testAppointmentID}},
		{name: "unknown role", req: &Request{UserID: 100, Role: "manager", AppointmentID: testAppointmentID}},
		{name: "malformed appointment id", req: &Request{UserID: 100, Role: domain.RoleCustomer, AppointmentID: "not-a-uuid"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(at(8, 0))

			err := env.uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotifyFailureDoesNotFailCancel(t *testing.T) {
	env := newTestEnv(at(8, 0))
	env.notifier.err = assert.AnError

	err := env.uc.Execute(context.Background(), customerRequest())
	require.NoError(t, err)
	require.Len(t, env.appointments.deleted, 1)
}

package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slotly/appointment-service/internal/domain"
	appointmentStorage "github.com/slotly/appointment-service/internal/infra/storage/appointment"
	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

const testAppointmentID = "0b0d76a5-6b79-4ad7-9a3c-7b8f4ad22a11"

type fakeAppointmentRepo struct {
	appointment  *domain.Appointment
	appointments []*domain.Appointment
	err          error
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, _ string) (*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointment, nil
}

func (f *fakeAppointmentRepo) GetByCustomerID(_ context.Context, _ int64, _ *time.Time) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

func (f *fakeAppointmentRepo) GetByOwnerWithFilter(_ context.Context, _ domain.OwnerScheduleFilter) ([]*domain.Appointment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.appointments, nil
}

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

func newTestService(appointments *fakeAppointmentRepo, intervals *fakeIntervalRepo) *Service {
	return NewService(appointments, intervals, nopLogger{})
}

func TestGetByID_Access(t *testing.T) {
	tests := []struct {
		name    string
		userID  int64
		role    domain.UserRole
		wantErr error
	}{
		{name: "customer sees own appointment", userID: 100, role: domain.RoleCustomer},
		{name: "owner sees appointment in own schedule", userID: 1, role: domain.RoleOwner},
		{name: "another customer denied", userID: 200, role: domain.RoleCustomer, wantErr: ErrAccessDenied},
		{name: "another owner denied", userID: 2, role: domain.RoleOwner, wantErr: ErrAccessDenied},
		{name: "unknown role denied", userID: 100, role: "manager", wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeAppointmentRepo{appointment: testAppointment()}, &fakeIntervalRepo{})

			resp, err := svc.GetByID(context.Background(), testAppointmentID, tt.userID, tt.role)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, testAppointmentID, resp.ID)
			assert.Equal(t, "Haircut", resp.ServiceName)
			assert.Equal(t, int64(150000), resp.ServicePriceMinorUnits)
			assert.Equal(t, at(10, 0), resp.StartAt)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{err: appointmentStorage.ErrAppointmentNotFound}, &fakeIntervalRepo{})

	_, err := svc.GetByID(context.Background(), testAppointmentID, 100, domain.RoleCustomer)
	require.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestGetUserAppointments(t *testing.T) {
	repo := &fakeAppointmentRepo{appointments: []*domain.Appointment{testAppointment()}}
	svc := newTestService(repo, &fakeIntervalRepo{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       100,
		Role:         domain.RoleCustomer,
		TargetUserID: 100,
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)
	assert.Equal(t, testAppointmentID, resp.Appointments[0].ID)
}

func TestGetUserAppointments_OnlyOwnHistory(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, &fakeIntervalRepo{})

	_, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       100,
		Role:         domain.RoleCustomer,
		TargetUserID: 200,
	})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetUserAppointments_EmptyHistory(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{}, &fakeIntervalRepo{})

	resp, err := svc.GetUserAppointments(context.Background(), &models.GetUserAppointmentsRequest{
		UserID:       100,
		Role:         domain.RoleCustomer,
		TargetUserID: 100,
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Appointments)
	assert.Empty(t, resp.Appointments)
}

func TestGetOwnerSchedule(t *testing.T) {
	appointments := &fakeAppointmentRepo{appointments: []*domain.Appointment{testAppointment()}}
	intervals := &fakeIntervalRepo{intervals: []*domain.BookedInterval{
		{ID: 1, OwnerID: 1, AppointmentID: testAppointmentID, StartAt: at(10, 0), EndAt: at(10, 30)},
		{ID: 2, OwnerID: 1, AppointmentID: "7f8c9e4a-0a4b-4f4e-8a6e-5e7f2b1c0d02", StartAt: at(10, 30), EndAt: at(11, 0)},
		{ID: 3, OwnerID: 1, AppointmentID: "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c03", StartAt: at(14, 0), EndAt: at(15, 0)},
	}}
	svc := newTestService(appointments, intervals)

	resp, err := svc.GetOwnerSchedule(context.Background(), &models.GetOwnerScheduleRequest{
		UserID:  1,
		Role:    domain.RoleOwner,
		OwnerID: 1,
		From:    at(0, 0),
		To:      at(0, 0).AddDate(0, 0, 1),
	})
	require.NoError(t, err)
	require.Len(t, resp.Appointments, 1)

	// Соседние интервалы 10:00-10:30 и 10:30-11:00 склеены в один блок
	require.Len(t, resp.BusyBlocks, 2)
	assert.Equal(t, models.BusyBlock{StartAt: at(10, 0), EndAt: at(11, 0)}, resp.BusyBlocks[0])
	assert.Equal(t, models.BusyBlock{StartAt: at(14, 0), EndAt: at(15, 0)}, resp.BusyBlocks[1])
}

func TestGetOwnerSchedule_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *models.GetOwnerScheduleRequest
		wantErr error
	}{
		{
			name: "customer role denied",
			req: &models.GetOwnerScheduleRequest{
				UserID: 1, Role: domain.RoleCustomer, OwnerID: 1,
				From: at(0, 0), To: at(0, 0).AddDate(0, 0, 1),
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "another owner denied",
			req: &models.GetOwnerScheduleRequest{
				UserID: 2, Role: domain.RoleOwner, OwnerID: 1,
				From: at(0, 0), To: at(0, 0).AddDate(0, 0, 1),
			},
			wantErr: ErrAccessDenied,
		},
		{
			name: "reversed range",
			req: &models.GetOwnerScheduleRequest{
				UserID: 1, Role: domain.RoleOwner, OwnerID: 1,
				From: at(0, 0).AddDate(0, 0, 1), To: at(0, 0),
			},
			wantErr: ErrInvalidTimeRange,
		},
		{
			name: "missing bounds",
			req: &models.GetOwnerScheduleRequest{
				UserID: 1, Role: domain.RoleOwner, OwnerID: 1,
			},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&fakeAppointmentRepo{}, &fakeIntervalRepo{})

			_, err := svc.GetOwnerSchedule(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetOwnerSchedule_RepositoryFailure(t *testing.T) {
	svc := newTestService(&fakeAppointmentRepo{err: assert.AnError}, &fakeIntervalRepo{})

	_, err := svc.GetOwnerSchedule(context.Background(), &models.GetOwnerScheduleRequest{
		UserID:  1,
		Role:    domain.RoleOwner,
		OwnerID: 1,
		From:    at(0, 0),
		To:      at(0, 0).AddDate(0, 0, 1),
	})
	require.ErrorIs(t, err, ErrInternal)
}

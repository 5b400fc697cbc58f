package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotly/appointment-service/internal/domain"
	appointmentRepo "github.com/slotly/appointment-service/internal/infra/storage/appointment"
	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

// Service сервис для чтения записей
type Service struct {
	appointmentRepo AppointmentRepository
	intervalRepo    IntervalRepository
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	intervalRepo IntervalRepository,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		intervalRepo:    intervalRepo,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Запись видят только записавшийся клиент и владелец расписания.
func (s *Service) GetByID(ctx context.Context, id string, userID int64, role domain.UserRole) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for user=%d", id, userID)

	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%s not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !canSeeAppointment(appointment, userID, role) {
		s.logger.Warn("GetByID: access denied for user=%d to appointment id=%s", userID, id)
		return nil, ErrAccessDenied
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetUserAppointments получает историю записей пользователя.
// Пользователь видит только собственную историю.
func (s *Service) GetUserAppointments(ctx context.Context, req *models.GetUserAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("GetUserAppointments: fetching appointments for user=%d requested by user=%d",
		req.TargetUserID, req.UserID)

	if req.TargetUserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.UserID != req.TargetUserID {
		s.logger.Warn("GetUserAppointments: user=%d cannot view history of user=%d", req.UserID, req.TargetUserID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.GetByCustomerID(ctx, req.TargetUserID, req.From)
	if err != nil {
		s.logger.Error("GetUserAppointments: repository error for user=%d: %v", req.TargetUserID, err)
		return nil, fmt.Errorf("%w: GetUserAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserAppointments: successfully fetched %d appointments for user=%d",
		len(appointments), req.TargetUserID)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetOwnerSchedule получает календарь владельца на окно [From, To):
// записи диапазона плюс склеенные занятые отрезки.
// Доступно только самому владельцу.
func (s *Service) GetOwnerSchedule(ctx context.Context, req *models.GetOwnerScheduleRequest) (*models.OwnerScheduleResponse, error) {
	s.logger.Info("GetOwnerSchedule: fetching schedule for owner=%d, from=%s, to=%s",
		req.OwnerID, req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.From.IsZero() || req.To.IsZero() {
		return nil, fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}

	if !req.From.Before(req.To) {
		s.logger.Warn("GetOwnerSchedule: invalid range for owner=%d", req.OwnerID)
		return nil, ErrInvalidTimeRange
	}

	if req.Role != domain.RoleOwner || req.UserID != req.OwnerID {
		s.logger.Warn("GetOwnerSchedule: access denied for user=%d to schedule of owner=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	appointments, err := s.appointmentRepo.GetByOwnerWithFilter(ctx, domain.OwnerScheduleFilter{
		OwnerID: req.OwnerID,
		From:    &req.From,
		To:      &req.To,
	})
	if err != nil {
		s.logger.Error("GetOwnerSchedule: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerSchedule - repository error: %v", ErrInternal, err)
	}

	booked, err := s.intervalRepo.ListByOwnerAndRange(ctx, req.OwnerID, req.From, req.To)
	if err != nil {
		s.logger.Error("GetOwnerSchedule: failed to get booked intervals for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: GetOwnerSchedule - failed to get booked intervals: %v", ErrInternal, err)
	}

	busy := domain.NewIntervalSet()
	for _, interval := range booked {
		if err := busy.Add(interval.StartAt, interval.EndAt); err != nil {
			s.logger.Warn("GetOwnerSchedule: skipping malformed interval id=%d: %v", interval.ID, err)
		}
	}

	s.logger.Info("GetOwnerSchedule: successfully fetched %d appointments for owner=%d",
		len(appointments), req.OwnerID)

	return &models.OwnerScheduleResponse{
		OwnerID:      req.OwnerID,
		From:         req.From,
		To:           req.To,
		Appointments: models.FromDomainAppointmentList(appointments).Appointments,
		BusyBlocks:   models.FromDomainIntervals(busy.Merged()),
	}, nil
}

// canSeeAppointment проверяет, что пользователь имеет доступ к записи
func canSeeAppointment(appointment *domain.Appointment, userID int64, role domain.UserRole) bool {
	switch role {
	case domain.RoleCustomer:
		return appointment.CustomerID == userID
	case domain.RoleOwner:
		return appointment.OwnerID == userID
	default:
		return false
	}
}

package cancel_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	appointmentRepo "github.com/slotly/appointment-service/internal/infra/storage/appointment"
	"github.com/slotly/appointment-service/pkg/txmanager"
)

// UseCase use case для отмены записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	intervalRepo    IntervalRepository
	txManager       TransactionManager
	notifier        ScheduleNotifier
	timeProvider    TimeProvider
	loc             *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	intervalRepo IntervalRepository,
	txManager TransactionManager,
	notifier ScheduleNotifier,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		intervalRepo:    intervalRepo,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// Execute выполняет use case отмены записи.
// Запись и ее занятый интервал удаляются в одной транзакции: освободившийся
// слот не должен появиться раньше, чем исчезнет сама запись, и наоборот.
func (uc *UseCase) Execute(ctx context.Context, req *Request) error {
	uc.logger.Info("CancelAppointment: appointment=%s, user=%d, role=%s", req.AppointmentID, req.UserID, req.Role)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CancelAppointment: validation failed: %v", err)
		return err
	}

	// 2. Текущее время в таймзоне сервиса
	now := uc.timeProvider.Now().In(uc.loc)

	var appointment *domain.Appointment

	// 3. Атомарное удаление записи вместе с занятым интервалом
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error

		// 3.1. Загружаем запись
		appointment, err = uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%s not found", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to get appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}

		// 3.2. Проверяем права на отмену
		if err := authorizeCancel(appointment, req, now); err != nil {
			uc.logger.Warn("CancelAppointment: user=%d cannot cancel appointment id=%s: %v",
				req.UserID, req.AppointmentID, err)
			return err
		}

		// 3.3. Освобождаем интервал
		deleted, err := uc.intervalRepo.DeleteByAppointmentID(txCtx, req.AppointmentID)
		if err != nil {
			uc.logger.Error("CancelAppointment: failed to delete booked interval: %v", err)
			return fmt.Errorf("%w: failed to delete booked interval: %v", ErrInternal, err)
		}

		// Запись без интервала - нарушение инварианта, но отмена его как раз
		// устраняет, поэтому продолжаем
		if deleted == 0 {
			uc.logger.Warn("CancelAppointment: appointment id=%s had no booked interval", req.AppointmentID)
		}

		// 3.4. Удаляем саму запись
		if err := uc.appointmentRepo.Delete(txCtx, req.AppointmentID); err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("CancelAppointment: appointment id=%s disappeared during cancel", req.AppointmentID)
				return ErrAppointmentNotFound
			}
			uc.logger.Error("CancelAppointment: failed to delete appointment id=%s: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Ошибки транзакционного слоя: база недоступна либо исход коммита неизвестен
		if errors.Is(err, txmanager.ErrBeginTransaction) || errors.Is(err, txmanager.ErrCommitTransaction) {
			uc.logger.Error("CancelAppointment: transaction failed: %v", err)
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return err
	}

	uc.logger.Info("CancelAppointment: successfully cancelled appointment id=%s", req.AppointmentID)

	// 4. Публикуем событие изменения расписания (best effort)
	if err := uc.notifier.ScheduleChanged(ctx, notify.ScheduleChangedEvent{
		OwnerID: appointment.OwnerID,
		Date:    appointment.StartAt.In(uc.loc).Format(domain.DateFormat),
		Reason:  notify.ReasonCancelled,
	}); err != nil {
		uc.logger.Warn("CancelAppointment: failed to publish schedule change: %v", err)
	}

	return nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !req.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}

	if _, err := uuid.Parse(req.AppointmentID); err != nil {
		return fmt.Errorf("%w: appointmentID must be a valid uuid", ErrInvalidInput)
	}

	return nil
}

// authorizeCancel проверяет права на отмену записи.
// Клиент отменяет только свои будущие записи, владелец расписания -
// любые записи к себе, включая прошедшие.
func authorizeCancel(appointment *domain.Appointment, req *Request, now time.Time) error {
	switch req.Role {
	case domain.RoleCustomer:
		if appointment.CustomerID != req.UserID {
			return ErrAccessDenied
		}
		if appointment.IsPast(now) {
			return ErrCannotCancelPast
		}
		return nil

	case domain.RoleOwner:
		if appointment.OwnerID != req.UserID {
			return ErrAccessDenied
		}
		return nil

	default:
		return ErrAccessDenied
	}
}

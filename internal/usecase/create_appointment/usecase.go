package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	intervalRepo "github.com/slotly/appointment-service/internal/infra/storage/interval"
	scheduleRepo "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	catalogClient "github.com/slotly/appointment-service/internal/integrations/catalogservice"
	"github.com/slotly/appointment-service/pkg/txmanager"
)

// UseCase use case для создания записи
type UseCase struct {
	appointmentRepo AppointmentRepository
	intervalRepo    IntervalRepository
	scheduleRepo    ScheduleRepository
	catalogClient   CatalogServiceClient
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
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	txManager TransactionManager,
	notifier ScheduleNotifier,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		intervalRepo:    intervalRepo,
		scheduleRepo:    scheduleRepo,
		catalogClient:   catalogClient,
		txManager:       txManager,
		notifier:        notifier,
		timeProvider:    &RealTimeProvider{},
		loc:             loc,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка занятости и вставка выполняются в сериализуемой транзакции,
// чтобы из двух параллельных записей на один слот прошла только одна.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: customer=%d, owner=%d, service=%d, date=%s, time=%s",
		req.CustomerID, req.OwnerID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне сервиса
	now := uc.timeProvider.Now().In(uc.loc)

	// 3. Получаем услугу из каталога и проверяем снапшот
	service, err := uc.catalogClient.GetService(ctx, req.OwnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found for owner id=%d", req.ServiceID, req.OwnerID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrServiceUnavailable) {
			uc.logger.Error("CreateAppointment: catalog unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service, req.OwnerID); err != nil {
		uc.logger.Warn("CreateAppointment: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	startAt := req.StartTime.At(req.Date, uc.loc)
	endAt := startAt.Add(time.Duration(service.DurationMinutes) * time.Minute)

	var result *domain.Appointment

	// 4. Проверка занятости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Конфигурация расписания владельца, при отсутствии дефолтная
		config, err := uc.scheduleRepo.GetByOwnerID(txCtx, req.OwnerID)
		if err != nil {
			if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
				uc.logger.Error("CreateAppointment: failed to get schedule config: %v", err)
				return fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
			}
			config = domain.DefaultScheduleConfig(req.OwnerID)
			uc.logger.Info("CreateAppointment: using default schedule config for owner=%d", req.OwnerID)
		}

		// 4.2. Дата не в прошлом
		if err := validateDate(req.Date, now); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 4.3. Слот целиком в рабочих часах
		if err := validateSlotWithinHours(config, req.StartTime, service.DurationMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: working hours validation failed: %v", err)
			return err
		}

		// 4.4. Начало слота на сетке расписания
		if err := validateSlotAlignment(config, req.Date, req.StartTime, uc.loc); err != nil {
			uc.logger.Warn("CreateAppointment: alignment validation failed: %v", err)
			return err
		}

		// 4.5. Минимальное уведомление
		if err := validateBookingNotice(req.Date, req.StartTime, now, config.MinBookingNoticeMinutes, uc.loc); err != nil {
			uc.logger.Warn("CreateAppointment: notice validation failed: %v", err)
			return err
		}

		// 4.6. Перечитываем занятые интервалы дня с блокировкой FOR UPDATE
		dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.loc)
		dayEnd := dayStart.AddDate(0, 0, 1)

		booked, err := uc.intervalRepo.ListByOwnerAndRange(txCtx, req.OwnerID, dayStart, dayEnd)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get booked intervals: %v", err)
			return fmt.Errorf("%w: failed to get booked intervals: %v", ErrInternal, err)
		}

		busy := domain.NewIntervalSet()
		for _, interval := range booked {
			if err := busy.Add(interval.StartAt, interval.EndAt); err != nil {
				uc.logger.Warn("CreateAppointment: skipping malformed interval id=%d: %v", interval.ID, err)
			}
		}

		candidate, err := domain.NewInterval(startAt, endAt)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		if busy.Overlaps(candidate) {
			uc.logger.Warn("CreateAppointment: slot [%s, %s) is already booked for owner=%d",
				req.StartTime, endAt.In(uc.loc).Format(domain.TimeFormat), req.OwnerID)
			return ErrSlotConflict
		}

		// 4.7. Создаем запись со снапшотом услуги
		appointment := &domain.Appointment{
			ID:         uuid.New().String(),
			OwnerID:    req.OwnerID,
			CustomerID: req.CustomerID,
			ServiceID:  service.ID,
			// Снапшот услуги на момент записи
			ServiceName:            service.Name,
			ServicePriceMinorUnits: service.PriceMinorUnits,
			ServiceDurationMinutes: service.DurationMinutes,
			StartAt:                startAt,
			EndAt:                  endAt,
			CustomerName:           req.CustomerName,
			CustomerPhone:          req.CustomerPhone,
			CustomerEmail:          req.CustomerEmail,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		// 4.8. Занимаем интервал. Exclusion constraint в базе - второй рубеж:
		// параллельная вставка на пересекающийся слот получит ErrIntervalConflict.
		if _, err := uc.intervalRepo.Create(txCtx, &domain.BookedInterval{
			OwnerID:       req.OwnerID,
			AppointmentID: created.ID,
			StartAt:       startAt,
			EndAt:         endAt,
		}); err != nil {
			if errors.Is(err, intervalRepo.ErrIntervalConflict) {
				uc.logger.Warn("CreateAppointment: interval conflict for owner=%d at %s", req.OwnerID, req.StartTime)
				return ErrSlotConflict
			}
			uc.logger.Error("CreateAppointment: failed to create booked interval: %v", err)
			return fmt.Errorf("%w: failed to create booked interval: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		// Ошибки транзакционного слоя: база недоступна либо исход коммита
		// неизвестен. Повторять создание на этом уровне нельзя.
		if errors.Is(err, txmanager.ErrBeginTransaction) || errors.Is(err, txmanager.ErrCommitTransaction) {
			uc.logger.Error("CreateAppointment: transaction failed: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s", result.ID)

	// 5. Публикуем событие изменения расписания (best effort)
	if err := uc.notifier.ScheduleChanged(ctx, notify.ScheduleChangedEvent{
		OwnerID: req.OwnerID,
		Date:    req.Date.Format(domain.DateFormat),
		Reason:  notify.ReasonBooked,
	}); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish schedule change: %v", err)
	}

	return &Response{
		ID:                     result.ID,
		OwnerID:                result.OwnerID,
		CustomerID:             result.CustomerID,
		ServiceID:              result.ServiceID,
		Date:                   req.Date,
		StartTime:              req.StartTime,
		StartAt:                result.StartAt,
		EndAt:                  result.EndAt,
		ServiceName:            result.ServiceName,
		ServicePriceMinorUnits: result.ServicePriceMinorUnits,
		ServiceDurationMinutes: result.ServiceDurationMinutes,
		CustomerName:           result.CustomerName,
		CustomerPhone:          result.CustomerPhone,
		CustomerEmail:          result.CustomerEmail,
		CreatedAt:              result.CreatedAt,
	}, nil
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	scheduleRepo "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	catalogClient "github.com/slotly/appointment-service/internal/integrations/catalogservice"
)

// UseCase use case для получения доступных слотов на день
type UseCase struct {
	intervalRepo  IntervalRepository
	scheduleRepo  ScheduleRepository
	catalogClient CatalogServiceClient
	timeProvider  TimeProvider
	loc           *time.Location
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	intervalRepo IntervalRepository,
	scheduleRepo ScheduleRepository,
	catalogClient CatalogServiceClient,
	loc *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		intervalRepo:  intervalRepo,
		scheduleRepo:  scheduleRepo,
		catalogClient: catalogClient,
		timeProvider:  &RealTimeProvider{},
		loc:           loc,
		logger:        logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: owner=%d, service=%d, date=%s",
		req.OwnerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время в таймзоне сервиса
	now := uc.timeProvider.Now().In(uc.loc)

	// 3. Дата не должна быть в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date %s is in the past", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 4. Получаем услугу из каталога
	service, err := uc.catalogClient.GetService(ctx, req.OwnerID, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found for owner id=%d", req.ServiceID, req.OwnerID)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, catalogClient.ErrServiceUnavailable) {
			uc.logger.Error("GetAvailableSlots: catalog unavailable: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 5. Проверяем снапшот услуги
	if err := validateService(service, req.OwnerID); err != nil {
		uc.logger.Warn("GetAvailableSlots: service id=%d rejected: %v", req.ServiceID, err)
		return nil, err
	}

	// 6. Конфигурация расписания владельца, при отсутствии используем дефолтную
	config, err := uc.scheduleRepo.GetByOwnerID(ctx, req.OwnerID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get schedule config: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule config: %v", ErrInternal, err)
		}
		config = domain.DefaultScheduleConfig(req.OwnerID)
		uc.logger.Info("GetAvailableSlots: using default schedule config for owner=%d", req.OwnerID)
	}

	// 7. Генерируем кандидатов с учетом минимального уведомления
	candidates := generateTimeSlots(config, service.DurationMinutes, req.Date, now, uc.loc)

	// 8. Загружаем занятые интервалы дня и убираем пересечения
	dayStart := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	booked, err := uc.intervalRepo.ListByOwnerAndRange(ctx, req.OwnerID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked intervals: %v", err)
		return nil, fmt.Errorf("%w: failed to get booked intervals: %v", ErrInternal, err)
	}

	busy := domain.NewIntervalSet()
	for _, interval := range booked {
		if err := busy.Add(interval.StartAt, interval.EndAt); err != nil {
			uc.logger.Warn("GetAvailableSlots: skipping malformed interval id=%d: %v", interval.ID, err)
		}
	}

	slots := filterBookedSlots(candidates, service.DurationMinutes, req.Date, uc.loc, busy)

	uc.logger.Info("GetAvailableSlots: %d slots available for owner=%d, service=%d, date=%s",
		len(slots), req.OwnerID, req.ServiceID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:      req.Date,
		OwnerID:   req.OwnerID,
		ServiceID: req.ServiceID,
		Slots:     slots,
	}, nil
}

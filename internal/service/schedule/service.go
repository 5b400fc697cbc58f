package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/infra/notify"
	scheduleRepo "github.com/slotly/appointment-service/internal/infra/storage/schedule"
	"github.com/slotly/appointment-service/internal/service/schedule/models"
	"github.com/slotly/appointment-service/pkg/types"
)

// Service сервис для работы с конфигурацией расписания
type Service struct {
	scheduleRepo ScheduleRepository
	notifier     ScheduleNotifier
	logger       Logger
}

// NewService создает новый экземпляр сервиса конфигурации расписания
func NewService(scheduleRepo ScheduleRepository, notifier ScheduleNotifier, logger Logger) *Service {
	return &Service{
		scheduleRepo: scheduleRepo,
		notifier:     notifier,
		logger:       logger,
	}
}

// GetConfig получает конфигурацию расписания владельца.
// Публичное чтение; при отсутствии сохраненной конфигурации возвращаются дефолты.
func (s *Service) GetConfig(ctx context.Context, ownerID int64) (*models.ConfigResponse, error) {
	s.logger.Info("GetConfig: fetching schedule config for owner=%d", ownerID)

	if ownerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	config, err := s.scheduleRepo.GetByOwnerID(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, scheduleRepo.ErrConfigNotFound) {
			s.logger.Error("GetConfig: repository error for owner=%d: %v", ownerID, err)
			return nil, fmt.Errorf("%w: GetConfig - repository error: %v", ErrInternal, err)
		}
		config = domain.DefaultScheduleConfig(ownerID)
		s.logger.Info("GetConfig: using default schedule config for owner=%d", ownerID)
	}

	return models.FromDomainConfig(config), nil
}

// UpdateConfig сохраняет конфигурацию расписания владельца (upsert).
// Доступно только самому владельцу.
func (s *Service) UpdateConfig(ctx context.Context, req *models.UpdateConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("UpdateConfig: updating schedule config for owner=%d by user=%d", req.OwnerID, req.UserID)

	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.Role != domain.RoleOwner || req.UserID != req.OwnerID {
		s.logger.Warn("UpdateConfig: access denied for user=%d to config of owner=%d", req.UserID, req.OwnerID)
		return nil, ErrAccessDenied
	}

	openTime, closeTime, err := validateConfigData(req)
	if err != nil {
		s.logger.Warn("UpdateConfig: validation failed: %v", err)
		return nil, err
	}

	updated, err := s.scheduleRepo.Upsert(ctx, &domain.ScheduleConfig{
		OwnerID:                 req.OwnerID,
		OpenTime:                openTime,
		CloseTime:               closeTime,
		SlotIntervalMinutes:     req.SlotIntervalMinutes,
		MinBookingNoticeMinutes: req.MinBookingNoticeMinutes,
	})
	if err != nil {
		s.logger.Error("UpdateConfig: repository error for owner=%d: %v", req.OwnerID, err)
		return nil, fmt.Errorf("%w: UpdateConfig - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateConfig: successfully updated schedule config for owner=%d", req.OwnerID)

	// Уведомляем подписчиков об изменении расписания. Ошибка публикации
	// не откатывает сохраненную конфигурацию.
	if err := s.notifier.ScheduleChanged(ctx, notify.ScheduleChangedEvent{
		OwnerID: req.OwnerID,
		Reason:  notify.ReasonConfigUpdated,
	}); err != nil {
		s.logger.Warn("UpdateConfig: failed to publish schedule change for owner=%d: %v", req.OwnerID, err)
	}

	return models.FromDomainConfig(updated), nil
}

// validateConfigData проверяет рабочие часы и параметры сетки
func validateConfigData(req *models.UpdateConfigRequest) (types.TimeString, types.TimeString, error) {
	openTime, err := types.NewTimeStringFromString(req.OpenTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid openTime: %v", ErrInvalidInput, err)
	}

	closeTime, err := types.NewTimeStringFromString(req.CloseTime)
	if err != nil {
		return "", "", fmt.Errorf("%w: invalid closeTime: %v", ErrInvalidInput, err)
	}

	if !openTime.IsBefore(closeTime) {
		return "", "", fmt.Errorf("%w: openTime must be before closeTime", ErrInvalidInput)
	}

	if req.SlotIntervalMinutes < domain.MinSlotIntervalMinutes || req.SlotIntervalMinutes > domain.MaxSlotIntervalMinutes {
		return "", "", fmt.Errorf("%w: slotIntervalMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotIntervalMinutes, domain.MaxSlotIntervalMinutes)
	}

	if req.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || req.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return "", "", fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	// Хотя бы один слот должен помещаться в рабочие часы
	firstSlotEnd, err := openTime.AddMinutes(req.SlotIntervalMinutes)
	if err != nil || firstSlotEnd.IsAfter(closeTime) {
		return "", "", fmt.Errorf("%w: working hours are shorter than one slot", ErrInvalidInput)
	}

	return openTime, closeTime, nil
}

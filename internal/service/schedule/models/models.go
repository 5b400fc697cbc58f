package models

import (
	"time"

	"github.com/slotly/appointment-service/internal/domain"
)

// Request модели

// UpdateConfigRequest запрос на обновление конфигурации расписания
type UpdateConfigRequest struct {
	UserID  int64           `json:"userId"`  // ID вызывающего
	Role    domain.UserRole `json:"role"`    // Роль вызывающего
	OwnerID int64           `json:"ownerId"` // Чью конфигурацию обновляют

	OpenTime                string `json:"openTime"`                // "09:00"
	CloseTime               string `json:"closeTime"`               // "18:00"
	SlotIntervalMinutes     int    `json:"slotIntervalMinutes"`     // Шаг сетки слотов
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"` // Минимальное уведомление
}

// Response модели

// ConfigResponse ответ с конфигурацией расписания
type ConfigResponse struct {
	OwnerID                 int64      `json:"ownerId"`
	OpenTime                string     `json:"openTime"`
	CloseTime               string     `json:"closeTime"`
	SlotIntervalMinutes     int        `json:"slotIntervalMinutes"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainConfig конвертирует domain модель в DTO.
// У дефолтной конфигурации, не сохраненной в базе, UpdatedAt отсутствует.
func FromDomainConfig(c *domain.ScheduleConfig) *ConfigResponse {
	if c == nil {
		return nil
	}

	resp := &ConfigResponse{
		OwnerID:                 c.OwnerID,
		OpenTime:                c.OpenTime.String(),
		CloseTime:               c.CloseTime.String(),
		SlotIntervalMinutes:     c.SlotIntervalMinutes,
		MinBookingNoticeMinutes: c.MinBookingNoticeMinutes,
	}

	if !c.UpdatedAt.IsZero() {
		updatedAt := c.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}

	return resp
}

package update_schedule_config

import (
	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/service/schedule/models"
)

// UpdateScheduleConfigRequest HTTP request model
type UpdateScheduleConfigRequest struct {
	OpenTime                string `json:"openTime"`  // "09:00"
	CloseTime               string `json:"closeTime"` // "18:00"
	SlotIntervalMinutes     int    `json:"slotIntervalMinutes"`
	MinBookingNoticeMinutes int    `json:"minBookingNoticeMinutes"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *UpdateScheduleConfigRequest) ToServiceRequest(ownerID int64, identity middleware.Identity) *models.UpdateConfigRequest {
	return &models.UpdateConfigRequest{
		UserID:                  identity.UserID,
		Role:                    identity.Role,
		OwnerID:                 ownerID,
		OpenTime:                r.OpenTime,
		CloseTime:               r.CloseTime,
		SlotIntervalMinutes:     r.SlotIntervalMinutes,
		MinBookingNoticeMinutes: r.MinBookingNoticeMinutes,
	}
}

package domain

import (
	"time"

	"github.com/slotly/appointment-service/pkg/types"
)

// ScheduleConfig represents the booking configuration of a business owner:
// working hours, the slot grid step and the minimum booking notice.
type ScheduleConfig struct {
	ID                      int64
	OwnerID                 int64
	OpenTime                types.TimeString
	CloseTime               types.TimeString
	SlotIntervalMinutes     int
	MinBookingNoticeMinutes int
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// DefaultScheduleConfig returns the configuration used before the owner
// has saved their own
func DefaultScheduleConfig(ownerID int64) *ScheduleConfig {
	return &ScheduleConfig{
		OwnerID:                 ownerID,
		OpenTime:                DefaultOpenTime,
		CloseTime:               DefaultCloseTime,
		SlotIntervalMinutes:     DefaultSlotIntervalMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
	}
}

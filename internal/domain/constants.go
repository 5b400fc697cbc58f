package domain

import "github.com/slotly/appointment-service/pkg/types"

// Default schedule configuration values
const (
	DefaultOpenTime                = types.TimeString("09:00")
	DefaultCloseTime               = types.TimeString("18:00")
	DefaultSlotIntervalMinutes     = 30
	DefaultMinBookingNoticeMinutes = 60 // 1 hour
)

// Business validation constants
const (
	MinSlotIntervalMinutes  = 5
	MaxSlotIntervalMinutes  = 480 // 8 hours
	MinBookingNoticeMinutes = 0
	MaxBookingNoticeMinutes = 10080 // 1 week

	MaxCustomerNameLength = 200
	MaxPhoneLength        = 32
	MaxEmailLength        = 254
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/integrations/catalogservice"
	"github.com/slotly/appointment-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.OwnerID <= 0 {
		return fmt.Errorf("%w: ownerID must be positive", ErrInvalidInput)
	}

	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if len(req.CustomerName) > domain.MaxCustomerNameLength {
		return fmt.Errorf("%w: customerName is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerPhone) == "" {
		return fmt.Errorf("%w: customerPhone is required", ErrInvalidInput)
	}

	if len(req.CustomerPhone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: customerPhone is too long", ErrInvalidInput)
	}

	if req.CustomerEmail != nil {
		email := strings.TrimSpace(*req.CustomerEmail)
		if email == "" || len(email) > domain.MaxEmailLength || !strings.Contains(email, "@") {
			return fmt.Errorf("%w: invalid customerEmail", ErrInvalidInput)
		}
	}

	return nil
}

// validateService проверяет снапшот услуги из каталога
func validateService(service *catalogservice.Service, ownerID int64) error {
	if service.OwnerID != ownerID {
		return ErrOwnerMismatch
	}

	if !service.IsActive {
		return ErrServiceNotActive
	}

	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: catalog returned %d minutes", ErrInvalidServiceDuration, service.DurationMinutes)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateSlotWithinHours проверяет, что слот целиком помещается в рабочие часы
func validateSlotWithinHours(config *domain.ScheduleConfig, startTime types.TimeString, durationMinutes int) error {
	// Некорректные рабочие часы (открытие не раньше закрытия) - записаться нельзя
	if !config.OpenTime.IsBefore(config.CloseTime) {
		return fmt.Errorf("%w: schedule has no working hours", ErrOutsideBusinessHours)
	}

	if startTime.IsBefore(config.OpenTime) {
		return fmt.Errorf("%w: %s is before opening time %s", ErrOutsideBusinessHours, startTime, config.OpenTime)
	}

	slotEnd, err := startTime.AddMinutes(durationMinutes)
	if err != nil {
		return fmt.Errorf("%w: slot does not fit the working day", ErrOutsideBusinessHours)
	}

	if slotEnd.IsAfter(config.CloseTime) {
		return fmt.Errorf("%w: slot ends at %s after closing time %s", ErrOutsideBusinessHours, slotEnd, config.CloseTime)
	}

	return nil
}

// validateSlotAlignment проверяет, что начало слота попадает на сетку расписания,
// начинающуюся от времени открытия с шагом slotIntervalMinutes
func validateSlotAlignment(config *domain.ScheduleConfig, requestDate time.Time, startTime types.TimeString, loc *time.Location) error {
	openAt := config.OpenTime.At(requestDate, loc)
	startAt := startTime.At(requestDate, loc)

	offset := startAt.Sub(openAt)
	step := time.Duration(config.SlotIntervalMinutes) * time.Minute

	if offset%step != 0 {
		return fmt.Errorf("%w: %s is not on the %d-minute grid starting at %s",
			ErrSlotNotAligned, startTime, config.SlotIntervalMinutes, config.OpenTime)
	}

	return nil
}

// validateBookingNotice проверяет, что запись не нарушает минимальное уведомление.
// Для будущих дат проверка не применяется.
func validateBookingNotice(
	requestDate time.Time,
	startTime types.TimeString,
	now time.Time,
	minBookingNoticeMinutes int,
	loc *time.Location,
) error {
	if !isSameDay(requestDate, now) {
		return nil
	}

	minAllowedStart := now.Add(time.Duration(minBookingNoticeMinutes) * time.Minute)
	if startTime.At(requestDate, loc).Before(minAllowedStart) {
		return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, minBookingNoticeMinutes)
	}

	return nil
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

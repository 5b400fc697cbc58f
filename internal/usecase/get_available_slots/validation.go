package get_available_slots

import (
	"fmt"
	"time"

	"github.com/slotly/appointment-service/internal/integrations/catalogservice"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
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

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(requestDate time.Time, now time.Time) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// validateService проверяет снапшот услуги из каталога
func validateService(service *catalogservice.Service, ownerID int64) error {
	// Принадлежность владельцу перепроверяем, хотя каталог отдает услуги по владельцу
	if service.OwnerID != ownerID {
		return ErrServiceNotFound
	}

	if !service.IsActive {
		return ErrServiceNotActive
	}

	if service.DurationMinutes <= 0 {
		return fmt.Errorf("%w: catalog returned %d minutes", ErrInvalidServiceDuration, service.DurationMinutes)
	}

	return nil
}

package cancel_appointment

import "github.com/slotly/appointment-service/internal/domain"

// Request модель запроса на отмену записи
type Request struct {
	UserID        int64           // ID вызывающего (из заголовков аутентификации)
	Role          domain.UserRole // Роль вызывающего
	AppointmentID string          // UUID записи
}

package get_available_slots

import (
	"time"

	"github.com/slotly/appointment-service/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	OwnerID   int64     // ID владельца расписания
	ServiceID int64     // ID услуги из каталога
	Date      time.Time // Дата, на которую запрашиваются слоты (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	OwnerID   int64     // ID владельца расписания
	ServiceID int64     // ID услуги
	Slots     []Slot    // Список доступных слотов
}

// Slot модель доступного временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность услуги в минутах
}

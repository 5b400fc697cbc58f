package create_appointment

import (
	"time"

	"github.com/slotly/appointment-service/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	CustomerID    int64            // ID клиента (из заголовков аутентификации)
	OwnerID       int64            // ID владельца расписания
	ServiceID     int64            // ID услуги из каталога
	Date          time.Time        // Дата записи (без времени)
	StartTime     types.TimeString // Время начала слота (например, "10:00")
	CustomerName  string           // Имя клиента
	CustomerPhone string           // Телефон клиента
	CustomerEmail *string          // Email клиента (опционально)
}

// Response модель ответа с созданной записью
type Response struct {
	ID         string           // UUID созданной записи
	OwnerID    int64            // ID владельца расписания
	CustomerID int64            // ID клиента
	ServiceID  int64            // ID услуги
	Date       time.Time        // Дата записи
	StartTime  types.TimeString // Время начала
	StartAt    time.Time        // Начало слота (момент времени)
	EndAt      time.Time        // Конец слота (момент времени)

	// Снапшот услуги на момент записи
	ServiceName            string // Название услуги
	ServicePriceMinorUnits int64  // Цена в минорных единицах валюты
	ServiceDurationMinutes int    // Длительность в минутах

	CustomerName  string  // Имя клиента
	CustomerPhone string  // Телефон клиента
	CustomerEmail *string // Email клиента

	CreatedAt time.Time // Время создания
}

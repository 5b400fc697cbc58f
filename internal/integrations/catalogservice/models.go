package catalogservice

// Service модель услуги из каталога.
// Цена в минорных единицах валюты (копейки/центы), без float.
type Service struct {
	ID              int64  `json:"id"`
	OwnerID         int64  `json:"owner_id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceMinorUnits int64  `json:"price_minor_units"`
	Currency        string `json:"currency"`
	IsActive        bool   `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

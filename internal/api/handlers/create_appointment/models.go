package create_appointment

import (
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	createAppointment "github.com/slotly/appointment-service/internal/usecase/create_appointment"
	"github.com/slotly/appointment-service/pkg/types"
)

// CreateAppointmentRequest HTTP request model.
// ID клиента не принимается в теле: он берется из заголовков аутентификации.
type CreateAppointmentRequest struct {
	OwnerID       int64   `json:"ownerId"`
	ServiceID     int64   `json:"serviceId"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID         string `json:"id"`
	OwnerID    int64  `json:"ownerId"`
	CustomerID int64  `json:"customerId"`
	ServiceID  int64  `json:"serviceId"`
	Date       string `json:"date"`
	StartTime  string `json:"startTime"`
	StartAt    string `json:"startAt"`
	EndAt      string `json:"endAt"`

	ServiceName            string `json:"serviceName"`
	ServicePriceMinorUnits int64  `json:"servicePriceMinorUnits"`
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	CreatedAt string `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(customerID int64) (*createAppointment.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CustomerID:    customerID,
		OwnerID:       r.OwnerID,
		ServiceID:     r.ServiceID,
		Date:          date,
		StartTime:     startTime,
		CustomerName:  r.CustomerName,
		CustomerPhone: r.CustomerPhone,
		CustomerEmail: r.CustomerEmail,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:                     resp.ID,
		OwnerID:                resp.OwnerID,
		CustomerID:             resp.CustomerID,
		ServiceID:              resp.ServiceID,
		Date:                   resp.Date.Format(domain.DateFormat),
		StartTime:              resp.StartTime.String(),
		StartAt:                resp.StartAt.Format(time.RFC3339),
		EndAt:                  resp.EndAt.Format(time.RFC3339),
		ServiceName:            resp.ServiceName,
		ServicePriceMinorUnits: resp.ServicePriceMinorUnits,
		ServiceDurationMinutes: resp.ServiceDurationMinutes,
		CustomerName:           resp.CustomerName,
		CustomerPhone:          resp.CustomerPhone,
		CustomerEmail:          resp.CustomerEmail,
		CreatedAt:              resp.CreatedAt.Format(time.RFC3339),
	}
}

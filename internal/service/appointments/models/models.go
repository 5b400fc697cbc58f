package models

import (
	"time"

	"github.com/slotly/appointment-service/internal/domain"
)

// Request модели

// GetUserAppointmentsRequest запрос на получение записей пользователя
type GetUserAppointmentsRequest struct {
	UserID       int64           `json:"userId"`       // ID вызывающего
	Role         domain.UserRole `json:"role"`         // Роль вызывающего
	TargetUserID int64           `json:"targetUserId"` // Чью историю запрашивают
	From         *time.Time      `json:"from,omitempty"`
}

// GetOwnerScheduleRequest запрос на получение календаря владельца
type GetOwnerScheduleRequest struct {
	UserID  int64           `json:"userId"`  // ID вызывающего
	Role    domain.UserRole `json:"role"`    // Роль вызывающего
	OwnerID int64           `json:"ownerId"` // Чей календарь запрашивают
	From    time.Time       `json:"from"`    // Начало окна (включительно)
	To      time.Time       `json:"to"`      // Конец окна (не включительно)
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID         string    `json:"id"`
	OwnerID    int64     `json:"ownerId"`
	CustomerID int64     `json:"customerId"`
	ServiceID  int64     `json:"serviceId"`
	StartAt    time.Time `json:"startAt"`
	EndAt      time.Time `json:"endAt"`

	// Снапшот услуги на момент записи
	ServiceName            string `json:"serviceName"`
	ServicePriceMinorUnits int64  `json:"servicePriceMinorUnits"`
	ServiceDurationMinutes int    `json:"serviceDurationMinutes"`

	CustomerName  string  `json:"customerName"`
	CustomerPhone string  `json:"customerPhone"`
	CustomerEmail *string `json:"customerEmail,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// BusyBlock непрерывный занятый отрезок календаря
type BusyBlock struct {
	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
}

// OwnerScheduleResponse ответ с календарем владельца: записи диапазона
// плюс склеенные занятые отрезки для отрисовки
type OwnerScheduleResponse struct {
	OwnerID      int64                 `json:"ownerId"`
	From         time.Time             `json:"from"`
	To           time.Time             `json:"to"`
	Appointments []AppointmentResponse `json:"appointments"`
	BusyBlocks   []BusyBlock           `json:"busyBlocks"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	return &AppointmentResponse{
		ID:                     a.ID,
		OwnerID:                a.OwnerID,
		CustomerID:             a.CustomerID,
		ServiceID:              a.ServiceID,
		StartAt:                a.StartAt,
		EndAt:                  a.EndAt,
		ServiceName:            a.ServiceName,
		ServicePriceMinorUnits: a.ServicePriceMinorUnits,
		ServiceDurationMinutes: a.ServiceDurationMinutes,
		CustomerName:           a.CustomerName,
		CustomerPhone:          a.CustomerPhone,
		CustomerEmail:          a.CustomerEmail,
		CreatedAt:              a.CreatedAt,
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	if appointments == nil {
		return &AppointmentListResponse{
			Appointments: []AppointmentResponse{},
		}
	}

	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, len(appointments)),
	}

	for i, appointment := range appointments {
		if appointmentResp := FromDomainAppointment(appointment); appointmentResp != nil {
			resp.Appointments[i] = *appointmentResp
		}
	}

	return resp
}

// FromDomainIntervals конвертирует склеенные интервалы в занятые отрезки
func FromDomainIntervals(intervals []domain.Interval) []BusyBlock {
	blocks := make([]BusyBlock, len(intervals))
	for i, interval := range intervals {
		blocks[i] = BusyBlock{StartAt: interval.Start, EndAt: interval.End}
	}
	return blocks
}

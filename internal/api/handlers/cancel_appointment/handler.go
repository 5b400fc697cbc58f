package cancel_appointment

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/api/middleware"
	cancelAppointment "github.com/slotly/appointment-service/internal/usecase/cancel_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "доступ запрещен"
	msgCannotCancelPast     = "нельзя отменить прошедшую запись"
	msgStoreUnavailable     = "хранилище временно недоступно, попробуйте позже"
	msgInvalidData          = "некорректные данные запроса"
)

type Handler struct {
	useCase CancelAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CancelAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем appointmentId из URL
	vars := mux.Vars(r)
	appointmentID := vars["appointmentId"]

	if _, err := uuid.Parse(appointmentID); err != nil {
		h.logger.Warn("DELETE /appointments/{id} - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	// Получаем Identity из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("DELETE /appointments/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Отменяем запись (use case сам проверит права доступа)
	err := h.useCase.Execute(r.Context(), &cancelAppointment.Request{
		UserID:        identity.UserID,
		Role:          identity.Role,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelAppointment.ErrAppointmentNotFound):
			h.logger.Warn("DELETE /appointments/{id} - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelAppointment.ErrAccessDenied):
			h.logger.Warn("DELETE /appointments/{id} - Access denied: appointment_id=%s, user_id=%d",
				appointmentID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelAppointment.ErrCannotCancelPast):
			h.logger.Warn("DELETE /appointments/{id} - Cannot cancel past appointment: appointment_id=%s, user_id=%d",
				appointmentID, identity.UserID)
			handlers.RespondBadRequest(w, msgCannotCancelPast)

		case errors.Is(err, cancelAppointment.ErrStoreUnavailable):
			h.logger.Error("DELETE /appointments/{id} - Store unavailable: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		case errors.Is(err, cancelAppointment.ErrInvalidInput):
			h.logger.Warn("DELETE /appointments/{id} - Invalid input: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("DELETE /appointments/{id} - Failed to cancel appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /appointments/{id} - Appointment cancelled successfully: appointment_id=%s, user_id=%d",
		appointmentID, identity.UserID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

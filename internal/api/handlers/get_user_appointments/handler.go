package get_user_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/internal/service/appointments"
	"github.com/slotly/appointment-service/internal/service/appointments/models"
)

const (
	msgInvalidUserID = "некорректный ID пользователя"
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidFrom   = "некорректный формат параметра from, ожидается YYYY-MM-DD"
	msgForbidden     = "доступ запрещен"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/{userId}/appointments
// Query params: from (опционально, YYYY-MM-DD) - отсекает записи раньше даты
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем userId из URL
	vars := mux.Vars(r)
	userIDStr := vars["userId"]

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /users/{userId}/appointments - Invalid user ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidUserID)
		return
	}

	// Получаем Identity из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /users/{userId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Получаем from из query параметров (опционально)
	var from *time.Time
	if fromStr := r.URL.Query().Get("from"); fromStr != "" {
		parsed, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			h.logger.Warn("GET /users/{userId}/appointments - Invalid from date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFrom)
			return
		}
		from = &parsed
	}

	// Получаем записи пользователя (сервис сам проверит права доступа)
	result, err := h.service.GetUserAppointments(r.Context(), &models.GetUserAppointmentsRequest{
		UserID:       identity.UserID,
		Role:         identity.Role,
		TargetUserID: userID,
		From:         from,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /users/{userId}/appointments - Access denied: target_user_id=%d, user_id=%d",
				userID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /users/{userId}/appointments - Invalid input: user_id=%d, error=%v",
				identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /users/{userId}/appointments - Failed to get appointments: user_id=%d, error=%v",
				userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/{userId}/appointments - Appointments retrieved successfully: user_id=%d, count=%d",
		userID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

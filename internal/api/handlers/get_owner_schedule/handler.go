package get_owner_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/service/appointments"
)

const (
	msgInvalidOwnerID    = "некорректный ID владельца"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgMissingDateRange  = "параметры from и to обязательны"
	msgInvalidDateFormat = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTimeRange  = "некорректный временной диапазон"
	msgForbidden         = "доступ запрещен"
	msgInvalidParams     = "некорректные параметры запроса"
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

// Handle GET /api/v1/owners/{ownerId}/schedule
// Query params: from, to (обязательны, YYYY-MM-DD, обе даты включительно)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/schedule - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем Identity из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("GET /owners/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Извлекаем границы окна из query параметров
	fromStr := r.URL.Query().Get("from")
	toStr := r.URL.Query().Get("to")
	if fromStr == "" || toStr == "" {
		h.logger.Warn("GET /owners/{id}/schedule - Missing date range: owner_id=%d", ownerID)
		handlers.RespondBadRequest(w, msgMissingDateRange)
		return
	}

	// Формируем запрос к сервису (с парсингом дат)
	serviceReq, err := ToServiceRequest(ownerID, identity, fromStr, toStr)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Получаем календарь владельца (сервис сам проверит права доступа)
	result, err := h.service.GetOwnerSchedule(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /owners/{id}/schedule - Access denied: owner_id=%d, user_id=%d",
				ownerID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrInvalidTimeRange):
			h.logger.Warn("GET /owners/{id}/schedule - Invalid time range: owner_id=%d, from=%s, to=%s",
				ownerID, fromStr, toStr)
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/schedule - Invalid parameters: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /owners/{id}/schedule - Failed to get schedule: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /owners/{id}/schedule - Schedule retrieved successfully: owner_id=%d, appointments=%d, busy_blocks=%d",
		ownerID, len(result.Appointments), len(result.BusyBlocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}

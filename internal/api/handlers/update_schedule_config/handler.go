package update_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/api/middleware"
	"github.com/slotly/appointment-service/internal/service/schedule"
)

const (
	msgInvalidOwnerID     = "некорректный ID владельца"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgForbidden          = "доступ запрещен"
	msgInvalidData        = "некорректные данные конфигурации"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/owners/{ownerId}/schedule-config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /owners/{id}/schedule-config - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем Identity из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("PUT /owners/{id}/schedule-config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req UpdateScheduleConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /owners/{id}/schedule-config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Обновляем конфигурацию (сервис сам проверит права владельца)
	result, err := h.service.UpdateConfig(r.Context(), req.ToServiceRequest(ownerID, identity))
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrAccessDenied):
			h.logger.Warn("PUT /owners/{id}/schedule-config - Access denied: owner_id=%d, user_id=%d",
				ownerID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, schedule.ErrInvalidInput):
			h.logger.Warn("PUT /owners/{id}/schedule-config - Invalid data: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /owners/{id}/schedule-config - Failed to update config: owner_id=%d, error=%v",
				ownerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /owners/{id}/schedule-config - Config updated successfully: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

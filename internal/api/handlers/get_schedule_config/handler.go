package get_schedule_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/service/schedule"
)

const (
	msgInvalidOwnerID = "некорректный ID владельца"
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

// Handle GET /api/v1/owners/{ownerId}/schedule-config
// Публичный endpoint - без авторизации. Если владелец не сохранял
// конфигурацию, сервис возвращает дефолтную.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем ownerId из URL
	vars := mux.Vars(r)
	ownerIDStr := vars["ownerId"]

	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/schedule-config - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Получаем конфигурацию (с fallback на дефолтную)
	result, err := h.service.GetConfig(r.Context(), ownerID)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			h.logger.Warn("GET /owners/{id}/schedule-config - Invalid owner ID: owner_id=%d", ownerID)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)
			return
		}

		h.logger.Error("GET /owners/{id}/schedule-config - Failed to get config: owner_id=%d, error=%v",
			ownerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /owners/{id}/schedule-config - Config retrieved successfully: owner_id=%d", ownerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

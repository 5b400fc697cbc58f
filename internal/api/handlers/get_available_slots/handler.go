package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/slotly/appointment-service/internal/api/handlers"
	getAvailableSlots "github.com/slotly/appointment-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidOwnerID         = "некорректный ID владельца"
	msgInvalidServiceID       = "некорректный ID услуги"
	msgMissingServiceID       = "ID услуги обязателен"
	msgMissingDate            = "дата обязательна"
	msgInvalidDateFormat      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDate            = "некорректная дата записи"
	msgServiceNotFound        = "услуга не найдена"
	msgServiceNotActive       = "услуга недоступна для записи"
	msgInvalidServiceDuration = "некорректная длительность услуги"
	msgCatalogUnavailable     = "сервис каталога временно недоступен"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/owners/{ownerId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем ownerId из URL
	ownerIDStr := vars["ownerId"]
	ownerID, err := strconv.ParseInt(ownerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/available-slots - Invalid owner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOwnerID)
		return
	}

	// Извлекаем serviceId из query параметров
	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /owners/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /owners/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(ownerID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /owners/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /owners/{id}/available-slots - Service not found: owner_id=%d, service_id=%d",
				ownerID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotActive):
			h.logger.Warn("GET /owners/{id}/available-slots - Service not active: owner_id=%d, service_id=%d",
				ownerID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotActive)

		case errors.Is(err, getAvailableSlots.ErrInvalidServiceDuration):
			h.logger.Warn("GET /owners/{id}/available-slots - Invalid service duration: owner_id=%d, service_id=%d",
				ownerID, serviceID)
			handlers.RespondBadRequest(w, msgInvalidServiceDuration)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /owners/{id}/available-slots - Invalid date: owner_id=%d, date=%s", ownerID, dateStr)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /owners/{id}/available-slots - Invalid input: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondBadRequest(w, msgInvalidOwnerID)

		case errors.Is(err, getAvailableSlots.ErrCatalogUnavailable):
			h.logger.Error("GET /owners/{id}/available-slots - Catalog unavailable: owner_id=%d, error=%v", ownerID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		default:
			h.logger.Error("GET /owners/{id}/available-slots - Failed to get slots: owner_id=%d, service_id=%d, error=%v",
				ownerID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /owners/{id}/available-slots - Slots retrieved successfully: owner_id=%d, service_id=%d, slots_count=%d",
		ownerID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}

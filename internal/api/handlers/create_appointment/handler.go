package create_appointment

import (
	"errors"
	"net/http"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/api/middleware"
	createAppointment "github.com/slotly/appointment-service/internal/usecase/create_appointment"
	"github.com/slotly/appointment-service/pkg/types"
)

const (
	msgMissingUserID          = "отсутствует ID пользователя"
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTime            = "некорректный формат времени начала, ожидается HH:MM"
	msgSlotConflict           = "выбранный временной слот уже занят"
	msgServiceNotFound        = "услуга не найдена"
	msgOwnerMismatch          = "услуга не принадлежит выбранному владельцу"
	msgServiceNotActive       = "услуга недоступна для записи"
	msgInvalidServiceDuration = "некорректная длительность услуги"
	msgInvalidAppointmentDate = "некорректная дата записи"
	msgOutsideBusinessHours   = "слот вне рабочих часов"
	msgSlotNotAligned         = "время начала не попадает в сетку слотов"
	msgTooLateToBook          = "слишком поздно для записи на этот слот"
	msgCatalogUnavailable     = "сервис каталога временно недоступен"
	msgStoreUnavailable       = "хранилище временно недоступно, попробуйте позже"
	msgInvalidData            = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем ID клиента из контекста (через middleware Auth)
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(identity.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, types.ErrInvalidTimeFormat) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotConflict):
			h.logger.Warn("POST /appointments - Slot conflict: customer_id=%d, owner_id=%d, start=%s %s",
				identity.UserID, req.OwnerID, req.Date, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: owner_id=%d, service_id=%d",
				req.OwnerID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrOwnerMismatch):
			h.logger.Warn("POST /appointments - Service does not belong to owner: owner_id=%d, service_id=%d",
				req.OwnerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgOwnerMismatch)

		case errors.Is(err, createAppointment.ErrServiceNotActive):
			h.logger.Warn("POST /appointments - Service not active: owner_id=%d, service_id=%d",
				req.OwnerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotActive)

		case errors.Is(err, createAppointment.ErrInvalidServiceDuration):
			h.logger.Warn("POST /appointments - Invalid service duration: owner_id=%d, service_id=%d",
				req.OwnerID, req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidServiceDuration)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid appointment date: customer_id=%d, date=%s",
				identity.UserID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidAppointmentDate)

		case errors.Is(err, createAppointment.ErrOutsideBusinessHours):
			h.logger.Warn("POST /appointments - Slot outside business hours: owner_id=%d, start=%s %s",
				req.OwnerID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideBusinessHours)

		case errors.Is(err, createAppointment.ErrSlotNotAligned):
			h.logger.Warn("POST /appointments - Slot not aligned to grid: owner_id=%d, start=%s %s",
				req.OwnerID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotNotAligned)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: customer_id=%d, start=%s %s",
				identity.UserID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrCatalogUnavailable):
			h.logger.Error("POST /appointments - Catalog unavailable: owner_id=%d, error=%v", req.OwnerID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgCatalogUnavailable)

		case errors.Is(err, createAppointment.ErrStoreUnavailable):
			h.logger.Error("POST /appointments - Store unavailable: customer_id=%d, error=%v", identity.UserID, err)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgStoreUnavailable)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: customer_id=%d, error=%v", identity.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: customer_id=%d, owner_id=%d, error=%v",
				identity.UserID, req.OwnerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, customer_id=%d, owner_id=%d",
		result.ID, identity.UserID, req.OwnerID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

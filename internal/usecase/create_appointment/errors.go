package create_appointment

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrOwnerMismatch возвращается, когда услуга принадлежит другому владельцу
	ErrOwnerMismatch = errors.New("create_appointment: service belongs to another owner")

	// ErrServiceNotActive возвращается, когда услуга отключена владельцем
	ErrServiceNotActive = errors.New("create_appointment: service is not active")

	// ErrInvalidServiceDuration возвращается, когда каталог вернул услугу
	// с неположительной длительностью
	ErrInvalidServiceDuration = errors.New("create_appointment: invalid service duration")

	// ErrInvalidDate возвращается при некорректной дате записи
	ErrInvalidDate = errors.New("create_appointment: invalid date")

	// ErrOutsideBusinessHours возвращается, когда слот не помещается в рабочие часы
	ErrOutsideBusinessHours = errors.New("create_appointment: slot is outside business hours")

	// ErrSlotNotAligned возвращается, когда начало слота не попадает на сетку расписания
	ErrSlotNotAligned = errors.New("create_appointment: slot is not aligned to the schedule grid")

	// ErrTooLateToBook возвращается, когда запись нарушает минимальное уведомление
	ErrTooLateToBook = errors.New("create_appointment: too late to book this slot")

	// ErrSlotConflict возвращается, когда слот уже занят другой записью
	ErrSlotConflict = errors.New("create_appointment: slot is already booked")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("create_appointment: catalog service unavailable")

	// ErrStoreUnavailable возвращается, когда транзакция не началась или
	// исход коммита неизвестен
	ErrStoreUnavailable = errors.New("create_appointment: storage unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)

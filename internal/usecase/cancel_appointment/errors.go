package cancel_appointment

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("cancel_appointment: appointment not found")

	// ErrAccessDenied возвращается, когда запись принадлежит другому клиенту
	// и вызывающий не является владельцем расписания
	ErrAccessDenied = errors.New("cancel_appointment: access denied")

	// ErrCannotCancelPast возвращается при попытке клиента отменить
	// уже прошедшую запись
	ErrCannotCancelPast = errors.New("cancel_appointment: past appointment cannot be cancelled")

	// ErrStoreUnavailable возвращается, когда транзакция не началась или
	// исход коммита неизвестен
	ErrStoreUnavailable = errors.New("cancel_appointment: storage unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointment: internal error")
)

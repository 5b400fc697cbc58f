package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге
	ErrServiceNotFound = errors.New("service not found")

	// ErrServiceNotActive возвращается, когда услуга отключена владельцем
	ErrServiceNotActive = errors.New("service is not active")

	// ErrInvalidServiceDuration возвращается, когда каталог вернул услугу
	// с неположительной длительностью
	ErrInvalidServiceDuration = errors.New("invalid service duration")

	// ErrInvalidDate возвращается при некорректной дате, в том числе в прошлом
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCatalogUnavailable возвращается, когда каталог услуг недоступен
	ErrCatalogUnavailable = errors.New("catalog service unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

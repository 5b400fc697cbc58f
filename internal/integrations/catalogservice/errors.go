package catalogservice

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена в каталоге владельца
	ErrServiceNotFound = errors.New("service not found in catalog")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от каталога
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")

	// ErrServiceUnavailable возвращается, когда каталог недоступен (timeout, сеть).
	// Бронирование без снапшота услуги невозможно, поэтому ошибка пробрасывается
	// наверх как отказ зависимости, а не деградация.
	ErrServiceUnavailable = errors.New("catalogservice unavailable")
)

package interval

import "errors"

var (
	// ErrIntervalConflict возвращается, когда интервал пересекается с уже занятым.
	// Соответствует exclusion constraint в базе: страхует от гонок, которые
	// пропустила проверка пересечений на уровне приложения.
	ErrIntervalConflict = errors.New("interval.repository: interval overlaps a booked one")

	// ErrIntervalNotFound возвращается, когда интервал не найден
	ErrIntervalNotFound = errors.New("interval.repository: interval not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("interval.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("interval.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("interval.repository: failed to scan row")
)

package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const timeLayout = "15:04"

const minutesPerDay = 24 * 60

var (
	// ErrInvalidTimeFormat означает, что строка не соответствует формату "HH:MM"
	ErrInvalidTimeFormat = errors.New("invalid time format, expected HH:MM")
	// ErrTimeOutOfRange означает, что результат арифметики вышел за пределы суток
	ErrTimeOutOfRange = errors.New("time out of day range")
)

// TimeString представляет время суток в формате "HH:MM" (например, "09:30").
// Используется для рабочих часов и времени начала слотов.
type TimeString string

// NewTimeString создает TimeString из time.Time (берёт только часы и минуты)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString создает TimeString из строки с валидацией формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// Validate проверяет, что значение соответствует формату "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, string(t))
	}
	return nil
}

func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true для пустого значения
func (t TimeString) IsZero() bool {
	return t == ""
}

// minutes возвращает число минут с начала суток, -1 для невалидного значения
func (t TimeString) minutes() int {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsBefore возвращает true, если t строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.minutes() < other.minutes()
}

// IsAfter возвращает true, если t строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.minutes() > other.minutes()
}

// Equal возвращает true, если t и other обозначают одну и ту же минуту суток
func (t TimeString) Equal(other TimeString) bool {
	return t.minutes() == other.minutes()
}

// AddMinutes возвращает время через заданное число минут.
// Возвращает ошибку, если результат выходит за пределы суток.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	if err := t.Validate(); err != nil {
		return "", err
	}

	total := t.minutes() + minutes
	if total < 0 || total >= minutesPerDay {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrTimeOutOfRange, string(t), minutes)
	}

	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At привязывает время суток к дате в указанной локации и возвращает момент времени
func (t TimeString) At(date time.Time, loc *time.Location) time.Time {
	m := t.minutes()
	if m < 0 {
		m = 0
	}

	year, month, day := date.In(loc).Date()
	return time.Date(year, month, day, m/60, m%60, 0, 0, loc)
}

// Scan реализует sql.Scanner для чтения из TEXT колонок
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
	case string:
		*t = TimeString(v)
	case []byte:
		*t = TimeString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeFormat, value)
	}
	return nil
}

// Value реализует driver.Valuer для записи в TEXT колонки
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

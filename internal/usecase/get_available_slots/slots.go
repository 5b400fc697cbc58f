package get_available_slots

import (
	"time"

	"github.com/slotly/appointment-service/internal/domain"
	"github.com/slotly/appointment-service/pkg/types"
)

// generateTimeSlots генерирует список кандидатов на день.
// Кандидаты идут от времени открытия с шагом slotIntervalMinutes, слот длится
// serviceDurationMinutes и должен целиком помещаться до времени закрытия.
// Для сегодняшней даты отбрасываются кандидаты, начинающиеся раньше
// now + minBookingNoticeMinutes.
func generateTimeSlots(
	config *domain.ScheduleConfig,
	serviceDurationMinutes int,
	requestDate time.Time,
	now time.Time,
	loc *time.Location,
) []types.TimeString {
	// Некорректные рабочие часы (открытие не раньше закрытия) - слотов нет
	if !config.OpenTime.IsBefore(config.CloseTime) {
		return []types.TimeString{}
	}

	// Шаг 1: генерируем ВСЕ кандидаты от открытия с фиксированным шагом
	allSlots := make([]types.TimeString, 0)
	current := config.OpenTime

	for current.IsBefore(config.CloseTime) {
		slotEnd, err := current.AddMinutes(serviceDurationMinutes)
		if err != nil {
			// Слот пересек бы полночь - дальше кандидатов нет
			break
		}
		if slotEnd.IsAfter(config.CloseTime) {
			break
		}

		allSlots = append(allSlots, current)

		next, err := current.AddMinutes(config.SlotIntervalMinutes)
		if err != nil {
			break
		}
		current = next
	}

	// Шаг 2: если дата бронирования НЕ сегодня - возвращаем все кандидаты
	if !isSameDay(requestDate, now.In(loc)) {
		return allSlots
	}

	// Шаг 3: для сегодняшней даты оставляем только кандидатов, которые
	// начинаются не раньше минимально допустимого момента
	minAllowedStart := now.Add(time.Duration(config.MinBookingNoticeMinutes) * time.Minute)

	availableSlots := make([]types.TimeString, 0, len(allSlots))
	for _, slot := range allSlots {
		if !slot.At(requestDate, loc).Before(minAllowedStart) {
			availableSlots = append(availableSlots, slot)
		}
	}

	return availableSlots
}

// filterBookedSlots убирает кандидатов, пересекающихся с занятыми интервалами дня.
// Граничные случаи пересечением не считаются: интервал, заканчивающийся ровно
// в начале слота (или начинающийся ровно в его конце), слот не блокирует.
//
// Примеры для слота 11:30-12:00:
// - занято 11:20-11:40 → слот недоступен (пересечение 11:30-11:40)
// - занято 11:00-11:30 → слот доступен (граничат)
// - занято 12:00-12:30 → слот доступен (граничат)
func filterBookedSlots(
	candidates []types.TimeString,
	serviceDurationMinutes int,
	requestDate time.Time,
	loc *time.Location,
	busy *domain.IntervalSet,
) []Slot {
	result := make([]Slot, 0, len(candidates))

	for _, start := range candidates {
		startAt := start.At(requestDate, loc)
		endAt := startAt.Add(time.Duration(serviceDurationMinutes) * time.Minute)

		candidate, err := domain.NewInterval(startAt, endAt)
		if err != nil {
			continue
		}

		if busy.Overlaps(candidate) {
			continue
		}

		result = append(result, Slot{
			StartTime:       start,
			DurationMinutes: serviceDurationMinutes,
		})
	}

	return result
}

// isSameDay проверяет, что две даты относятся к одному и тому же дню
func isSameDay(date1, date2 time.Time) bool {
	y1, m1, d1 := date1.Date()
	y2, m2, d2 := date2.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

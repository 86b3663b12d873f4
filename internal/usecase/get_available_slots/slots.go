package get_available_slots

import (
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/pkg/types"
)

// busyInterval занятый интервал времени грумера
type busyInterval struct {
	start time.Time
	end   time.Time
}

// computeSlots вычисляет доступные стартовые времена для услуги заданной
// длительности в рабочих диапазонах грумера на дату date.
//
// Сетка слотов фиксированная - domain.SlotGranularityMinutes (15 минут)
// независимо от длительности услуги: 50-минутная услуга всё равно
// начинается только на отметках :00/:15/:30/:45.
//
// Кандидат [cursor, cursor+duration) проходит, если:
//   - он целиком помещается в рабочий диапазон (cursor+duration <= end);
//   - не пересекается ни с одним занятым интервалом (полуоткрытые
//     интервалы: встык без зазора - это НЕ пересечение);
//   - начало строго в будущем относительно now.
//
// Результат: диапазоны в порядке конфигурации, внутри диапазона - по времени.
func computeSlots(
	ranges []domain.TimeRange,
	durationMinutes int,
	busy []busyInterval,
	date time.Time,
	now time.Time,
	loc *time.Location,
) ([]domain.AvailableSlot, error) {
	duration := time.Duration(durationMinutes) * time.Minute
	step := time.Duration(domain.SlotGranularityMinutes) * time.Minute

	slots := make([]domain.AvailableSlot, 0)

	for _, r := range ranges {
		rangeStart, err := r.Start.OnDate(date, loc)
		if err != nil {
			return nil, err
		}
		rangeEnd, err := r.End.OnDate(date, loc)
		if err != nil {
			return nil, err
		}

		for cursor := rangeStart; !cursor.Add(duration).After(rangeEnd); cursor = cursor.Add(step) {
			if !cursor.After(now) {
				continue
			}
			if overlapsAny(cursor, cursor.Add(duration), busy) {
				continue
			}

			slots = append(slots, domain.AvailableSlot{
				StartAt:         cursor,
				StartTime:       types.NewTimeString(cursor),
				DurationMinutes: durationMinutes,
			})
		}
	}

	return slots, nil
}

// overlapsAny проверяет пересечение [start, end) с занятыми интервалами.
// Полуоткрытые интервалы: [a, b) пересекается с [c, d) <=> a < d && c < b.
func overlapsAny(start, end time.Time, busy []busyInterval) bool {
	for _, b := range busy {
		if start.Before(b.end) && b.start.Before(end) {
			return true
		}
	}
	return false
}

// busyIntervals собирает занятые интервалы из бронирований грумера.
// Отменённые бронирования время не занимают. Буфер после визита
// (bufferMinutes) расширяет конец каждого интервала.
func busyIntervals(bookings []*domain.Booking, bufferMinutes int) []busyInterval {
	buffer := time.Duration(bufferMinutes) * time.Minute

	intervals := make([]busyInterval, 0, len(bookings))
	for _, b := range bookings {
		if !b.HoldsTime() {
			continue
		}
		intervals = append(intervals, busyInterval{
			start: b.StartAt,
			end:   b.EndAt.Add(buffer),
		})
	}
	return intervals
}

// dayBounds возвращает границы календарного дня [полночь, полночь+24ч)
// в часовом поясе салона
func dayBounds(date time.Time, loc *time.Location) (time.Time, time.Time) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	return dayStart, dayStart.AddDate(0, 0, 1)
}

package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/pkg/types"
)

func mustRange(t *testing.T, start, end string) domain.TimeRange {
	t.Helper()
	s, err := types.NewTimeStringFromString(start)
	require.NoError(t, err)
	e, err := types.NewTimeStringFromString(end)
	require.NoError(t, err)
	return domain.TimeRange{Start: s, End: e}
}

func at(day time.Time, hour, min int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, min, 0, 0, day.Location())
}

func TestComputeSlots_GridAndBoundary(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	past := day.Add(-24 * time.Hour)

	// 50-минутная услуга в окне 09:00-12:00: старты идут по 15-минутной
	// сетке независимо от длительности; последний влезающий - 11:00
	// (11:00+50=11:50), 11:15 кончался бы в 12:05.
	ranges := []domain.TimeRange{mustRange(t, "09:00", "12:00")}

	slots, err := computeSlots(ranges, 50, nil, day, past, loc)
	require.NoError(t, err)

	require.Len(t, slots, 9)
	assert.Equal(t, at(day, 9, 0), slots[0].StartAt)
	assert.Equal(t, "09:00", slots[0].StartTime.String())
	assert.Equal(t, at(day, 11, 0), slots[8].StartAt)
	assert.Equal(t, "11:00", slots[8].StartTime.String())

	for i := 1; i < len(slots); i++ {
		assert.Equal(t, 15*time.Minute, slots[i].StartAt.Sub(slots[i-1].StartAt))
		assert.Equal(t, 50, slots[i].DurationMinutes)
	}
}

func TestComputeSlots_ExcludesOverlapping(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	past := day.Add(-24 * time.Hour)

	ranges := []domain.TimeRange{mustRange(t, "09:00", "12:00")}
	busy := []busyInterval{{start: at(day, 10, 0), end: at(day, 10, 50)}}

	slots, err := computeSlots(ranges, 50, busy, day, past, loc)
	require.NoError(t, err)

	starts := make(map[string]bool)
	for _, s := range slots {
		starts[s.StartTime.String()] = true
	}

	// 09:15+50=10:05 задевает занятый интервал, как и всё до 10:45
	assert.True(t, starts["09:00"], "back-to-back before busy must stay")
	assert.False(t, starts["09:15"])
	assert.False(t, starts["09:45"])
	assert.False(t, starts["10:00"])
	assert.False(t, starts["10:30"])
	assert.False(t, starts["10:45"], "10:45+50 overlaps 10:00-10:50 tail")
	assert.True(t, starts["11:00"], "starting after busy end must stay")
}

func TestOverlapsAny_HalfOpenIntervals(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	busy := []busyInterval{{start: at(day, 10, 0), end: at(day, 10, 50)}}

	// Кандидат, кончающийся ровно в начале занятого - не пересечение
	assert.False(t, overlapsAny(at(day, 9, 10), at(day, 10, 0), busy))
	// Кандидат, начинающийся ровно в конце занятого - не пересечение
	assert.False(t, overlapsAny(at(day, 10, 50), at(day, 11, 40), busy))
	// Минутное пересечение с обеих сторон
	assert.True(t, overlapsAny(at(day, 9, 11), at(day, 10, 1), busy))
	assert.True(t, overlapsAny(at(day, 10, 49), at(day, 11, 39), busy))
}

func TestComputeSlots_SkipsPastStarts(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	now := at(day, 10, 30)

	ranges := []domain.TimeRange{mustRange(t, "09:00", "12:00")}

	slots, err := computeSlots(ranges, 30, nil, day, now, loc)
	require.NoError(t, err)

	require.NotEmpty(t, slots)
	// 10:30 == now отбрасывается: старт должен быть строго в будущем
	assert.Equal(t, at(day, 10, 45), slots[0].StartAt)
	for _, s := range slots {
		assert.True(t, s.StartAt.After(now))
	}
}

func TestComputeSlots_MultipleRanges(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	past := day.Add(-24 * time.Hour)

	// Утро и вечер с обеденным перерывом
	ranges := []domain.TimeRange{
		mustRange(t, "09:00", "10:00"),
		mustRange(t, "14:00", "15:00"),
	}

	slots, err := computeSlots(ranges, 60, nil, day, past, loc)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, at(day, 9, 0), slots[0].StartAt)
	assert.Equal(t, at(day, 14, 0), slots[1].StartAt)
}

func TestComputeSlots_ServiceLongerThanRange(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)
	past := day.Add(-24 * time.Hour)

	ranges := []domain.TimeRange{mustRange(t, "09:00", "10:00")}

	slots, err := computeSlots(ranges, 90, nil, day, past, loc)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBusyIntervals_BufferAndCanceled(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	bookings := []*domain.Booking{
		{Status: domain.StatusConfirmed, StartAt: at(day, 10, 0), EndAt: at(day, 10, 50)},
		{Status: domain.StatusCanceled, StartAt: at(day, 12, 0), EndAt: at(day, 13, 0)},
		{Status: domain.StatusHold, StartAt: at(day, 14, 0), EndAt: at(day, 14, 30)},
	}

	intervals := busyIntervals(bookings, 10)

	// Отменённое не занимает время, буфер добавлен к концу остальных
	require.Len(t, intervals, 2)
	assert.Equal(t, at(day, 10, 0), intervals[0].start)
	assert.Equal(t, at(day, 11, 0), intervals[0].end)
	assert.Equal(t, at(day, 14, 40), intervals[1].end)
}

func TestBusyIntervals_HoldBlocksSlot(t *testing.T) {
	loc := time.UTC
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, loc)

	// Неоплаченный hold блокирует слот наравне с подтверждённой записью
	bookings := []*domain.Booking{
		{Status: domain.StatusHold, StartAt: at(day, 10, 0), EndAt: at(day, 11, 0)},
	}

	intervals := busyIntervals(bookings, 0)
	require.Len(t, intervals, 1)
	assert.True(t, overlapsAny(at(day, 10, 30), at(day, 11, 30), intervals))
}

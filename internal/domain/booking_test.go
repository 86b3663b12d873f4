package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from BookingStatus
		to   BookingStatus
	}{
		{StatusHold, StatusAwaitingConfirmation},
		{StatusHold, StatusConfirmed},
		{StatusHold, StatusCanceled},
		{StatusAwaitingConfirmation, StatusConfirmed},
		{StatusAwaitingConfirmation, StatusCanceled},
		{StatusConfirmed, StatusCompleted},
		{StatusConfirmed, StatusNoShow},
		{StatusConfirmed, StatusCanceled},
	}

	allowedSet := make(map[[2]BookingStatus]bool)
	for _, tr := range allowed {
		allowedSet[[2]BookingStatus{tr.from, tr.to}] = true
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s must be allowed", tr.from, tr.to)
	}

	// Полный перебор: всё, чего нет в таблице, запрещено
	all := []BookingStatus{
		StatusHold, StatusAwaitingConfirmation, StatusConfirmed,
		StatusCompleted, StatusNoShow, StatusCanceled,
	}
	for _, from := range all {
		for _, to := range all {
			if allowedSet[[2]BookingStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}

func TestCanTransition_TerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []BookingStatus{StatusCompleted, StatusNoShow, StatusCanceled} {
		b := &Booking{Status: terminal}
		assert.True(t, b.IsTerminal(), "%s must be terminal", terminal)
	}
}

func TestBooking_Overlaps(t *testing.T) {
	loc := time.UTC
	start := time.Date(2026, 3, 10, 10, 0, 0, 0, loc)
	b := &Booking{
		StartAt: start,
		EndAt:   start.Add(50 * time.Minute), // 10:00 - 10:50
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical interval", start, start.Add(50 * time.Minute), true},
		{"starts inside", start.Add(30 * time.Minute), start.Add(80 * time.Minute), true},
		{"ends inside", start.Add(-30 * time.Minute), start.Add(20 * time.Minute), true},
		{"contains booking", start.Add(-time.Hour), start.Add(2 * time.Hour), true},
		{"back to back before", start.Add(-50 * time.Minute), start, false},
		{"back to back after", start.Add(50 * time.Minute), start.Add(100 * time.Minute), false},
		{"well before", start.Add(-3 * time.Hour), start.Add(-2 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(tt.start, tt.end))
		})
	}
}

func TestTimeHoldingStatuses_MatchesHoldsTime(t *testing.T) {
	// Список для SQL-фильтров обязан совпадать с предикатом HoldsTime,
	// иначе репозиторий и расчёт слотов разойдутся в том, что занято
	holding := make(map[BookingStatus]bool, len(TimeHoldingStatuses))
	for _, s := range TimeHoldingStatuses {
		holding[s] = true
	}

	all := []BookingStatus{
		StatusHold, StatusAwaitingConfirmation, StatusConfirmed,
		StatusCompleted, StatusNoShow, StatusCanceled,
	}
	for _, s := range all {
		b := &Booking{Status: s}
		assert.Equal(t, b.HoldsTime(), holding[s], "status %s", s)
	}
}

func TestBooking_HoldsTime(t *testing.T) {
	for _, status := range []BookingStatus{
		StatusHold, StatusAwaitingConfirmation, StatusConfirmed, StatusCompleted, StatusNoShow,
	} {
		b := &Booking{Status: status}
		assert.True(t, b.HoldsTime(), "%s must hold the slot", status)
	}

	canceled := &Booking{Status: StatusCanceled}
	assert.False(t, canceled.HoldsTime())
}

func TestBooking_CapturedCents(t *testing.T) {
	b := &Booking{
		Status:       StatusConfirmed,
		DepositCents: 2000,
		TaxCents:     160,
		TipCents:     500,
	}
	assert.Equal(t, int64(2660), b.CapturedCents())

	b.RefundedCents = 660
	assert.Equal(t, int64(2000), b.CapturedCents())

	// Неоплаченный hold ничего не захватил
	hold := &Booking{Status: StatusHold, DepositCents: 2000}
	assert.Equal(t, int64(0), hold.CapturedCents())
}

func TestAuditLine(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	line := AuditLine(at, RoleGroomer, "approve")

	require.Contains(t, line, "2026-03-10T12:00:00Z")
	require.Contains(t, line, "groomer")
	require.Contains(t, line, "approve")
	assert.Equal(t, byte('\n'), line[0])
}

func TestActorRole_IsStaff(t *testing.T) {
	assert.True(t, RoleGroomer.IsStaff())
	assert.True(t, RoleAdmin.IsStaff())
	assert.False(t, RoleCustomer.IsStaff())
	assert.False(t, RoleSystem.IsStaff())
}

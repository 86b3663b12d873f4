package domain

// Slot grid and policy defaults
const (
	// SlotGranularityMinutes фиксированный шаг сетки слотов, не зависит от длительности услуги
	SlotGranularityMinutes = 15

	DefaultHoldTTLMinutes          = 30
	DefaultCancellationWindowHours = 24
	DefaultDepositPercent          = 0.2
	DefaultTaxRate                 = 0.0
)

// Business validation constants
const (
	MinServiceDurationMinutes = 5
	MaxServiceDurationMinutes = 480 // 8 часов
	MaxNotesLength            = 500
	MaxCancelReasonLength     = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// TimeHoldingStatuses статусы, при которых бронирование занимает время грумера.
// Используется при подсчёте доступных слотов.
var TimeHoldingStatuses = []BookingStatus{
	StatusHold,
	StatusAwaitingConfirmation,
	StatusConfirmed,
	StatusCompleted,
	StatusNoShow,
}

package domain

import (
	"time"

	"github.com/pawtrim/booking-service/pkg/types"
)

// AvailableSlot represents a candidate appointment start time
type AvailableSlot struct {
	StartAt         time.Time
	StartTime       types.TimeString
	DurationMinutes int
}

package domain

import (
	"time"

	"github.com/pawtrim/booking-service/pkg/types"
)

// TimeRange is a [Start, End] clock-time range within a working day
type TimeRange struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// WeeklyHours maps a lowercase weekday name ("monday") to ordered,
// non-overlapping working ranges. A missing day means the groomer is off.
type WeeklyHours map[string][]TimeRange

// Groomer represents a staff member with a recurring weekly schedule.
// Groomers are soft-deactivated so historical bookings stay attributable.
type Groomer struct {
	ID            int64
	DisplayName   string
	Active        bool
	AutoConfirm   bool // paid holds skip manual review when true
	MinLeadMin    int  // minimum minutes between booking time and slot start
	BufferMin     int  // post-appointment buffer added to each booking's end
	WeeklyHours   WeeklyHours
	BlackoutDates []string // "YYYY-MM-DD" dates the groomer is fully unavailable
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// RangesFor returns the configured working ranges for the given date's weekday
func (g *Groomer) RangesFor(date time.Time) []TimeRange {
	return g.WeeklyHours[weekdayKey(date.Weekday())]
}

// IsBlackout returns true if the groomer marked the date fully unavailable
func (g *Groomer) IsBlackout(date time.Time) bool {
	day := date.Format(DateFormat)
	for _, d := range g.BlackoutDates {
		if d == day {
			return true
		}
	}
	return false
}

func weekdayKey(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	case time.Sunday:
		return "sunday"
	default:
		return ""
	}
}

package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusHold                 BookingStatus = "hold"
	StatusAwaitingConfirmation BookingStatus = "awaiting_confirmation"
	StatusConfirmed            BookingStatus = "confirmed"
	StatusCompleted            BookingStatus = "completed"
	StatusNoShow               BookingStatus = "no_show"
	StatusCanceled             BookingStatus = "canceled"
)

// transitions is the closed transition table of the booking lifecycle.
// A booking never returns to hold once it has left it.
var transitions = map[BookingStatus][]BookingStatus{
	StatusHold:                 {StatusAwaitingConfirmation, StatusConfirmed, StatusCanceled},
	StatusAwaitingConfirmation: {StatusConfirmed, StatusCanceled},
	StatusConfirmed:            {StatusCompleted, StatusNoShow, StatusCanceled},
	StatusCompleted:            {},
	StatusNoShow:               {},
	StatusCanceled:             {},
}

// CanTransition reports whether the lifecycle permits moving from one status to another
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether s is one of the known lifecycle statuses
func IsValidStatus(s BookingStatus) bool {
	_, ok := transitions[s]
	return ok
}

// ActorRole identifies who performs an action on a booking
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleGroomer  ActorRole = "groomer"
	RoleAdmin    ActorRole = "admin"
	RoleSystem   ActorRole = "system"
)

// IsStaff returns true for roles allowed to manage bookings without window restrictions
func (r ActorRole) IsStaff() bool {
	return r == RoleGroomer || r == RoleAdmin
}

// Booking represents a reservation of a groomer's time for a single service
type Booking struct {
	ID         int64
	CustomerID int64
	GroomerID  int64
	ServiceID  int64

	StartAt time.Time
	EndAt   time.Time // always StartAt + service duration, never edited independently
	Status  BookingStatus

	// Money, integer minor currency units
	DepositCents  int64
	TaxCents      int64
	TipCents      int64
	TotalDueCents int64
	RefundedCents int64

	PaymentRef *string // external payment processor reference

	Notes      string
	PetDetails json.RawMessage

	HoldExpiresAt *time.Time // only meaningful while Status == hold

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HoldsTime returns true if the booking occupies the groomer's time.
// Everything except canceled blocks the slot.
func (b *Booking) HoldsTime() bool {
	return b.Status != StatusCanceled
}

// IsTerminal returns true if no further transition is possible
func (b *Booking) IsTerminal() bool {
	return len(transitions[b.Status]) == 0
}

// IsPaid returns true if funds have been captured for the booking
func (b *Booking) IsPaid() bool {
	return b.Status == StatusAwaitingConfirmation ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCompleted ||
		b.Status == StatusNoShow
}

// CapturedCents returns the amount captured for the booking, net of refunds
func (b *Booking) CapturedCents() int64 {
	if !b.IsPaid() {
		return 0
	}
	captured := b.DepositCents + b.TaxCents + b.TipCents - b.RefundedCents
	if captured < 0 {
		return 0
	}
	return captured
}

// Overlaps reports whether [b.StartAt, b.EndAt) overlaps [start, end).
// Half-open intervals: back-to-back bookings do not overlap.
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartAt.Before(end) && start.Before(b.EndAt)
}

// AuditLine formats a note line recording who did what to a booking and when.
// Lines are appended to Booking.Notes on every status change.
func AuditLine(at time.Time, actor ActorRole, action string) string {
	return fmt.Sprintf("\n[%s] %s: %s", at.UTC().Format(time.RFC3339), actor, action)
}

// GroomerDayFilter selects a groomer's bookings whose start falls on a single civil day
type GroomerDayFilter struct {
	GroomerID       int64
	DayStart        time.Time // полночь дня в часовом поясе салона
	DayEnd          time.Time // полночь следующего дня
	IncludeCanceled bool
}

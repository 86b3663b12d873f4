package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	CustomerID int64            `json:"customerId"`
	ActorID    int64            `json:"-"`
	ActorRole  domain.ActorRole `json:"-"`
	Status     *string          `json:"status,omitempty"`
}

// GetGroomerBookingsRequest запрос на расписание грумера на день
type GetGroomerBookingsRequest struct {
	GroomerID       int64            `json:"groomerId"`
	ActorID         int64            `json:"-"`
	ActorRole       domain.ActorRole `json:"-"`
	Date            time.Time        `json:"date"`
	IncludeCanceled bool             `json:"includeCanceled,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID         int64 `json:"id"`
	CustomerID int64 `json:"customerId"`
	GroomerID  int64 `json:"groomerId"`
	ServiceID  int64 `json:"serviceId"`

	StartAt time.Time `json:"startAt"`
	EndAt   time.Time `json:"endAt"`
	Status  string    `json:"status"`

	DepositCents  int64 `json:"depositCents"`
	TaxCents      int64 `json:"taxCents"`
	TipCents      int64 `json:"tipCents,omitempty"`
	TotalDueCents int64 `json:"totalDueCents"`
	RefundedCents int64 `json:"refundedCents,omitempty"`

	Notes      string          `json:"notes,omitempty"`
	PetDetails json.RawMessage `json:"petDetails,omitempty"`

	HoldExpiresAt *time.Time `json:"holdExpiresAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		CustomerID:    b.CustomerID,
		GroomerID:     b.GroomerID,
		ServiceID:     b.ServiceID,
		StartAt:       b.StartAt,
		EndAt:         b.EndAt,
		Status:        string(b.Status),
		DepositCents:  b.DepositCents,
		TaxCents:      b.TaxCents,
		TipCents:      b.TipCents,
		TotalDueCents: b.TotalDueCents,
		RefundedCents: b.RefundedCents,
		Notes:         b.Notes,
		PetDetails:    b.PetDetails,
		HoldExpiresAt: b.HoldExpiresAt,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в статус бронирования
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	status := domain.BookingStatus(s)
	if !domain.IsValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

package cancel_booking

import (
	cancelBooking "github.com/pawtrim/booking-service/internal/usecase/cancel_booking"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID     int64  `json:"bookingId"`
	Status        string `json:"status"`
	RefundedCents int64  `json:"refundedCents"`
	RefundPending bool   `json:"refundPending,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:     resp.BookingID,
		Status:        string(resp.Status),
		RefundedCents: resp.RefundedCents,
		RefundPending: resp.RefundPending,
	}
}

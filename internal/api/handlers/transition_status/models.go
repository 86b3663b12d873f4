package transition_status

import (
	transitionStatus "github.com/pawtrim/booking-service/internal/usecase/transition_status"
)

// TransitionStatusRequest HTTP request model
type TransitionStatusRequest struct {
	Action   string `json:"action"` // approve / complete / no_show
	TipCents int64  `json:"tipCents,omitempty"`
}

// TransitionStatusResponse HTTP response model
type TransitionStatusResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *transitionStatus.Response) *TransitionStatusResponse {
	return &TransitionStatusResponse{
		BookingID: resp.BookingID,
		Status:    string(resp.Status),
	}
}

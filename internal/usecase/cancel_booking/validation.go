package cancel_booking

import (
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: booking_id must be positive, got %d", ErrInvalidInput, req.BookingID)
	}
	if req.ActorID <= 0 {
		return fmt.Errorf("%w: actor_id must be positive, got %d", ErrInvalidInput, req.ActorID)
	}
	switch req.ActorRole {
	case domain.RoleCustomer, domain.RoleGroomer, domain.RoleAdmin, domain.RoleSystem:
	default:
		return fmt.Errorf("%w: unknown actor role %q", ErrInvalidInput, req.ActorRole)
	}
	return nil
}

package create_hold

import (
	"fmt"

	"github.com/pawtrim/booking-service/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer_id must be positive, got %d", ErrInvalidInput, req.CustomerID)
	}
	if req.GroomerID <= 0 {
		return fmt.Errorf("%w: groomer_id must be positive, got %d", ErrInvalidInput, req.GroomerID)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive, got %d", ErrInvalidInput, req.ServiceID)
	}
	if req.StartAt.IsZero() {
		return fmt.Errorf("%w: start_at is required", ErrInvalidInput)
	}
	// Слоты лежат на фиксированной 15-минутной сетке
	if req.StartAt.Second() != 0 || req.StartAt.Nanosecond() != 0 ||
		req.StartAt.Minute()%domain.SlotGranularityMinutes != 0 {
		return fmt.Errorf("%w: start_at must be aligned to %d-minute grid",
			ErrInvalidInput, domain.SlotGranularityMinutes)
	}
	return nil
}

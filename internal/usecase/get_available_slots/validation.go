package get_available_slots

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req == nil {
		return fmt.Errorf("%w: request is nil", ErrInvalidInput)
	}
	if req.GroomerID <= 0 {
		return fmt.Errorf("%w: groomer_id must be positive, got %d", ErrInvalidInput, req.GroomerID)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service_id must be positive, got %d", ErrInvalidInput, req.ServiceID)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}

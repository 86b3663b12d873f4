package transition_status

import "fmt"

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
	if _, ok := actionTransitions[req.Action]; !ok {
		return fmt.Errorf("%w: unknown action %q", ErrInvalidInput, req.Action)
	}
	if req.TipCents < 0 {
		return fmt.Errorf("%w: tip_cents must not be negative, got %d", ErrInvalidInput, req.TipCents)
	}
	if req.TipCents > 0 && req.Action != ActionComplete {
		return fmt.Errorf("%w: tip is only accepted with %s", ErrInvalidInput, ActionComplete)
	}
	return nil
}

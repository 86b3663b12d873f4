package domain

import "time"

// Service represents a salon service offered to customers.
// Services are never physically deleted, only deactivated.
type Service struct {
	ID              int64
	Name            string
	Active          bool
	DurationMinutes int
	BasePriceCents  int64
	DepositPercent  *float64 // nil = use system-wide default
	TaxRate         *float64 // nil = use system-wide default
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if customers may book the service
func (s *Service) IsBookable() bool {
	return s.Active && s.DurationMinutes > 0
}

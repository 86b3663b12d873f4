package get_booking

import (
	"context"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetByID(ctx context.Context, id int64, actorID int64, actorRole domain.ActorRole) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

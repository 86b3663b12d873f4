package get_groomer_bookings

import (
	"context"

	"github.com/pawtrim/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	GetGroomerBookings(ctx context.Context, req *models.GetGroomerBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

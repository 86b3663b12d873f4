package get_available_slots

import (
	"context"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetForGroomerDay получает бронирования грумера на конкретный календарный день
	GetForGroomerDay(ctx context.Context, filter domain.GroomerDayFilter) ([]*domain.Booking, error)
}

// GroomerRepository интерфейс репозитория грумеров
type GroomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Groomer, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

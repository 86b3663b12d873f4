package expire_holds

import (
	"context"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetExpiredHolds(ctx context.Context, now time.Time, limit uint64) ([]*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, auditLine string) error
}

// PaymentClient интерфейс платёжного провайдера
type PaymentClient interface {
	Release(ctx context.Context, paymentRef string) error
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

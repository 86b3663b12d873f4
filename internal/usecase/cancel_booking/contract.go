package cancel_booking

import (
	"context"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusIf(ctx context.Context, id int64, from []domain.BookingStatus, to domain.BookingStatus, auditLine string) error
	AddRefund(ctx context.Context, id int64, amountCents int64) error
}

// PaymentClient интерфейс платёжного провайдера
type PaymentClient interface {
	Release(ctx context.Context, paymentRef string) error
	Refund(ctx context.Context, paymentRef string, amountCents int64) (*payments.RefundResult, error)
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

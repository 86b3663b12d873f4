package create_hold

import (
	"context"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/integrations/payments"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	// GetForGroomerDay получает бронирования грумера на календарный день;
	// внутри транзакции берёт блокировку FOR UPDATE
	GetForGroomerDay(ctx context.Context, filter domain.GroomerDayFilter) ([]*domain.Booking, error)
	SetPaymentRef(ctx context.Context, id int64, paymentRef string) error
}

// GroomerRepository интерфейс репозитория грумеров
type GroomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Groomer, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// PaymentClient интерфейс платёжного провайдера
type PaymentClient interface {
	Authorize(ctx context.Context, req payments.AuthorizeRequest) (*payments.Authorization, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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

package catalog

import (
	"context"

	"github.com/pawtrim/booking-service/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, s *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	ListActive(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, s *domain.Service) (*domain.Service, error)
}

// GroomerRepository интерфейс репозитория грумеров
type GroomerRepository interface {
	Create(ctx context.Context, g *domain.Groomer) (*domain.Groomer, error)
	GetByID(ctx context.Context, id int64) (*domain.Groomer, error)
	ListActive(ctx context.Context) ([]*domain.Groomer, error)
	UpdateSchedule(ctx context.Context, id int64, g *domain.Groomer) (*domain.Groomer, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

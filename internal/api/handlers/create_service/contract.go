package create_service

import (
	"context"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	CreateService(ctx context.Context, actorRole domain.ActorRole, req *models.CreateServiceRequest) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

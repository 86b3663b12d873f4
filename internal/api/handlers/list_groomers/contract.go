package list_groomers

import (
	"context"

	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	ListGroomers(ctx context.Context) (*models.GroomerListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package get_schedule

import (
	"context"

	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	GetSchedule(ctx context.Context, actorID int64, actorRole domain.ActorRole, groomerID int64) (*models.ScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

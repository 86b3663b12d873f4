package create_service

import (
	"errors"
	"net/http"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/catalog"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

const (
	msgInvalidBody = "некорректное тело запроса"
	msgForbidden   = "доступ запрещен"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorRole, ok := middleware.GetUserRole(r.Context())
	if !ok {
		actorRole = domain.RoleCustomer
	}

	var req models.CreateServiceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateService(r.Context(), actorRole, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /services - Access denied for role %s", actorRole)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /services - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /services - Failed to create service: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /services - Service created: service_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package create_groomer

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

// Handle POST /api/v1/groomers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorRole, ok := middleware.GetUserRole(r.Context())
	if !ok {
		actorRole = domain.RoleCustomer
	}

	var req models.CreateGroomerRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /groomers - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.CreateGroomer(r.Context(), actorRole, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /groomers - Access denied for role %s", actorRole)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("POST /groomers - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /groomers - Failed to create groomer: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /groomers - Groomer created: groomer_id=%d", result.GroomerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

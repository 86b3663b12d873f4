package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/catalog"
	"github.com/pawtrim/booking-service/internal/service/catalog/models"
)

const (
	msgInvalidGroomerID = "некорректный ID грумера"
	msgInvalidBody      = "некорректное тело запроса"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
	msgNotFound         = "грумер не найден"
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

// Handle PUT /api/v1/groomers/{groomerId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groomerIDStr := vars["groomerId"]

	groomerID, err := strconv.ParseInt(groomerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /groomers/{id}/schedule - Invalid groomer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroomerID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /groomers/{id}/schedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole, ok := middleware.GetUserRole(r.Context())
	if !ok {
		actorRole = domain.RoleCustomer
	}

	var req models.UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /groomers/{id}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), actorID, actorRole, groomerID, &req)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /groomers/{id}/schedule - Access denied: groomer_id=%d, actor_id=%d", groomerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrInvalidInput):
			h.logger.Warn("PUT /groomers/{id}/schedule - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, catalog.ErrGroomerNotFound):
			h.logger.Warn("PUT /groomers/{id}/schedule - Groomer not found: groomer_id=%d", groomerID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PUT /groomers/{id}/schedule - Failed: groomer_id=%d, error=%v", groomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /groomers/{id}/schedule - Schedule updated: groomer_id=%d", groomerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

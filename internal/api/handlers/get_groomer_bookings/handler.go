package get_groomer_bookings

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	"github.com/pawtrim/booking-service/internal/domain"
	"github.com/pawtrim/booking-service/internal/service/bookings"
	"github.com/pawtrim/booking-service/internal/service/bookings/models"
)

const (
	msgInvalidGroomerID = "некорректный ID грумера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/groomers/{groomerId}/bookings
// Query params: date (required, YYYY-MM-DD), includeCanceled (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	groomerIDStr := vars["groomerId"]

	groomerID, err := strconv.ParseInt(groomerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /groomers/{id}/bookings - Invalid groomer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGroomerID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /groomers/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole, ok := middleware.GetUserRole(r.Context())
	if !ok {
		actorRole = domain.RoleCustomer
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /groomers/{id}/bookings - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /groomers/{id}/bookings - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &models.GetGroomerBookingsRequest{
		GroomerID:       groomerID,
		ActorID:         actorID,
		ActorRole:       actorRole,
		Date:            date,
		IncludeCanceled: r.URL.Query().Get("includeCanceled") == "true",
	}

	result, err := h.service.GetGroomerBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /groomers/{id}/bookings - Access denied: groomer_id=%d, actor_id=%d", groomerID, actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /groomers/{id}/bookings - Failed to get bookings: groomer_id=%d, error=%v", groomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /groomers/{id}/bookings - Retrieved %d bookings: groomer_id=%d, date=%s",
		len(result.Bookings), groomerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package transition_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	"github.com/pawtrim/booking-service/internal/domain"
	transitionStatus "github.com/pawtrim/booking-service/internal/usecase/transition_status"
)

const (
	msgInvalidBookingID = "некорректный ID бронирования"
	msgInvalidBody      = "некорректное тело запроса"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgNotFound         = "бронирование не найдено"
	msgForbidden        = "доступ запрещен"
	msgStatusConflict   = "переход из текущего статуса недопустим"
)

type Handler struct {
	useCase TransitionStatusUseCase
	logger  Logger
}

func NewHandler(useCase TransitionStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actorID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/status - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}
	actorRole, ok := middleware.GetUserRole(r.Context())
	if !ok {
		actorRole = domain.RoleCustomer
	}

	var req TransitionStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &transitionStatus.Request{
		BookingID: bookingID,
		ActorID:   actorID,
		ActorRole: actorRole,
		Action:    transitionStatus.Action(req.Action),
		TipCents:  req.TipCents,
	})
	if err != nil {
		switch {
		case errors.Is(err, transitionStatus.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/status - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, transitionStatus.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, transitionStatus.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/status - Access denied: booking_id=%d, actor_id=%d (%s)",
				bookingID, actorID, actorRole)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, transitionStatus.ErrStatusConflict):
			h.logger.Warn("POST /bookings/{id}/status - Status conflict: booking_id=%d, action=%s", bookingID, req.Action)
			handlers.RespondConflict(w, msgStatusConflict)

		default:
			h.logger.Error("POST /bookings/{id}/status - Failed: booking_id=%d, action=%s, error=%v",
				bookingID, req.Action, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/status - Transition done: booking_id=%d, action=%s, status=%s",
		bookingID, req.Action, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

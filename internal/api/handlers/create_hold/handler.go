package create_hold

import (
	"errors"
	"net/http"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	"github.com/pawtrim/booking-service/internal/api/middleware"
	createHold "github.com/pawtrim/booking-service/internal/usecase/create_hold"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStartAt     = "некорректный формат startAt, ожидается ISO 8601"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgServiceNotFound    = "услуга не найдена"
	msgGroomerNotFound    = "грумер не найден"
	msgSlotTaken          = "выбранный слот уже занят"
	msgSlotUnavailable    = "слот вне рабочего расписания грумера"
	msgLeadTime           = "до начала слота осталось меньше минимального времени"
	msgPaymentDeclined    = "платёж отклонён, запись удерживается до истечения срока оплаты"
	msgPaymentUnavailable = "платёжный сервис недоступен, запись удерживается до истечения срока оплаты"
)

type Handler struct {
	useCase CreateHoldUseCase
	logger  Logger
}

func NewHandler(useCase CreateHoldUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateHoldRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse startAt: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStartAt)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createHold.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createHold.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createHold.ErrGroomerNotFound):
			h.logger.Warn("POST /bookings - Groomer not found: groomer_id=%d", req.GroomerID)
			handlers.RespondNotFound(w, msgGroomerNotFound)

		case errors.Is(err, createHold.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: groomer_id=%d, start=%s", req.GroomerID, req.StartAt)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createHold.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: groomer_id=%d, start=%s", req.GroomerID, req.StartAt)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createHold.ErrLeadTimeViolation):
			h.logger.Warn("POST /bookings - Lead time violation: groomer_id=%d, start=%s", req.GroomerID, req.StartAt)
			handlers.RespondUnprocessable(w, msgLeadTime)

		case errors.Is(err, createHold.ErrPaymentDeclined):
			h.logger.Warn("POST /bookings - Payment declined: customer_id=%d", customerID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, createHold.ErrPaymentUnavailable):
			h.logger.Error("POST /bookings - Payment provider unavailable: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadGateway(w, msgPaymentUnavailable)

		default:
			h.logger.Error("POST /bookings - Failed to create hold: customer_id=%d, groomer_id=%d, error=%v",
				customerID, req.GroomerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Hold created: booking_id=%d, customer_id=%d, amount_due=%d",
		result.BookingID, customerID, result.AmountDueCents)
	handlers.RespondJSON(w, http.StatusCreated, response)
}

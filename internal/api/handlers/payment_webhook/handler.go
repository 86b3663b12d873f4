package payment_webhook

import (
	"errors"
	"net/http"

	"github.com/pawtrim/booking-service/internal/api/handlers"
	paymentCallback "github.com/pawtrim/booking-service/internal/usecase/payment_callback"
)

const (
	msgInvalidBody     = "некорректное тело запроса"
	msgUnknownEvent    = "неизвестный тип события"
	msgBookingNotFound = "бронирование по платёжному идентификатору не найдено"
)

type Handler struct {
	useCase PaymentCallbackUseCase
	logger  Logger
}

func NewHandler(useCase PaymentCallbackUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/payments/webhook
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req WebhookRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments/webhook - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	var (
		result *paymentCallback.Response
		err    error
	)

	switch req.Event {
	case EventPaymentCaptured:
		result, err = h.useCase.OnPaymentCaptured(r.Context(), &paymentCallback.CapturedRequest{
			PaymentRef:  req.PaymentRef,
			AmountCents: req.AmountCents,
			ReceiptRef:  req.ReceiptRef,
		})

	case EventPaymentFailed:
		result, err = h.useCase.OnPaymentFailed(r.Context(), &paymentCallback.FailedRequest{
			PaymentRef: req.PaymentRef,
			Reason:     req.Reason,
		})

	default:
		h.logger.Warn("POST /payments/webhook - Unknown event: %q", req.Event)
		handlers.RespondBadRequest(w, msgUnknownEvent)
		return
	}

	if err != nil {
		switch {
		case errors.Is(err, paymentCallback.ErrInvalidInput):
			h.logger.Warn("POST /payments/webhook - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, paymentCallback.ErrBookingNotFound):
			h.logger.Warn("POST /payments/webhook - Booking not found: ref=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		default:
			// Провайдер повторит доставку по не-2xx ответу
			h.logger.Error("POST /payments/webhook - Failed to process %s: ref=%s, error=%v",
				req.Event, req.PaymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments/webhook - Processed %s: booking_id=%d, status=%s",
		req.Event, result.BookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

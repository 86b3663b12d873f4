package payments

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
	"github.com/stripe/stripe-go/v79/refund"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент платёжного провайдера (Stripe).
// Захват средств, проверка подписей вебхуков и PCI-сторона целиком на
// стороне провайдера - клиент только авторизует, отменяет и возвращает.
type Client struct {
	currency string
	log      Logger
}

// NewClient создает новый экземпляр платёжного клиента
func NewClient(secretKey, currency string, log Logger) *Client {
	stripe.Key = secretKey
	return &Client{
		currency: currency,
		log:      log,
	}
}

// Authorize создает платёж с отложенным захватом на сумму депозита.
// Идемпотентность обеспечивается ключом, привязанным к бронированию.
func (c *Client) Authorize(ctx context.Context, req AuthorizeRequest) (*Authorization, error) {
	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountCents),
		Currency:      stripe.String(c.currency),
		CaptureMethod: stripe.String(string(stripe.PaymentIntentCaptureMethodManual)),
		Description:   stripe.String(req.Description),
		Metadata: map[string]string{
			"booking_id":  strconv.FormatInt(req.BookingID, 10),
			"customer_id": strconv.FormatInt(req.CustomerID, 10),
		},
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(fmt.Sprintf("booking-%d-%s", req.BookingID, uuid.NewString()[:8]))

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, c.mapError("Authorize", req.BookingID, err)
	}

	c.log.Info("Authorize: created payment intent %s for booking id=%d, amount=%d", pi.ID, req.BookingID, req.AmountCents)

	return &Authorization{
		PaymentRef: pi.ID,
		Status:     string(pi.Status),
	}, nil
}

// Release отменяет авторизацию (снимает холд средств без захвата)
func (c *Client) Release(ctx context.Context, paymentRef string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx

	if _, err := paymentintent.Cancel(paymentRef, params); err != nil {
		return c.mapError("Release", 0, err)
	}

	c.log.Info("Release: cancelled payment intent %s", paymentRef)
	return nil
}

// Refund возвращает amountCents по ранее захваченному платежу
func (c *Client) Refund(ctx context.Context, paymentRef string, amountCents int64) (*RefundResult, error) {
	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(paymentRef),
		Amount:        stripe.Int64(amountCents),
	}
	params.Context = ctx
	params.IdempotencyKey = stripe.String(fmt.Sprintf("refund-%s-%d", paymentRef, amountCents))

	rf, err := refund.New(params)
	if err != nil {
		return nil, c.mapError("Refund", 0, err)
	}

	c.log.Info("Refund: refunded %d on payment %s, refund id=%s", amountCents, paymentRef, rf.ID)

	return &RefundResult{
		RefundRef:   rf.ID,
		AmountCents: rf.Amount,
	}, nil
}

// mapError маппит ошибки Stripe в ошибки клиента
func (c *Client) mapError(op string, bookingID int64, err error) error {
	stripeErr, ok := err.(*stripe.Error)
	if !ok {
		// Сетевые ошибки и таймауты - провайдер недоступен
		c.log.Error("%s: stripe unreachable (booking id=%d): %v", op, bookingID, err)
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}

	switch {
	case stripeErr.HTTPStatusCode == 404:
		return fmt.Errorf("%w: %s: %v", ErrPaymentNotFound, op, err)
	case stripeErr.Type == stripe.ErrorTypeCard:
		c.log.Warn("%s: payment declined (booking id=%d): %v", op, bookingID, err)
		return fmt.Errorf("%w: %s: %v", ErrPaymentDeclined, op, err)
	case stripeErr.HTTPStatusCode >= 500:
		c.log.Error("%s: stripe server error (booking id=%d): %v", op, bookingID, err)
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	default:
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

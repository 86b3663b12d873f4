package payment_webhook

import (
	"context"

	paymentCallback "github.com/pawtrim/booking-service/internal/usecase/payment_callback"
)

type PaymentCallbackUseCase interface {
	OnPaymentCaptured(ctx context.Context, req *paymentCallback.CapturedRequest) (*paymentCallback.Response, error)
	OnPaymentFailed(ctx context.Context, req *paymentCallback.FailedRequest) (*paymentCallback.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

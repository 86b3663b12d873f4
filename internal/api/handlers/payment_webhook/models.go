package payment_webhook

import (
	paymentCallback "github.com/pawtrim/booking-service/internal/usecase/payment_callback"
)

// Типы событий платёжного провайдера
const (
	EventPaymentCaptured = "payment.captured"
	EventPaymentFailed   = "payment.failed"
)

// WebhookRequest HTTP request model. Подпись события проверяется
// гейтвеем до нас.
type WebhookRequest struct {
	Event       string `json:"event"`
	PaymentRef  string `json:"paymentRef"`
	AmountCents int64  `json:"amountCents,omitempty"`
	ReceiptRef  string `json:"receiptRef,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// WebhookResponse HTTP response model
type WebhookResponse struct {
	BookingID int64  `json:"bookingId"`
	Status    string `json:"status"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *paymentCallback.Response) *WebhookResponse {
	return &WebhookResponse{
		BookingID: resp.BookingID,
		Status:    string(resp.Status),
	}
}

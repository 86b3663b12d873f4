package payment_callback

import "github.com/pawtrim/booking-service/internal/domain"

// CapturedRequest уведомление провайдера об успешном захвате средств
type CapturedRequest struct {
	PaymentRef  string
	AmountCents int64
	ReceiptRef  string
}

// FailedRequest уведомление провайдера о неуспешном платеже
type FailedRequest struct {
	PaymentRef string
	Reason     string
}

// Response итоговый статус бронирования после обработки уведомления
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
}

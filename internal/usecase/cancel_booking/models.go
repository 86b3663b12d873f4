package cancel_booking

import "github.com/pawtrim/booking-service/internal/domain"

// Request модель запроса на отмену бронирования
type Request struct {
	BookingID int64
	ActorID   int64            // кто отменяет
	ActorRole domain.ActorRole // customer / groomer / admin / system
	Reason    string
}

// Response модель ответа на отмену бронирования
type Response struct {
	BookingID     int64
	Status        domain.BookingStatus
	RefundedCents int64
	// RefundPending выставляется, если отмена прошла, но возврат средств
	// у провайдера не удался и будет выполнен позже
	RefundPending bool
}

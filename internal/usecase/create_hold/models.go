package create_hold

import (
	"encoding/json"
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
)

// Request модель запроса на создание hold-бронирования
type Request struct {
	CustomerID int64
	GroomerID  int64
	ServiceID  int64
	StartAt    time.Time // начало слота в часовом поясе салона
	Notes      string
	PetDetails json.RawMessage
}

// Response модель ответа на создание hold-бронирования
type Response struct {
	BookingID      int64
	Status         domain.BookingStatus
	StartAt        time.Time
	EndAt          time.Time
	DepositCents   int64
	TaxCents       int64
	AmountDueCents int64
	HoldExpiresAt  time.Time
	PaymentRef     string // пустой, если авторизация не удалась
}

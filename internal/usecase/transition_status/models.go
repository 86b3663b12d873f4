package transition_status

import "github.com/pawtrim/booking-service/internal/domain"

// Action действие персонала над бронированием
type Action string

const (
	// ActionApprove подтверждает оплаченную запись (awaiting_confirmation -> confirmed)
	ActionApprove Action = "approve"
	// ActionComplete завершает визит (confirmed -> completed), опционально с чаевыми
	ActionComplete Action = "complete"
	// ActionNoShow отмечает неявку клиента (confirmed -> no_show)
	ActionNoShow Action = "no_show"
)

// Request модель запроса на перевод бронирования персоналом
type Request struct {
	BookingID int64
	ActorID   int64
	ActorRole domain.ActorRole
	Action    Action
	TipCents  int64 // только для ActionComplete
}

// Response модель ответа на перевод бронирования
type Response struct {
	BookingID int64
	Status    domain.BookingStatus
}

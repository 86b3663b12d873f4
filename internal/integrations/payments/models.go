package payments

// AuthorizeRequest запрос на авторизацию (холдирование) средств
type AuthorizeRequest struct {
	BookingID   int64
	CustomerID  int64
	AmountCents int64
	Description string
}

// Authorization результат авторизации средств
type Authorization struct {
	PaymentRef string // идентификатор платежа у провайдера
	Status     string
}

// RefundResult результат запроса на возврат средств
type RefundResult struct {
	RefundRef   string
	AmountCents int64
}

package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платёж не найден у провайдера
	ErrPaymentNotFound = errors.New("payments client: payment not found")

	// ErrPaymentDeclined возвращается, когда провайдер отклонил платёж
	ErrPaymentDeclined = errors.New("payments client: payment declined")

	// ErrUnavailable возвращается, когда платёжный провайдер недоступен.
	// Вызывающая сторона не должна менять статус бронирования молча -
	// ошибка обязана дойти до пользователя или лога ручного разбора.
	ErrUnavailable = errors.New("payments client: provider unavailable")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("payments client: internal error")
)

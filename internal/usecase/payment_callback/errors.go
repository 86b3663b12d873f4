package payment_callback

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("payment_callback: invalid input data")

	// ErrBookingNotFound возвращается, если по платёжному идентификатору
	// не найдено бронирование
	ErrBookingNotFound = errors.New("payment_callback: booking not found for payment ref")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("payment_callback: internal error")
)

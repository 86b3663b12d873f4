package cancel_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrBookingNotFound возвращается, если бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, если клиент пытается отменить чужое
	// бронирование
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrStatusConflict возвращается при попытке отменить бронирование в
	// терминальном статусе (completed, no_show, уже canceled)
	ErrStatusConflict = errors.New("cancel_booking: booking status does not allow cancellation")

	// ErrCancellationWindow возвращается, если клиент отменяет запись
	// слишком близко к её началу (политика салона)
	ErrCancellationWindow = errors.New("cancel_booking: cancellation window has passed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)

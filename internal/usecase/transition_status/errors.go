package transition_status

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("transition_status: invalid input data")

	// ErrBookingNotFound возвращается, если бронирование не найдено
	ErrBookingNotFound = errors.New("transition_status: booking not found")

	// ErrAccessDenied возвращается, если действие запрошено не персоналом
	ErrAccessDenied = errors.New("transition_status: access denied")

	// ErrStatusConflict возвращается, если текущий статус бронирования
	// не допускает запрошенный переход
	ErrStatusConflict = errors.New("transition_status: transition not allowed from current status")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("transition_status: internal error")
)

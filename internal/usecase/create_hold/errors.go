package create_hold

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_hold: invalid input data")

	// ErrServiceNotFound возвращается, если услуга не найдена или неактивна
	ErrServiceNotFound = errors.New("create_hold: service not found")

	// ErrGroomerNotFound возвращается, если грумер не найден или неактивен
	ErrGroomerNotFound = errors.New("create_hold: groomer not found")

	// ErrSlotTaken возвращается, если запрошенный слот уже занят
	ErrSlotTaken = errors.New("create_hold: slot is already taken")

	// ErrSlotUnavailable возвращается, если слот вне рабочего расписания
	// грумера (нерабочее время, blackout-дата)
	ErrSlotUnavailable = errors.New("create_hold: slot is outside working hours")

	// ErrLeadTimeViolation возвращается, если до начала слота осталось
	// меньше минимального lead time грумера
	ErrLeadTimeViolation = errors.New("create_hold: slot start violates minimum lead time")

	// ErrPaymentDeclined возвращается, если провайдер отклонил авторизацию
	// средств (hold при этом сохраняется до истечения срока)
	ErrPaymentDeclined = errors.New("create_hold: payment authorization declined")

	// ErrPaymentUnavailable возвращается, если платёжный провайдер недоступен
	// (hold при этом сохраняется до истечения срока)
	ErrPaymentUnavailable = errors.New("create_hold: payment provider unavailable")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_hold: internal error")
)

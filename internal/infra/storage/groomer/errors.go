package groomer

import "errors"

var (
	// ErrGroomerNotFound возвращается, когда грумер не найден
	ErrGroomerNotFound = errors.New("groomer.repository: groomer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("groomer.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("groomer.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("groomer.repository: failed to scan row")

	// ErrEncodeSchedule возвращается при ошибке сериализации расписания
	ErrEncodeSchedule = errors.New("groomer.repository: failed to encode schedule")

	// ErrDecodeSchedule возвращается при ошибке десериализации расписания
	ErrDecodeSchedule = errors.New("groomer.repository: failed to decode schedule")
)

package get_available_slots

import (
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	GroomerID int64     // ID грумера
	ServiceID int64     // ID услуги (определяет длительность слота)
	Date      time.Time // Календарная дата в часовом поясе салона (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date      time.Time // Дата, на которую запрашивались слоты
	GroomerID int64
	ServiceID int64
	Slots     []domain.AvailableSlot
}

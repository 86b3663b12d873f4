package get_available_slots

import (
	"time"

	"github.com/pawtrim/booking-service/internal/domain"
	getAvailableSlots "github.com/pawtrim/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date      string          `json:"date"`
	GroomerID int64           `json:"groomerId"`
	ServiceID int64           `json:"serviceId"`
	Slots     []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartAt         string `json:"startAt"`   // ISO 8601
	StartTime       string `json:"startTime"` // "HH:MM"
	DurationMinutes int    `json:"durationMinutes"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(groomerID, serviceID int64, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		GroomerID: groomerID,
		ServiceID: serviceID,
		Date:      date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartAt:         slot.StartAt.Format(time.RFC3339),
			StartTime:       slot.StartTime.String(),
			DurationMinutes: slot.DurationMinutes,
		}
	}

	return &AvailableSlotsResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		GroomerID: resp.GroomerID,
		ServiceID: resp.ServiceID,
		Slots:     slots,
	}
}

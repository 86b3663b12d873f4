package create_hold

import (
	"encoding/json"
	"time"

	createHold "github.com/pawtrim/booking-service/internal/usecase/create_hold"
)

// CreateHoldRequest HTTP request model
type CreateHoldRequest struct {
	GroomerID  int64           `json:"groomerId"`
	ServiceID  int64           `json:"serviceId"`
	StartAt    string          `json:"startAt"` // ISO 8601
	Notes      string          `json:"notes,omitempty"`
	PetDetails json.RawMessage `json:"petDetails,omitempty"`
}

// HoldResponse HTTP response model
type HoldResponse struct {
	BookingID      int64  `json:"bookingId"`
	Status         string `json:"status"`
	StartAt        string `json:"startAt"`
	EndAt          string `json:"endAt"`
	DepositCents   int64  `json:"depositCents"`
	TaxCents       int64  `json:"taxCents"`
	AmountDueCents int64  `json:"amountDueCents"`
	HoldExpiresAt  string `json:"holdExpiresAt"`
	PaymentRef     string `json:"paymentRef,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateHoldRequest) ToUseCaseRequest(customerID int64) (*createHold.Request, error) {
	startAt, err := time.Parse(time.RFC3339, r.StartAt)
	if err != nil {
		return nil, err
	}

	return &createHold.Request{
		CustomerID: customerID,
		GroomerID:  r.GroomerID,
		ServiceID:  r.ServiceID,
		StartAt:    startAt,
		Notes:      r.Notes,
		PetDetails: r.PetDetails,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createHold.Response) *HoldResponse {
	return &HoldResponse{
		BookingID:      resp.BookingID,
		Status:         string(resp.Status),
		StartAt:        resp.StartAt.Format(time.RFC3339),
		EndAt:          resp.EndAt.Format(time.RFC3339),
		DepositCents:   resp.DepositCents,
		TaxCents:       resp.TaxCents,
		AmountDueCents: resp.AmountDueCents,
		HoldExpiresAt:  resp.HoldExpiresAt.Format(time.RFC3339),
		PaymentRef:     resp.PaymentRef,
	}
}

package sweep_holds

import (
	"net/http"

	"github.com/pawtrim/booking-service/internal/api/handlers"
)

// SweepResponse HTTP response model
type SweepResponse struct {
	Scanned int `json:"scanned"`
	Expired int `json:"expired"`
	Skipped int `json:"skipped"`
}

type Handler struct {
	useCase ExpireHoldsUseCase
	logger  Logger
}

func NewHandler(useCase ExpireHoldsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /internal/sweep-holds
// Ручной запуск прохода по истёкшим hold для внешних планировщиков;
// тот же usecase крутится и по внутреннему cron-расписанию.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("POST /internal/sweep-holds - Sweep failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /internal/sweep-holds - Sweep done: scanned=%d, expired=%d, skipped=%d",
		result.Scanned, result.Expired, result.Skipped)
	handlers.RespondJSON(w, http.StatusOK, SweepResponse{
		Scanned: result.Scanned,
		Expired: result.Expired,
		Skipped: result.Skipped,
	})
}

package list_groomers

import (
	"net/http"

	"github.com/pawtrim/booking-service/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/groomers
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListGroomers(r.Context())
	if err != nil {
		h.logger.Error("GET /groomers - Failed to list groomers: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /groomers - Retrieved %d groomers", len(result.Groomers))
	handlers.RespondJSON(w, http.StatusOK, result)
}

package get_color_rules

import (
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/color-rules
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result := h.service.Get(r.Context())

	handlers.RespondJSON(w, http.StatusOK, result)
}

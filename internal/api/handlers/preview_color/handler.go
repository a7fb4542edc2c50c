package preview_color

import (
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

const msgInvalidRequestBody = "некорректное тело запроса"

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

// Handle POST /api/v1/color-rules/preview
// Тело запроса - само событие
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.PreviewRequest
	if err := handlers.DecodeJSON(r, &req.Event); err != nil {
		h.logger.Warn("POST /color-rules/preview - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result := h.service.Preview(r.Context(), &req)

	h.logger.Info("POST /color-rules/preview - Resolved: tier=%s, color=%s", result.Tier, result.DisplayColor)
	handlers.RespondJSON(w, http.StatusOK, result)
}

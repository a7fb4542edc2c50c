package reorder_priorities

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

const (
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidOrder       = "порядок должен содержать каждый уровень ровно один раз"
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

// Handle PUT /api/v1/color-rules/priority-order
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /color-rules/priority-order - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.ReorderPrioritiesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /color-rules/priority-order - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.ReorderPriorities(r.Context(), &req)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidInput) {
			h.logger.Warn("PUT /color-rules/priority-order - Invalid order: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidOrder)
			return
		}

		h.logger.Error("PUT /color-rules/priority-order - Failed to reorder: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PUT /color-rules/priority-order - Order updated: user_id=%d, version=%d", userID, result.Version)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package update_rule_toggles

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
	msgNoToggles          = "не передано ни одного переключателя"
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

// Handle PATCH /api/v1/color-rules/toggles
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /color-rules/toggles - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateTogglesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /color-rules/toggles - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdateToggles(r.Context(), &req)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidInput) {
			h.logger.Warn("PATCH /color-rules/toggles - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgNoToggles)
			return
		}

		h.logger.Error("PATCH /color-rules/toggles - Failed to update toggles: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("PATCH /color-rules/toggles - Toggles updated: user_id=%d, version=%d", userID, result.Version)
	handlers.RespondJSON(w, http.StatusOK, result)
}

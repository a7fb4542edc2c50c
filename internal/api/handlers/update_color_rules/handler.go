package update_color_rules

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
	msgInvalidData        = "некорректные данные правил"
	msgVersionConflict    = "правила уже изменены другим пользователем, обновите страницу"
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

// Handle PUT /api/v1/color-rules
// Тело - конфигурация целиком вместе с версией, которую видел пользователь
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /color-rules - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Декодируем body
	var req models.ReplaceRulesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /color-rules - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.Replace(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, rules.ErrVersionConflict):
			h.logger.Warn("PUT /color-rules - Version conflict: user_id=%d, version=%d", userID, req.Version)
			handlers.RespondConflict(w, msgVersionConflict)

		case errors.Is(err, rules.ErrInvalidInput):
			h.logger.Warn("PUT /color-rules - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /color-rules - Failed to replace rules: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /color-rules - Rules replaced: user_id=%d, version=%d", userID, result.Version)
	handlers.RespondJSON(w, http.StatusOK, result)
}

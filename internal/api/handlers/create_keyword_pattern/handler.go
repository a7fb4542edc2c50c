package create_keyword_pattern

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
	msgInvalidData        = "некорректные данные шаблона"
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

// Handle POST /api/v1/color-rules/patterns
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /color-rules/patterns - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.KeywordPatternRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /color-rules/patterns - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreatePattern(r.Context(), &req)
	if err != nil {
		if errors.Is(err, rules.ErrInvalidInput) {
			h.logger.Warn("POST /color-rules/patterns - Invalid data: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidData)
			return
		}

		h.logger.Error("POST /color-rules/patterns - Failed to create pattern: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /color-rules/patterns - Pattern created: user_id=%d, pattern_id=%s", userID, result.Pattern.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

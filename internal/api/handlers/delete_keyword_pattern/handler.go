package delete_keyword_pattern

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
	"github.com/m04kA/SMC-CalendarService/internal/api/middleware"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgNotFound      = "шаблон не найден"
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

// Handle DELETE /api/v1/color-rules/patterns/{patternId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	patternID := mux.Vars(r)["patternId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /color-rules/patterns/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeletePattern(r.Context(), patternID, userID); err != nil {
		if errors.Is(err, rules.ErrPatternNotFound) {
			h.logger.Warn("DELETE /color-rules/patterns/{id} - Pattern not found: pattern_id=%s", patternID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /color-rules/patterns/{id} - Failed to delete pattern: pattern_id=%s, error=%v", patternID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /color-rules/patterns/{id} - Pattern deleted: user_id=%d, pattern_id=%s", userID, patternID)
	w.WriteHeader(http.StatusNoContent)
}

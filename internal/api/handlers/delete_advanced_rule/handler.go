package delete_advanced_rule

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
	msgNotFound      = "правило не найдено"
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

// Handle DELETE /api/v1/color-rules/advanced-rules/{ruleId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ruleID := mux.Vars(r)["ruleId"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /color-rules/advanced-rules/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteAdvancedRule(r.Context(), ruleID, userID); err != nil {
		if errors.Is(err, rules.ErrRuleNotFound) {
			h.logger.Warn("DELETE /color-rules/advanced-rules/{id} - Rule not found: rule_id=%s", ruleID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}

		h.logger.Error("DELETE /color-rules/advanced-rules/{id} - Failed to delete rule: rule_id=%s, error=%v", ruleID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /color-rules/advanced-rules/{id} - Rule deleted: user_id=%d, rule_id=%s", userID, ruleID)
	w.WriteHeader(http.StatusNoContent)
}

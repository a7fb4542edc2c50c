package update_advanced_rule

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

type RulesService interface {
	UpdateAdvancedRule(ctx context.Context, ruleID string, req *models.AdvancedRuleRequest) (*models.AdvancedRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_advanced_rule

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

type RulesService interface {
	CreateAdvancedRule(ctx context.Context, req *models.AdvancedRuleRequest) (*models.AdvancedRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

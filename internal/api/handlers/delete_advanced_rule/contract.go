package delete_advanced_rule

import "context"

type RulesService interface {
	DeleteAdvancedRule(ctx context.Context, ruleID string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

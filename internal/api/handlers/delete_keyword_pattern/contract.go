package delete_keyword_pattern

import "context"

type RulesService interface {
	DeletePattern(ctx context.Context, patternID string, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

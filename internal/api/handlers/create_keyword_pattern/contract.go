package create_keyword_pattern

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

type RulesService interface {
	CreatePattern(ctx context.Context, req *models.KeywordPatternRequest) (*models.KeywordPatternResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

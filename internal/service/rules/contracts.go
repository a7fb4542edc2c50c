package rules

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// RulesStore интерфейс хранилища конфигурации правил
type RulesStore interface {
	Current(ctx context.Context) *domain.RuleConfiguration
	Update(ctx context.Context, fn func(cfg *domain.RuleConfiguration) error) (*domain.RuleConfiguration, error)
	Replace(ctx context.Context, expectedVersion int64, cfg *domain.RuleConfiguration) (*domain.RuleConfiguration, error)
	Load(ctx context.Context, cfg *domain.RuleConfiguration) (*domain.RuleConfiguration, error)
}

// MetricsCollector интерфейс для метрик версии конфигурации
type MetricsCollector interface {
	SetRulesVersion(version int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package import_calendar

import (
	"context"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// CalendarFetcher интерфейс клиента для загрузки календаря по ссылке
type CalendarFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// CalendarParser интерфейс парсера iCalendar
type CalendarParser interface {
	Parse(body []byte) ([]domain.CalendarEvent, error)
}

// RulesProvider источник текущей конфигурации правил раскраски
type RulesProvider interface {
	Current(ctx context.Context) *domain.RuleConfiguration
}

// MetricsCollector интерфейс для метрик раскраски
type MetricsCollector interface {
	ObserveResolution(tier string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

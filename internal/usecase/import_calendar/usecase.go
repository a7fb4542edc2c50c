package import_calendar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/colorrules"
	icsClient "github.com/m04kA/SMC-CalendarService/internal/integrations/ics"
)

// UseCase use case для импорта календаря iCalendar с раскраской событий
type UseCase struct {
	fetcher CalendarFetcher
	parser  CalendarParser
	rules   RulesProvider
	metrics MetricsCollector
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
// metrics может быть nil (метрики выключены)
func NewUseCase(
	fetcher CalendarFetcher,
	parser CalendarParser,
	rules RulesProvider,
	metrics MetricsCollector,
	logger Logger,
) *UseCase {
	return &UseCase{
		fetcher: fetcher,
		parser:  parser,
		rules:   rules,
		metrics: metrics,
		logger:  logger,
	}
}

// Execute выполняет use case импорта календаря
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ImportCalendar: user=%d, from url=%t", req.UserID, req.URL != "")

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ImportCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем содержимое календаря
	body := []byte(req.ICS)
	if req.URL != "" {
		fetched, err := uc.fetcher.Fetch(ctx, strings.TrimSpace(req.URL))
		if err != nil {
			return nil, uc.fetchError(err)
		}
		body = fetched
	}

	// 3. Разбираем события
	events, err := uc.parser.Parse(body)
	if err != nil {
		if errors.Is(err, icsClient.ErrEmptyCalendar) || errors.Is(err, icsClient.ErrParseCalendar) {
			uc.logger.Warn("ImportCalendar: invalid calendar: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrInvalidCalendar, err)
		}
		uc.logger.Error("ImportCalendar: failed to parse calendar: %v", err)
		return nil, fmt.Errorf("%w: failed to parse calendar: %v", ErrInternal, err)
	}

	// 4. Раскрашиваем события по одному снимку правил
	cfg := uc.rules.Current(ctx)
	colored := make([]ColoredEvent, 0, len(events))
	for i := range events {
		decision := colorrules.DisplayColor(&events[i], cfg)
		if uc.metrics != nil {
			uc.metrics.ObserveResolution(string(decision.Source))
		}

		colored = append(colored, ColoredEvent{
			Event:       events[i],
			Color:       decision.Color,
			Source:      decision.Source,
			RuleID:      decision.Match.RuleID,
			RuleName:    decision.Match.RuleName,
			Explanation: decision.Explanation,
		})
	}

	uc.logger.Info("ImportCalendar: %d events colored with rules version=%d", len(colored), cfg.Version)

	return &Response{
		RulesVersion: cfg.Version,
		Events:       colored,
	}, nil
}

// fetchError переводит ошибки клиента в ошибки use case
func (uc *UseCase) fetchError(err error) error {
	switch {
	case errors.Is(err, icsClient.ErrInvalidURL), errors.Is(err, icsClient.ErrForbiddenHost):
		uc.logger.Warn("ImportCalendar: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, icsClient.ErrCalendarNotFound):
		uc.logger.Warn("ImportCalendar: calendar not found")
		return ErrCalendarNotFound
	case errors.Is(err, icsClient.ErrBodyTooLarge):
		uc.logger.Warn("ImportCalendar: %v", err)
		return ErrCalendarTooLarge
	default:
		uc.logger.Error("ImportCalendar: failed to fetch calendar: %v", err)
		return fmt.Errorf("%w: %v", ErrCalendarUnavailable, err)
	}
}

package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-CalendarService/internal/colorrules"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	rulesStore "github.com/m04kA/SMC-CalendarService/internal/infra/storage/rules"
	"github.com/m04kA/SMC-CalendarService/internal/service/rules/models"
)

// Service сервис для работы с правилами раскраски календаря
type Service struct {
	store   RulesStore
	metrics MetricsCollector
	logger  Logger
	newID   func() string
}

// NewService создает новый экземпляр сервиса правил
// metrics может быть nil (метрики выключены)
func NewService(
	store RulesStore,
	metrics MetricsCollector,
	logger Logger,
) *Service {
	return &Service{
		store:   store,
		metrics: metrics,
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Get возвращает текущую конфигурацию правил
func (s *Service) Get(ctx context.Context) *models.RulesResponse {
	return models.FromDomainRules(s.store.Current(ctx))
}

// Current возвращает копию текущей конфигурации для резолвера
func (s *Service) Current(ctx context.Context) *domain.RuleConfiguration {
	return s.store.Current(ctx)
}

// Replace полностью заменяет конфигурацию
// Если с момента чтения конфигурация изменилась, возвращает ErrVersionConflict
func (s *Service) Replace(ctx context.Context, req *models.ReplaceRulesRequest) (*models.RulesResponse, error) {
	s.logger.Info("Replace: replacing color rules (expected version=%d) by user=%d", req.Version, req.UserID)

	cfg := req.ToDomain()
	if err := validateConfiguration(cfg); err != nil {
		s.logger.Warn("Replace: validation failed: %v", err)
		return nil, err
	}

	published, err := s.store.Replace(ctx, req.Version, cfg)
	if err != nil {
		if errors.Is(err, rulesStore.ErrVersionConflict) {
			s.logger.Warn("Replace: version conflict for user=%d: %v", req.UserID, err)
			return nil, ErrVersionConflict
		}
		s.logger.Error("Replace: failed to publish color rules: %v", err)
		return nil, fmt.Errorf("%w: failed to publish color rules: %v", ErrInternal, err)
	}

	s.published(published)
	s.logger.Info("Replace: color rules replaced, version=%d", published.Version)
	return models.FromDomainRules(published), nil
}

// UpdateToggles меняет переключатели (общий и по разделам)
func (s *Service) UpdateToggles(ctx context.Context, req *models.UpdateTogglesRequest) (*models.RulesResponse, error) {
	s.logger.Info("UpdateToggles: updating toggles by user=%d", req.UserID)

	if req.Enabled == nil && req.CustomPatternsEnabled == nil && req.TimeBasedEnabled == nil && req.RecurringEnabled == nil {
		s.logger.Warn("UpdateToggles: empty request from user=%d", req.UserID)
		return nil, fmt.Errorf("%w: at least one toggle is required", ErrInvalidInput)
	}

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		if req.Enabled != nil {
			cfg.Enabled = *req.Enabled
		}
		if req.CustomPatternsEnabled != nil {
			cfg.CustomPatterns.Enabled = *req.CustomPatternsEnabled
		}
		if req.TimeBasedEnabled != nil {
			cfg.TimeBasedRules.Enabled = *req.TimeBasedEnabled
		}
		if req.RecurringEnabled != nil {
			cfg.RecurringRules.Enabled = *req.RecurringEnabled
		}
		return nil
	})
	if err != nil {
		s.logger.Error("UpdateToggles: failed to update color rules: %v", err)
		return nil, fmt.Errorf("%w: failed to update toggles: %v", ErrInternal, err)
	}

	s.published(published)
	return models.FromDomainRules(published), nil
}

// CreateAdvancedRule добавляет расширенное правило в конец списка
func (s *Service) CreateAdvancedRule(ctx context.Context, req *models.AdvancedRuleRequest) (*models.AdvancedRuleResponse, error) {
	s.logger.Info("CreateAdvancedRule: creating rule %q by user=%d", req.Name, req.UserID)

	rule, err := s.advancedRuleFromRequest(s.newID(), req)
	if err != nil {
		s.logger.Warn("CreateAdvancedRule: validation failed: %v", err)
		return nil, err
	}

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		if len(cfg.AdvancedRules) >= domain.MaxAdvancedRules {
			return fmt.Errorf("%w: at most %d advanced rules allowed", ErrInvalidInput, domain.MaxAdvancedRules)
		}
		cfg.AdvancedRules = append(cfg.AdvancedRules, rule)
		return nil
	})
	if err != nil {
		return nil, s.mutationError("CreateAdvancedRule", err)
	}

	s.published(published)
	s.logger.Info("CreateAdvancedRule: rule id=%s created, version=%d", rule.ID, published.Version)
	return &models.AdvancedRuleResponse{Version: published.Version, Rule: rule}, nil
}

// UpdateAdvancedRule заменяет расширенное правило, сохраняя его ID и позицию
func (s *Service) UpdateAdvancedRule(ctx context.Context, ruleID string, req *models.AdvancedRuleRequest) (*models.AdvancedRuleResponse, error) {
	s.logger.Info("UpdateAdvancedRule: updating rule id=%s by user=%d", ruleID, req.UserID)

	rule, err := s.advancedRuleFromRequest(ruleID, req)
	if err != nil {
		s.logger.Warn("UpdateAdvancedRule: validation failed: %v", err)
		return nil, err
	}

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		idx := cfg.FindAdvancedRule(ruleID)
		if idx < 0 {
			return ErrRuleNotFound
		}
		cfg.AdvancedRules[idx] = rule
		return nil
	})
	if err != nil {
		return nil, s.mutationError("UpdateAdvancedRule", err)
	}

	s.published(published)
	return &models.AdvancedRuleResponse{Version: published.Version, Rule: rule}, nil
}

// DeleteAdvancedRule удаляет расширенное правило
func (s *Service) DeleteAdvancedRule(ctx context.Context, ruleID string, userID int64) error {
	s.logger.Info("DeleteAdvancedRule: deleting rule id=%s by user=%d", ruleID, userID)

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		idx := cfg.FindAdvancedRule(ruleID)
		if idx < 0 {
			return ErrRuleNotFound
		}
		cfg.AdvancedRules = append(cfg.AdvancedRules[:idx], cfg.AdvancedRules[idx+1:]...)
		return nil
	})
	if err != nil {
		return s.mutationError("DeleteAdvancedRule", err)
	}

	s.published(published)
	return nil
}

// CreatePattern добавляет шаблон ключевых слов
func (s *Service) CreatePattern(ctx context.Context, req *models.KeywordPatternRequest) (*models.KeywordPatternResponse, error) {
	s.logger.Info("CreatePattern: creating pattern %q by user=%d", req.Name, req.UserID)

	pattern := domain.KeywordPattern{
		ID:       s.newID(),
		Name:     req.Name,
		Enabled:  req.Enabled == nil || *req.Enabled,
		Color:    req.Color,
		Keywords: append([]string(nil), req.Keywords...),
	}
	if err := validatePattern(pattern); err != nil {
		s.logger.Warn("CreatePattern: validation failed: %v", err)
		return nil, err
	}

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		if len(cfg.CustomPatterns.Patterns) >= domain.MaxKeywordPatterns {
			return fmt.Errorf("%w: at most %d keyword patterns allowed", ErrInvalidInput, domain.MaxKeywordPatterns)
		}
		cfg.CustomPatterns.Patterns = append(cfg.CustomPatterns.Patterns, pattern)
		return nil
	})
	if err != nil {
		return nil, s.mutationError("CreatePattern", err)
	}

	s.published(published)
	s.logger.Info("CreatePattern: pattern id=%s created, version=%d", pattern.ID, published.Version)
	return &models.KeywordPatternResponse{Version: published.Version, Pattern: pattern}, nil
}

// DeletePattern удаляет шаблон ключевых слов
func (s *Service) DeletePattern(ctx context.Context, patternID string, userID int64) error {
	s.logger.Info("DeletePattern: deleting pattern id=%s by user=%d", patternID, userID)

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		idx := cfg.FindPattern(patternID)
		if idx < 0 {
			return ErrPatternNotFound
		}
		patterns := cfg.CustomPatterns.Patterns
		cfg.CustomPatterns.Patterns = append(patterns[:idx], patterns[idx+1:]...)
		return nil
	})
	if err != nil {
		return s.mutationError("DeletePattern", err)
	}

	s.published(published)
	return nil
}

// ReorderPriorities сохраняет порядок уровней, показываемый в настройках
// Порядок применения правил резолвером при этом не меняется
func (s *Service) ReorderPriorities(ctx context.Context, req *models.ReorderPrioritiesRequest) (*models.RulesResponse, error) {
	s.logger.Info("ReorderPriorities: reordering tiers %v by user=%d", req.Order, req.UserID)

	if err := validatePriorityOrder(req.Order); err != nil {
		s.logger.Warn("ReorderPriorities: validation failed: %v", err)
		return nil, err
	}

	published, err := s.store.Update(ctx, func(cfg *domain.RuleConfiguration) error {
		cfg.PriorityOrder = append([]domain.Tier(nil), req.Order...)
		return nil
	})
	if err != nil {
		return nil, s.mutationError("ReorderPriorities", err)
	}

	s.published(published)
	return models.FromDomainRules(published), nil
}

// Reset возвращает конфигурацию по умолчанию (номер версии продолжает расти)
func (s *Service) Reset(ctx context.Context, userID int64) (*models.RulesResponse, error) {
	s.logger.Info("Reset: resetting color rules to defaults by user=%d", userID)

	published, err := s.store.Load(ctx, domain.DefaultRuleConfiguration())
	if err != nil {
		s.logger.Error("Reset: failed to publish defaults: %v", err)
		return nil, fmt.Errorf("%w: failed to reset color rules: %v", ErrInternal, err)
	}

	s.published(published)
	return models.FromDomainRules(published), nil
}

// ApplyPreset публикует конфигурацию из файла пресета
func (s *Service) ApplyPreset(ctx context.Context, cfg *domain.RuleConfiguration) (int64, error) {
	if err := validateConfiguration(cfg); err != nil {
		s.logger.Warn("ApplyPreset: preset rejected: %v", err)
		return 0, err
	}

	published, err := s.store.Load(ctx, cfg)
	if err != nil {
		s.logger.Error("ApplyPreset: failed to publish preset: %v", err)
		return 0, fmt.Errorf("%w: failed to apply preset: %v", ErrInternal, err)
	}

	s.published(published)
	s.logger.Info("ApplyPreset: preset applied, version=%d", published.Version)
	return published.Version, nil
}

// Preview показывает, какой цвет получит событие при текущих правилах
func (s *Service) Preview(ctx context.Context, req *models.PreviewRequest) *models.PreviewResponse {
	cfg := s.store.Current(ctx)
	event := req.Event

	m := colorrules.Resolve(&event, cfg)
	explanation := colorrules.ExplainAppliedRule(&event, cfg)
	decision := colorrules.DisplayColor(&event, cfg)

	return models.FromDecision(cfg.Version, m, explanation, decision)
}

// advancedRuleFromRequest собирает и проверяет правило из запроса
func (s *Service) advancedRuleFromRequest(id string, req *models.AdvancedRuleRequest) (domain.AdvancedRule, error) {
	conditions, err := normalizeConditions(req.Conditions)
	if err != nil {
		return domain.AdvancedRule{}, err
	}

	rule := domain.AdvancedRule{
		ID:         id,
		Name:       req.Name,
		Enabled:    req.Enabled == nil || *req.Enabled,
		Color:      req.Color,
		Conditions: conditions,
	}
	if err := validateAdvancedRule(rule); err != nil {
		return domain.AdvancedRule{}, err
	}
	return rule, nil
}

// mutationError пропускает бизнес-ошибки, остальное заворачивает в ErrInternal
func (s *Service) mutationError(op string, err error) error {
	switch {
	case errors.Is(err, ErrRuleNotFound), errors.Is(err, ErrPatternNotFound):
		s.logger.Warn("%s: %v", op, err)
		return err
	case errors.Is(err, ErrInvalidInput):
		s.logger.Warn("%s: validation failed: %v", op, err)
		return err
	default:
		s.logger.Error("%s: failed to update color rules: %v", op, err)
		return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
	}
}

// published обновляет метрику версии конфигурации
func (s *Service) published(cfg *domain.RuleConfiguration) {
	if s.metrics != nil {
		s.metrics.SetRulesVersion(cfg.Version)
	}
}

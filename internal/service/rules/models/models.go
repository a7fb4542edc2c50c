package models

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/colorrules"
	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модели

// ReplaceRulesRequest запрос на полную замену конфигурации
// Version - версия, которую видел пользователь при редактировании
type ReplaceRulesRequest struct {
	UserID         int64                 `json:"-"`
	Version        int64                 `json:"version"`
	Enabled        bool                  `json:"enabled"`
	AdvancedRules  []domain.AdvancedRule `json:"advancedRules"`
	CustomPatterns domain.CustomPatterns `json:"customPatterns"`
	TimeBasedRules domain.TimeBasedRules `json:"timeBasedRules"`
	RecurringRules domain.RecurringRules `json:"recurringRules"`
	Palette        domain.Palette        `json:"palette"`
	PriorityOrder  []domain.Tier         `json:"priorityOrder"`
}

// UpdateTogglesRequest запрос на изменение переключателей
// Все поля опциональны - обновляются только переданные значения
type UpdateTogglesRequest struct {
	UserID                int64 `json:"-"`
	Enabled               *bool `json:"enabled,omitempty"`
	CustomPatternsEnabled *bool `json:"customPatternsEnabled,omitempty"`
	TimeBasedEnabled      *bool `json:"timeBasedEnabled,omitempty"`
	RecurringEnabled      *bool `json:"recurringEnabled,omitempty"`
}

// AdvancedRuleRequest запрос на создание или изменение расширенного правила
type AdvancedRuleRequest struct {
	UserID     int64                  `json:"-"`
	Name       string                 `json:"name"`
	Enabled    *bool                  `json:"enabled,omitempty"` // по умолчанию true
	Color      string                 `json:"color"`
	Conditions map[string]interface{} `json:"conditions"`
}

// KeywordPatternRequest запрос на создание шаблона ключевых слов
type KeywordPatternRequest struct {
	UserID   int64    `json:"-"`
	Name     string   `json:"name"`
	Enabled  *bool    `json:"enabled,omitempty"` // по умолчанию true
	Color    string   `json:"color"`
	Keywords []string `json:"keywords"`
}

// ReorderPrioritiesRequest запрос на изменение порядка уровней в настройках
type ReorderPrioritiesRequest struct {
	UserID int64         `json:"-"`
	Order  []domain.Tier `json:"order"`
}

// PreviewRequest запрос на предпросмотр цвета события
type PreviewRequest struct {
	Event domain.CalendarEvent `json:"event"`
}

// Response модели

// RulesResponse ответ с текущей конфигурацией правил
type RulesResponse struct {
	Version        int64                  `json:"version"`
	UpdatedAt      time.Time              `json:"updatedAt"`
	Enabled        bool                   `json:"enabled"`
	AdvancedRules  []domain.AdvancedRule  `json:"advancedRules"`
	CustomPatterns domain.CustomPatterns  `json:"customPatterns"`
	TimeBasedRules domain.TimeBasedRules  `json:"timeBasedRules"`
	RecurringRules domain.RecurringRules  `json:"recurringRules"`
	Palette        domain.Palette         `json:"palette"`
	PriorityOrder  []domain.Tier          `json:"priorityOrder"`
	TierLabels     map[domain.Tier]string `json:"tierLabels"` // подписи уровней для экрана настроек
}

// AdvancedRuleResponse ответ с расширенным правилом
type AdvancedRuleResponse struct {
	Version int64               `json:"version"`
	Rule    domain.AdvancedRule `json:"rule"`
}

// KeywordPatternResponse ответ с шаблоном ключевых слов
type KeywordPatternResponse struct {
	Version int64                 `json:"version"`
	Pattern domain.KeywordPattern `json:"pattern"`
}

// PreviewResponse результат работы резолвера для одного события
type PreviewResponse struct {
	Color         string      `json:"color,omitempty"`
	Matched       bool        `json:"matched"`
	Tier          domain.Tier `json:"tier"`
	RuleID        string      `json:"ruleId,omitempty"`
	RuleName      string      `json:"ruleName,omitempty"`
	Explanation   string      `json:"explanation"`
	DisplayColor  string      `json:"displayColor"`
	DisplaySource domain.Tier `json:"displaySource"`
	Version       int64       `json:"version"`
}

// Методы конвертации

// ToDomain собирает конфигурацию из запроса (версия выставляется хранилищем)
func (r *ReplaceRulesRequest) ToDomain() *domain.RuleConfiguration {
	cfg := &domain.RuleConfiguration{
		Enabled:        r.Enabled,
		AdvancedRules:  r.AdvancedRules,
		CustomPatterns: r.CustomPatterns,
		TimeBasedRules: r.TimeBasedRules,
		RecurringRules: r.RecurringRules,
		Palette:        r.Palette,
		PriorityOrder:  r.PriorityOrder,
	}
	// Отвязываемся от слайсов и карт запроса
	return cfg.Clone()
}

// FromDomainRules конвертирует domain модель в DTO
func FromDomainRules(cfg *domain.RuleConfiguration) *RulesResponse {
	if cfg == nil {
		return nil
	}

	labels := make(map[domain.Tier]string, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		labels[tier] = colorrules.TierLabels[tier]
	}

	return &RulesResponse{
		Version:        cfg.Version,
		UpdatedAt:      cfg.UpdatedAt,
		Enabled:        cfg.Enabled,
		AdvancedRules:  cfg.AdvancedRules,
		CustomPatterns: cfg.CustomPatterns,
		TimeBasedRules: cfg.TimeBasedRules,
		RecurringRules: cfg.RecurringRules,
		Palette:        cfg.Palette,
		PriorityOrder:  cfg.PriorityOrder,
		TierLabels:     labels,
	}
}

// FromDecision конвертирует решение резолвера в DTO
// explanation описывает правило автоматизации, d - итоговый цвет отрисовки
func FromDecision(version int64, m colorrules.Match, explanation string, d colorrules.Decision) *PreviewResponse {
	return &PreviewResponse{
		Color:         m.Color,
		Matched:       m.Matched(),
		Tier:          m.Tier,
		RuleID:        m.RuleID,
		RuleName:      m.RuleName,
		Explanation:   explanation,
		DisplayColor:  d.Color,
		DisplaySource: d.Source,
		Version:       version,
	}
}

// Package colorrules подбирает цвет события календаря по каскаду правил автоматизации.
//
// Порядок уровней фиксирован (domain.Tiers) и не зависит от RuleConfiguration.PriorityOrder.
// Все функции пакета чистые: результат зависит только от аргументов.
package colorrules

import (
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Duration buckets
const (
	DurationShort  = "short"
	DurationMedium = "medium"
	DurationLong   = "long"
	DurationAllDay = "all-day"
)

// Match результат прохода по каскаду правил
type Match struct {
	Tier     domain.Tier
	Color    string
	RuleID   string // ID расширенного правила или шаблона
	RuleName string // имя правила, слота, ключ палитры
	Keyword  string // сработавшее ключевое слово (только для TierPattern)
	Minutes  int    // длительность события (только для TierDuration, кроме all-day)
}

// Matched returns true if some tier produced a color
func (m Match) Matched() bool {
	return m.Tier != domain.TierNone && m.Color != ""
}

var noMatch = Match{Tier: domain.TierNone}

// Resolve проходит уровни 2-10 каскада и возвращает первое совпадение
// Ручной цвет события (уровень 1) здесь не учитывается - его обрабатывает DisplayColor
func Resolve(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) Match {
	if event == nil || cfg == nil || !cfg.Enabled {
		return noMatch
	}

	matchers := [...]func(*domain.CalendarEvent, *domain.RuleConfiguration) (Match, bool){
		matchAdvanced,
		matchPattern,
		matchTimeOfDay,
		matchRecurrence,
		matchDuration,
		matchStatus,
		matchPriority,
		matchType,
		matchCategory,
	}

	for _, match := range matchers {
		if m, ok := match(event, cfg); ok {
			return m
		}
	}

	return noMatch
}

// ResolveColor возвращает цвет по правилам автоматизации
// false означает "нет цвета": автоматизация выключена или ни одно правило не подошло
func ResolveColor(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (string, bool) {
	m := Resolve(event, cfg)
	return m.Color, m.Matched()
}

// matchAdvanced - уровень 2: все условия правила должны строго совпасть с полями события
func matchAdvanced(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	for _, rule := range cfg.AdvancedRules {
		if !rule.Enabled || rule.Color == "" {
			continue
		}
		if conditionsHold(event, rule.Conditions) {
			return Match{
				Tier:     domain.TierAdvanced,
				Color:    rule.Color,
				RuleID:   rule.ID,
				RuleName: rule.Name,
			}, true
		}
	}
	return Match{}, false
}

// conditionsHold проверяет конъюнкцию условий; пустой набор истинен
func conditionsHold(event *domain.CalendarEvent, conditions map[domain.ConditionField]interface{}) bool {
	for field, want := range conditions {
		got, ok := event.FieldValue(field)
		if !ok || !strictEqual(got, normalizeTimeCondition(field, want)) {
			return false
		}
	}
	return true
}

// normalizeTimeCondition приводит значение условия по времени к HH:MM, как и поле события
func normalizeTimeCondition(field domain.ConditionField, want interface{}) interface{} {
	if field != domain.FieldStartTime && field != domain.FieldEndTime {
		return want
	}
	if w, ok := want.(string); ok {
		return string(types.TimeString(w).Normalized())
	}
	return want
}

// strictEqual сравнивает значения без приведения типов: строка равна только строке, bool только bool
func strictEqual(got, want interface{}) bool {
	switch g := got.(type) {
	case string:
		w, ok := want.(string)
		return ok && g == w
	case bool:
		w, ok := want.(bool)
		return ok && g == w
	default:
		return false
	}
}

// matchPattern - уровень 3: ключевое слово без учета регистра в заголовке, затем в описании
func matchPattern(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if !cfg.CustomPatterns.Enabled {
		return Match{}, false
	}

	title := strings.ToLower(event.Title)
	description := strings.ToLower(event.Description)

	for _, pattern := range cfg.CustomPatterns.Patterns {
		if !pattern.Enabled || pattern.Color == "" {
			continue
		}
		for _, keyword := range pattern.Keywords {
			kw := strings.ToLower(keyword)
			if containsKeyword(title, kw) || containsKeyword(description, kw) {
				return Match{
					Tier:     domain.TierPattern,
					Color:    pattern.Color,
					RuleID:   pattern.ID,
					RuleName: pattern.Name,
					Keyword:  keyword,
				}, true
			}
		}
	}
	return Match{}, false
}

// containsKeyword: пустой текст считается отсутствующим и не совпадает ни с чем
func containsKeyword(text, keyword string) bool {
	return text != "" && strings.Contains(text, keyword)
}

// matchTimeOfDay - уровень 4: время начала попадает в слот [From, To] включительно
func matchTimeOfDay(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if !cfg.TimeBasedRules.Enabled || !event.StartTime.IsValid() {
		return Match{}, false
	}

	for _, slot := range cfg.TimeBasedRules.Slots {
		if slot.Color == "" {
			continue
		}
		if event.StartTime.Between(slot.From, slot.To) {
			return Match{
				Tier:     domain.TierTimeOfDay,
				Color:    slot.Color,
				RuleName: slot.Name,
			}, true
		}
	}
	return Match{}, false
}

// matchRecurrence - уровень 5: цвет по типу повторения
func matchRecurrence(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if !cfg.RecurringRules.Enabled || !event.IsRecurring || event.RecurrenceType == "" {
		return Match{}, false
	}
	return paletteMatch(domain.TierRecurrence, string(event.RecurrenceType), cfg.RecurringRules.Colors[event.RecurrenceType])
}

// matchDuration - уровень 6: длительность по времени начала и конца, иначе all-day
func matchDuration(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	colors := cfg.Palette.Durations

	if minutes, err := event.StartTime.MinutesUntil(event.EndTime); err == nil {
		bucket, color := durationBucket(minutes, colors)
		m, ok := paletteMatch(domain.TierDuration, bucket, color)
		m.Minutes = minutes
		return m, ok
	}

	if event.IsAllDay {
		return paletteMatch(domain.TierDuration, DurationAllDay, colors.AllDay)
	}
	return Match{}, false
}

// durationBucket: отрицательная длительность (конец раньше начала) попадает в short
func durationBucket(minutes int, colors domain.DurationColors) (string, string) {
	switch {
	case minutes < domain.ShortDurationMaxMinutes:
		return DurationShort, colors.Short
	case minutes <= domain.MediumDurationMaxMinutes:
		return DurationMedium, colors.Medium
	default:
		return DurationLong, colors.Long
	}
}

// matchStatus - уровень 7
func matchStatus(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if event.Status == "" {
		return Match{}, false
	}
	return paletteMatch(domain.TierStatus, string(event.Status), cfg.Palette.Statuses[event.Status])
}

// matchPriority - уровень 8: только для задач
func matchPriority(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if event.Category != domain.CategoryTask || event.Priority == "" {
		return Match{}, false
	}
	return paletteMatch(domain.TierPriority, string(event.Priority), cfg.Palette.Priorities[event.Priority])
}

// matchType - уровень 9
func matchType(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if event.Type == "" {
		return Match{}, false
	}
	return paletteMatch(domain.TierType, string(event.Type), cfg.Palette.Types[event.Type])
}

// matchCategory - уровень 10, последний
func matchCategory(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) (Match, bool) {
	if event.Category == "" {
		return Match{}, false
	}
	return paletteMatch(domain.TierCategory, string(event.Category), cfg.Palette.Categories[event.Category])
}

// paletteMatch: отсутствующий или пустой цвет в палитре означает, что уровень не сработал
func paletteMatch(tier domain.Tier, key, color string) (Match, bool) {
	if color == "" {
		return Match{}, false
	}
	return Match{Tier: tier, Color: color, RuleName: key}, true
}

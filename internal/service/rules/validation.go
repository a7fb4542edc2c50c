package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// colorPattern цвет в формате #rgb или #rrggbb
var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// validateColor проверяет обязательный цвет
func validateColor(field, color string) error {
	if !colorPattern.MatchString(color) {
		return fmt.Errorf("%w: %s must be a hex color (#rgb or #rrggbb), got %q", ErrInvalidInput, field, color)
	}
	return nil
}

// validateOptionalColor пустой цвет означает "не задан"
func validateOptionalColor(field, color string) error {
	if color == "" {
		return nil
	}
	return validateColor(field, color)
}

// validateName проверяет имя правила
func validateName(field, name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if len([]rune(name)) > domain.MaxRuleNameLength {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, domain.MaxRuleNameLength)
	}
	return nil
}

// normalizeConditions переводит условия из JSON в типизированные поля домена
func normalizeConditions(raw map[string]interface{}) (map[domain.ConditionField]interface{}, error) {
	conditions := make(map[domain.ConditionField]interface{}, len(raw))
	for key, value := range raw {
		field := domain.ConditionField(key)
		// Время хранится в каноническом виде HH:MM
		if str, ok := value.(string); ok && (field == domain.FieldStartTime || field == domain.FieldEndTime) {
			value = string(types.TimeString(str).Normalized())
		}
		conditions[field] = value
	}
	if err := validateConditions(conditions); err != nil {
		return nil, err
	}
	return conditions, nil
}

// validateConditions проверяет набор полей и тип каждого значения
func validateConditions(conditions map[domain.ConditionField]interface{}) error {
	for field, value := range conditions {
		if !field.Valid() {
			return fmt.Errorf("%w: unknown condition field %q", ErrInvalidInput, field)
		}

		if field.IsBool() {
			if _, ok := value.(bool); !ok {
				return fmt.Errorf("%w: condition %q must be a boolean", ErrInvalidInput, field)
			}
			continue
		}

		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("%w: condition %q must be a string", ErrInvalidInput, field)
		}

		if err := validateConditionValue(field, str); err != nil {
			return err
		}
	}
	return nil
}

// validateConditionValue для перечислимых полей значение должно быть из допустимого набора
func validateConditionValue(field domain.ConditionField, value string) error {
	valid := true
	switch field {
	case domain.FieldCategory:
		valid = domain.EventCategory(value).Valid()
	case domain.FieldType:
		valid = domain.EventType(value).Valid()
	case domain.FieldPriority:
		valid = domain.TaskPriority(value).Valid()
	case domain.FieldStatus:
		valid = domain.EventStatus(value).Valid()
	case domain.FieldRecurrenceType:
		valid = domain.RecurrenceType(value).Valid()
	case domain.FieldStartTime, domain.FieldEndTime:
		valid = types.TimeString(value).IsValid()
	}

	if !valid {
		return fmt.Errorf("%w: invalid value %q for condition %q", ErrInvalidInput, value, field)
	}
	return nil
}

// validateAdvancedRule проверяет одно расширенное правило
func validateAdvancedRule(rule domain.AdvancedRule) error {
	if err := validateName("advanced rule name", rule.Name); err != nil {
		return err
	}
	if err := validateColor("advanced rule color", rule.Color); err != nil {
		return err
	}
	return validateConditions(rule.Conditions)
}

// validatePattern проверяет шаблон ключевых слов
func validatePattern(pattern domain.KeywordPattern) error {
	if err := validateName("pattern name", pattern.Name); err != nil {
		return err
	}
	if err := validateColor("pattern color", pattern.Color); err != nil {
		return err
	}

	if len(pattern.Keywords) == 0 {
		return fmt.Errorf("%w: pattern %q must have at least one keyword", ErrInvalidInput, pattern.Name)
	}
	if len(pattern.Keywords) > domain.MaxKeywordsPerPattern {
		return fmt.Errorf("%w: pattern %q must have at most %d keywords", ErrInvalidInput, pattern.Name, domain.MaxKeywordsPerPattern)
	}
	for _, keyword := range pattern.Keywords {
		if strings.TrimSpace(keyword) == "" {
			return fmt.Errorf("%w: pattern %q has an empty keyword", ErrInvalidInput, pattern.Name)
		}
		if len([]rune(keyword)) > domain.MaxKeywordLength {
			return fmt.Errorf("%w: keyword must be at most %d characters", ErrInvalidInput, domain.MaxKeywordLength)
		}
	}
	return nil
}

// validateTimeSlot границы слота в формате HH:mm
// Слот через полночь (From > To) допустим, но никогда не совпадает
func validateTimeSlot(slot domain.TimeSlot) error {
	if err := validateName("time slot name", slot.Name); err != nil {
		return err
	}
	if err := validateColor("time slot color", slot.Color); err != nil {
		return err
	}
	if !slot.From.IsValid() || !slot.To.IsValid() {
		return fmt.Errorf("%w: time slot %q bounds must be in HH:mm format", ErrInvalidInput, slot.Name)
	}
	return nil
}

// validatePriorityOrder порядок должен быть перестановкой всех десяти уровней
func validatePriorityOrder(order []domain.Tier) error {
	if len(order) != len(domain.Tiers) {
		return fmt.Errorf("%w: priority order must list all %d tiers", ErrInvalidInput, len(domain.Tiers))
	}

	seen := make(map[domain.Tier]struct{}, len(order))
	for _, tier := range order {
		if !tier.Valid() {
			return fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, tier)
		}
		if _, dup := seen[tier]; dup {
			return fmt.Errorf("%w: tier %q listed twice", ErrInvalidInput, tier)
		}
		seen[tier] = struct{}{}
	}
	return nil
}

// validatePalette ключи палитры из допустимых наборов, цвета необязательны
func validatePalette(p domain.Palette) error {
	for key, color := range p.Categories {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown category %q in palette", ErrInvalidInput, key)
		}
		if err := validateOptionalColor("category color", color); err != nil {
			return err
		}
	}
	for key, color := range p.Priorities {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown priority %q in palette", ErrInvalidInput, key)
		}
		if err := validateOptionalColor("priority color", color); err != nil {
			return err
		}
	}
	for key, color := range p.Types {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown type %q in palette", ErrInvalidInput, key)
		}
		if err := validateOptionalColor("type color", color); err != nil {
			return err
		}
	}
	for key, color := range p.Statuses {
		if !key.Valid() {
			return fmt.Errorf("%w: unknown status %q in palette", ErrInvalidInput, key)
		}
		if err := validateOptionalColor("status color", color); err != nil {
			return err
		}
	}

	durations := map[string]string{
		"short":  p.Durations.Short,
		"medium": p.Durations.Medium,
		"long":   p.Durations.Long,
		"allDay": p.Durations.AllDay,
	}
	for name, color := range durations {
		if err := validateOptionalColor(name+" duration color", color); err != nil {
			return err
		}
	}
	return nil
}

// validateConfiguration проверяет конфигурацию целиком
func validateConfiguration(cfg *domain.RuleConfiguration) error {
	if cfg == nil {
		return fmt.Errorf("%w: configuration is required", ErrInvalidInput)
	}

	// Расширенные правила
	if len(cfg.AdvancedRules) > domain.MaxAdvancedRules {
		return fmt.Errorf("%w: at most %d advanced rules allowed", ErrInvalidInput, domain.MaxAdvancedRules)
	}
	ruleIDs := make(map[string]struct{}, len(cfg.AdvancedRules))
	for _, rule := range cfg.AdvancedRules {
		if rule.ID == "" {
			return fmt.Errorf("%w: advanced rule id is required", ErrInvalidInput)
		}
		if _, dup := ruleIDs[rule.ID]; dup {
			return fmt.Errorf("%w: duplicate advanced rule id %q", ErrInvalidInput, rule.ID)
		}
		ruleIDs[rule.ID] = struct{}{}
		if err := validateAdvancedRule(rule); err != nil {
			return err
		}
	}

	// Шаблоны ключевых слов
	if len(cfg.CustomPatterns.Patterns) > domain.MaxKeywordPatterns {
		return fmt.Errorf("%w: at most %d keyword patterns allowed", ErrInvalidInput, domain.MaxKeywordPatterns)
	}
	patternIDs := make(map[string]struct{}, len(cfg.CustomPatterns.Patterns))
	for _, pattern := range cfg.CustomPatterns.Patterns {
		if pattern.ID == "" {
			return fmt.Errorf("%w: pattern id is required", ErrInvalidInput)
		}
		if _, dup := patternIDs[pattern.ID]; dup {
			return fmt.Errorf("%w: duplicate pattern id %q", ErrInvalidInput, pattern.ID)
		}
		patternIDs[pattern.ID] = struct{}{}
		if err := validatePattern(pattern); err != nil {
			return err
		}
	}

	// Слоты времени суток
	if len(cfg.TimeBasedRules.Slots) > domain.MaxTimeSlots {
		return fmt.Errorf("%w: at most %d time slots allowed", ErrInvalidInput, domain.MaxTimeSlots)
	}
	for _, slot := range cfg.TimeBasedRules.Slots {
		if err := validateTimeSlot(slot); err != nil {
			return err
		}
	}

	// Повторяющиеся события
	for recurrence, color := range cfg.RecurringRules.Colors {
		if !recurrence.Valid() {
			return fmt.Errorf("%w: unknown recurrence type %q", ErrInvalidInput, recurrence)
		}
		if err := validateOptionalColor("recurring color", color); err != nil {
			return err
		}
	}

	if err := validatePalette(cfg.Palette); err != nil {
		return err
	}

	return validatePriorityOrder(cfg.PriorityOrder)
}

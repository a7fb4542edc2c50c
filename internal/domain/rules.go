package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// Tier уровень в каскаде правил раскраски
type Tier string

const (
	TierManual     Tier = "manual"
	TierAdvanced   Tier = "advanced"
	TierPattern    Tier = "pattern"
	TierTimeOfDay  Tier = "time"
	TierRecurrence Tier = "recurring"
	TierDuration   Tier = "duration"
	TierStatus     Tier = "status"
	TierPriority   Tier = "priority"
	TierType       Tier = "type"
	TierCategory   Tier = "category"

	// TierNone - ни одно правило не подошло (или автоматизация выключена)
	TierNone Tier = "none"
	// TierDefault - цвет взят из статической схемы категорий
	TierDefault Tier = "default"
)

// Tiers уровни каскада в фиксированном порядке применения (от высшего к низшему)
var Tiers = []Tier{
	TierManual,
	TierAdvanced,
	TierPattern,
	TierTimeOfDay,
	TierRecurrence,
	TierDuration,
	TierStatus,
	TierPriority,
	TierType,
	TierCategory,
}

// Valid returns true if the tier is one of the ten cascade tiers
func (t Tier) Valid() bool {
	for _, tier := range Tiers {
		if tier == t {
			return true
		}
	}
	return false
}

// ConditionField поле события, по которому может проверять расширенное правило
type ConditionField string

const (
	FieldCategory       ConditionField = "category"
	FieldType           ConditionField = "type"
	FieldPriority       ConditionField = "priority"
	FieldStatus         ConditionField = "status"
	FieldStartTime      ConditionField = "startTime"
	FieldEndTime        ConditionField = "endTime"
	FieldIsAllDay       ConditionField = "isAllDay"
	FieldIsRecurring    ConditionField = "isRecurring"
	FieldRecurrenceType ConditionField = "recurrenceType"
	FieldTitle          ConditionField = "title"
	FieldDescription    ConditionField = "description"
)

// Valid returns true if the field can be used in a condition
func (f ConditionField) Valid() bool {
	switch f {
	case FieldCategory, FieldType, FieldPriority, FieldStatus, FieldStartTime, FieldEndTime,
		FieldIsAllDay, FieldIsRecurring, FieldRecurrenceType, FieldTitle, FieldDescription:
		return true
	}
	return false
}

// IsBool returns true if the field holds a boolean value
func (f ConditionField) IsBool() bool {
	return f == FieldIsAllDay || f == FieldIsRecurring
}

// AdvancedRule правило по точному совпадению набора полей события
// Пустой набор условий совпадает с любым событием
type AdvancedRule struct {
	ID         string                         `json:"id" yaml:"id"`
	Name       string                         `json:"name" yaml:"name"`
	Enabled    bool                           `json:"enabled" yaml:"enabled"`
	Color      string                         `json:"color" yaml:"color"`
	Conditions map[ConditionField]interface{} `json:"conditions" yaml:"conditions"`
}

// KeywordPattern правило по вхождению ключевых слов в заголовок или описание
type KeywordPattern struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Enabled  bool     `json:"enabled" yaml:"enabled"`
	Color    string   `json:"color" yaml:"color"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// CustomPatterns набор правил по ключевым словам
type CustomPatterns struct {
	Enabled  bool             `json:"enabled" yaml:"enabled"`
	Patterns []KeywordPattern `json:"patterns" yaml:"patterns"`
}

// TimeSlot интервал времени суток [From, To], границы включительно
type TimeSlot struct {
	Name  string           `json:"name" yaml:"name"`
	From  types.TimeString `json:"from" yaml:"from"`
	To    types.TimeString `json:"to" yaml:"to"`
	Color string           `json:"color" yaml:"color"`
}

// TimeBasedRules правила по времени начала события (проверяются в порядке объявления)
type TimeBasedRules struct {
	Enabled bool       `json:"enabled" yaml:"enabled"`
	Slots   []TimeSlot `json:"slots" yaml:"slots"`
}

// RecurringRules цвета для повторяющихся событий
type RecurringRules struct {
	Enabled bool                      `json:"enabled" yaml:"enabled"`
	Colors  map[RecurrenceType]string `json:"colors" yaml:"colors"`
}

// DurationColors цвета по длительности события
type DurationColors struct {
	Short  string `json:"short" yaml:"short"`   // < 30 минут
	Medium string `json:"medium" yaml:"medium"` // 30-120 минут включительно
	Long   string `json:"long" yaml:"long"`     // > 120 минут
	AllDay string `json:"allDay" yaml:"allDay"`
}

// Palette фиксированная палитра по категориям, приоритетам, каналам, статусам и длительности
type Palette struct {
	Categories map[EventCategory]string `json:"categories" yaml:"categories"`
	Priorities map[TaskPriority]string  `json:"priorities" yaml:"priorities"`
	Types      map[EventType]string     `json:"types" yaml:"types"`
	Statuses   map[EventStatus]string   `json:"statuses" yaml:"statuses"`
	Durations  DurationColors           `json:"durations" yaml:"durations"`
}

// RuleConfiguration конфигурация автоматической раскраски календаря
//
// Значение неизменяемое: любое изменение делается на копии (Clone)
// и публикуется с новой версией. Хранится только в памяти процесса.
type RuleConfiguration struct {
	Version        int64          `json:"version" yaml:"-"`
	UpdatedAt      time.Time      `json:"updatedAt" yaml:"-"`
	Enabled        bool           `json:"enabled" yaml:"enabled"`
	AdvancedRules  []AdvancedRule `json:"advancedRules" yaml:"advancedRules"`
	CustomPatterns CustomPatterns `json:"customPatterns" yaml:"customPatterns"`
	TimeBasedRules TimeBasedRules `json:"timeBasedRules" yaml:"timeBasedRules"`
	RecurringRules RecurringRules `json:"recurringRules" yaml:"recurringRules"`
	Palette        Palette        `json:"palette" yaml:"palette"`

	// PriorityOrder порядок уровней, который видит пользователь в настройках.
	// Резолвер его не использует: порядок применения фиксирован (см. Tiers).
	PriorityOrder []Tier `json:"priorityOrder" yaml:"priorityOrder"`
}

// Clone возвращает глубокую копию конфигурации
func (c *RuleConfiguration) Clone() *RuleConfiguration {
	if c == nil {
		return nil
	}

	out := *c

	if c.AdvancedRules != nil {
		out.AdvancedRules = make([]AdvancedRule, len(c.AdvancedRules))
		for i, rule := range c.AdvancedRules {
			out.AdvancedRules[i] = rule
			out.AdvancedRules[i].Conditions = cloneMap(rule.Conditions)
		}
	}

	if c.CustomPatterns.Patterns != nil {
		out.CustomPatterns.Patterns = make([]KeywordPattern, len(c.CustomPatterns.Patterns))
		for i, pattern := range c.CustomPatterns.Patterns {
			out.CustomPatterns.Patterns[i] = pattern
			out.CustomPatterns.Patterns[i].Keywords = append([]string(nil), pattern.Keywords...)
		}
	}

	out.TimeBasedRules.Slots = append([]TimeSlot(nil), c.TimeBasedRules.Slots...)
	out.RecurringRules.Colors = cloneMap(c.RecurringRules.Colors)
	out.Palette.Categories = cloneMap(c.Palette.Categories)
	out.Palette.Priorities = cloneMap(c.Palette.Priorities)
	out.Palette.Types = cloneMap(c.Palette.Types)
	out.Palette.Statuses = cloneMap(c.Palette.Statuses)
	out.PriorityOrder = append([]Tier(nil), c.PriorityOrder...)

	return &out
}

// FindAdvancedRule возвращает индекс правила по ID или -1
func (c *RuleConfiguration) FindAdvancedRule(id string) int {
	for i, rule := range c.AdvancedRules {
		if rule.ID == id {
			return i
		}
	}
	return -1
}

// FindPattern возвращает индекс шаблона по ID или -1
func (c *RuleConfiguration) FindPattern(id string) int {
	for i, pattern := range c.CustomPatterns.Patterns {
		if pattern.ID == id {
			return i
		}
	}
	return -1
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

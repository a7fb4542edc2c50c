package colorrules

import (
	"fmt"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// TierLabels подписи уровней для интерфейса настроек
var TierLabels = map[domain.Tier]string{
	domain.TierManual:     "Ручной цвет",
	domain.TierAdvanced:   "Расширенное правило",
	domain.TierPattern:    "Ключевое слово",
	domain.TierTimeOfDay:  "Время суток",
	domain.TierRecurrence: "Повторение",
	domain.TierDuration:   "Длительность",
	domain.TierStatus:     "Статус",
	domain.TierPriority:   "Приоритет",
	domain.TierType:       "Канал",
	domain.TierCategory:   "Категория",
	domain.TierDefault:    "Цвет категории по умолчанию",
	domain.TierNone:       "Правило не найдено",
}

const msgAutomationDisabled = "Автоматизация цветов выключена"

// ExplainAppliedRule описывает, какое правило определило цвет события
// Использует тот же проход, что и ResolveColor, поэтому объяснение всегда соответствует цвету
func ExplainAppliedRule(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) string {
	if cfg != nil && !cfg.Enabled {
		return msgAutomationDisabled
	}
	return Describe(Resolve(event, cfg))
}

// Describe возвращает человекочитаемое описание результата
func Describe(m Match) string {
	label := TierLabels[m.Tier]

	switch m.Tier {
	case domain.TierAdvanced:
		return fmt.Sprintf("%s: %s", label, nameOrID(m))
	case domain.TierPattern:
		return fmt.Sprintf("%s: %q (%s)", label, m.Keyword, nameOrID(m))
	case domain.TierDuration:
		if m.RuleName == DurationAllDay {
			return fmt.Sprintf("%s: %s", label, m.RuleName)
		}
		return fmt.Sprintf("%s: %s (%d мин)", label, m.RuleName, m.Minutes)
	case domain.TierTimeOfDay, domain.TierRecurrence, domain.TierStatus,
		domain.TierPriority, domain.TierType, domain.TierCategory, domain.TierDefault:
		return fmt.Sprintf("%s: %s", label, m.RuleName)
	case domain.TierManual:
		return label
	default:
		return TierLabels[domain.TierNone]
	}
}

func nameOrID(m Match) string {
	if m.RuleName != "" {
		return m.RuleName
	}
	return m.RuleID
}

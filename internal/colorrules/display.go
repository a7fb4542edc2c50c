package colorrules

import "github.com/m04kA/SMC-CalendarService/internal/domain"

// Decision итоговый цвет события для отрисовки в календаре
type Decision struct {
	Color       string
	Source      domain.Tier // manual, один из уровней каскада или default
	Match       Match
	Explanation string
}

// DisplayColor выбирает цвет для отрисовки:
//  1. ручной цвет события - резолвер не вызывается;
//  2. цвет по правилам автоматизации;
//  3. статическая схема цветов по категориям.
func DisplayColor(event *domain.CalendarEvent, cfg *domain.RuleConfiguration) Decision {
	if event.HasManualColor() {
		m := Match{Tier: domain.TierManual, Color: event.Color}
		return Decision{
			Color:       event.Color,
			Source:      domain.TierManual,
			Match:       m,
			Explanation: Describe(m),
		}
	}

	if m := Resolve(event, cfg); m.Matched() {
		return Decision{
			Color:       m.Color,
			Source:      m.Tier,
			Match:       m,
			Explanation: Describe(m),
		}
	}

	m := Match{Tier: domain.TierDefault, Color: DefaultCategoryColor(event.Category), RuleName: string(event.Category)}
	return Decision{
		Color:       m.Color,
		Source:      domain.TierDefault,
		Match:       m,
		Explanation: Describe(m),
	}
}

// DefaultCategoryColor цвет из статической схемы (не настраивается)
func DefaultCategoryColor(category domain.EventCategory) string {
	if color, ok := domain.CategoryDefaultColors[category]; ok {
		return color
	}
	return domain.FallbackColor
}

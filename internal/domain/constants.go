package domain

// Пороги длительности (в минутах)
const (
	ShortDurationMaxMinutes  = 30  // short: меньше 30 минут
	MediumDurationMaxMinutes = 120 // medium: от 30 до 120 минут включительно
)

// Business validation constants
const (
	MaxAdvancedRules      = 100
	MaxKeywordPatterns    = 100
	MaxKeywordsPerPattern = 50
	MaxTimeSlots          = 24
	MaxRuleNameLength     = 100
	MaxKeywordLength      = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CategoryDefaultColors статическая схема цветов по категориям
// Используется календарем, когда ни одно правило не сработало. Не настраивается.
var CategoryDefaultColors = map[EventCategory]string{
	CategoryAppointment: "#3b82f6",
	CategoryTask:        "#f59e0b",
	CategoryMeeting:     "#8b5cf6",
	CategoryReminder:    "#10b981",
	CategoryEvent:       "#ec4899",
	CategoryDeadline:    "#ef4444",
}

// FallbackColor цвет для событий с неизвестной категорией
const FallbackColor = "#6b7280"

// DefaultRuleConfiguration возвращает конфигурацию, с которой стартует сервис
func DefaultRuleConfiguration() *RuleConfiguration {
	return &RuleConfiguration{
		Version: 1,
		Enabled: true,
		AdvancedRules: []AdvancedRule{
			{
				ID:      "vip-whatsapp",
				Name:    "VIP через WhatsApp",
				Enabled: false,
				Color:   "#d946ef",
				Conditions: map[ConditionField]interface{}{
					FieldType:     string(TypeWhatsApp),
					FieldPriority: string(PriorityCritical),
				},
			},
		},
		CustomPatterns: CustomPatterns{
			Enabled: true,
			Patterns: []KeywordPattern{
				{
					ID:       "urgent",
					Name:     "Срочно",
					Enabled:  true,
					Color:    "#dc2626",
					Keywords: []string{"urgent", "asap", "срочно"},
				},
				{
					ID:       "vip",
					Name:     "VIP",
					Enabled:  true,
					Color:    "#a855f7",
					Keywords: []string{"vip"},
				},
			},
		},
		TimeBasedRules: TimeBasedRules{
			Enabled: false,
			Slots: []TimeSlot{
				{Name: "morning", From: "06:00", To: "11:59", Color: "#fbbf24"},
				{Name: "afternoon", From: "12:00", To: "17:59", Color: "#60a5fa"},
				{Name: "evening", From: "18:00", To: "23:59", Color: "#6366f1"},
			},
		},
		RecurringRules: RecurringRules{
			Enabled: true,
			Colors: map[RecurrenceType]string{
				RecurrenceDaily:   "#14b8a6",
				RecurrenceWeekly:  "#0ea5e9",
				RecurrenceMonthly: "#8b5cf6",
				RecurrenceYearly:  "#f43f5e",
			},
		},
		Palette: Palette{
			Categories: map[EventCategory]string{
				CategoryAppointment: "#3b82f6",
				CategoryTask:        "#f59e0b",
				CategoryMeeting:     "#8b5cf6",
				CategoryReminder:    "#10b981",
				CategoryEvent:       "#ec4899",
				CategoryDeadline:    "#ef4444",
			},
			Priorities: map[TaskPriority]string{
				PriorityLow:      "#6ee7b7",
				PriorityMedium:   "#fcd34d",
				PriorityHigh:     "#ef4444",
				PriorityCritical: "#991b1b",
			},
			Types: map[EventType]string{
				TypeEmail:     "#0284c7",
				TypeWhatsApp:  "#22c55e",
				TypeCall:      "#f97316",
				TypeManual:    "#64748b",
				TypeAutomated: "#06b6d4",
				TypeImported:  "#a3a3a3",
			},
			Statuses: map[EventStatus]string{
				EventStatusCancelled: "#9ca3af",
				EventStatusOverdue:   "#b91c1c",
			},
			Durations: DurationColors{
				Short:  "#a7f3d0",
				Medium: "#7dd3fc",
				Long:   "#c4b5fd",
				AllDay: "#fde68a",
			},
		},
		PriorityOrder: append([]Tier(nil), Tiers...),
	}
}

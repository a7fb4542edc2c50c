package import_calendar

import "github.com/m04kA/SMC-CalendarService/internal/domain"

// Request модель запроса на импорт календаря
// Указывается ровно одно из полей URL или ICS
type Request struct {
	UserID int64  // ID пользователя (для логирования)
	URL    string // Ссылка на ICS
	ICS    string // Содержимое ICS
}

// Response модель ответа с раскрашенными событиями
type Response struct {
	RulesVersion int64
	Events       []ColoredEvent
}

// ColoredEvent событие календаря с подобранным цветом
type ColoredEvent struct {
	Event       domain.CalendarEvent
	Color       string
	Source      domain.Tier
	RuleID      string
	RuleName    string
	Explanation string
}

package get_company_calendar

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Request модель запроса на получение календаря компании
type Request struct {
	UserID          int64     // ID пользователя (для логирования, не влияет на результат)
	CompanyID       int64     // ID компании
	AddressID       *int64    // ID адреса (опционально, nil = все адреса)
	Date            time.Time // День календаря (без времени)
	IncludeInactive bool      // Показывать отмененные и no-show
}

// Response модель ответа с раскрашенными событиями дня
type Response struct {
	Date         time.Time
	CompanyID    int64
	AddressID    *int64
	RulesVersion int64 // Версия правил, по которой подобраны цвета
	Events       []ColoredEvent
}

// ColoredEvent событие календаря с подобранным цветом
type ColoredEvent struct {
	BookingID   int64
	Event       domain.CalendarEvent
	Color       string
	Source      domain.Tier // manual, уровень каскада или default
	RuleID      string
	RuleName    string
	Explanation string
}

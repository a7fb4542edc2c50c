package import_calendar

import (
	"github.com/m04kA/SMC-CalendarService/internal/domain"
	importCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/import_calendar"
)

// ImportRequest DTO запроса: ссылка на ICS или его содержимое
type ImportRequest struct {
	URL string `json:"url,omitempty"`
	ICS string `json:"ics,omitempty"`
}

// ImportResponse DTO ответа
type ImportResponse struct {
	RulesVersion int64              `json:"rulesVersion"`
	Events       []ColoredEventItem `json:"events"`
}

// ColoredEventItem событие с подобранным цветом
type ColoredEventItem struct {
	Event       domain.CalendarEvent `json:"event"`
	Color       string               `json:"color"`
	Source      domain.Tier          `json:"source"`
	RuleID      string               `json:"ruleId,omitempty"`
	RuleName    string               `json:"ruleName,omitempty"`
	Explanation string               `json:"explanation"`
}

// ToUseCaseRequest конвертирует DTO в запрос use case
func (r *ImportRequest) ToUseCaseRequest(userID int64) *importCalendar.Request {
	return &importCalendar.Request{
		UserID: userID,
		URL:    r.URL,
		ICS:    r.ICS,
	}
}

// FromUseCaseResponse конвертирует ответ use case в DTO
func FromUseCaseResponse(resp *importCalendar.Response) *ImportResponse {
	items := make([]ColoredEventItem, 0, len(resp.Events))
	for _, e := range resp.Events {
		items = append(items, ColoredEventItem{
			Event:       e.Event,
			Color:       e.Color,
			Source:      e.Source,
			RuleID:      e.RuleID,
			RuleName:    e.RuleName,
			Explanation: e.Explanation,
		})
	}

	return &ImportResponse{
		RulesVersion: resp.RulesVersion,
		Events:       items,
	}
}

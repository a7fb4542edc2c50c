package get_company_calendar

import (
	"errors"
	"strconv"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	getCompanyCalendar "github.com/m04kA/SMC-CalendarService/internal/usecase/get_company_calendar"
)

var errMissingDate = errors.New("date is required")

// CalendarResponse DTO ответа
type CalendarResponse struct {
	Date         string             `json:"date"`
	CompanyID    int64              `json:"companyId"`
	AddressID    *int64             `json:"addressId,omitempty"`
	RulesVersion int64              `json:"rulesVersion"`
	Events       []ColoredEventItem `json:"events"`
}

// ColoredEventItem событие с подобранным цветом
type ColoredEventItem struct {
	BookingID   int64                `json:"bookingId"`
	Event       domain.CalendarEvent `json:"event"`
	Color       string               `json:"color"`
	Source      domain.Tier          `json:"source"`
	RuleID      string               `json:"ruleId,omitempty"`
	RuleName    string               `json:"ruleName,omitempty"`
	Explanation string               `json:"explanation"`
}

// ToUseCaseRequest формирует запрос к use case из query параметров
func ToUseCaseRequest(
	companyID int64,
	userID int64,
	dateStr string,
	addressIDStr string,
	includeInactiveStr string,
) (*getCompanyCalendar.Request, error) {
	if dateStr == "" {
		return nil, errMissingDate
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	req := &getCompanyCalendar.Request{
		UserID:    userID,
		CompanyID: companyID,
		Date:      date,
	}

	// Парсим addressId если указан
	if addressIDStr != "" {
		addressID, err := strconv.ParseInt(addressIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.AddressID = &addressID
	}

	// Парсим includeInactive если указан
	if includeInactiveStr != "" {
		includeInactive, err := strconv.ParseBool(includeInactiveStr)
		if err != nil {
			return nil, err
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в DTO
func FromUseCaseResponse(resp *getCompanyCalendar.Response) *CalendarResponse {
	items := make([]ColoredEventItem, 0, len(resp.Events))
	for _, e := range resp.Events {
		items = append(items, ColoredEventItem{
			BookingID:   e.BookingID,
			Event:       e.Event,
			Color:       e.Color,
			Source:      e.Source,
			RuleID:      e.RuleID,
			RuleName:    e.RuleName,
			Explanation: e.Explanation,
		})
	}

	return &CalendarResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		CompanyID:    resp.CompanyID,
		AddressID:    resp.AddressID,
		RulesVersion: resp.RulesVersion,
		Events:       items,
	}
}

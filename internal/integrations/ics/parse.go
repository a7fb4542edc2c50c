package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

var errMissingStart = errors.New("missing DTSTART")

// Parser переводит VEVENT из iCalendar в события календаря
type Parser struct {
	loc *time.Location
	log Logger
}

// NewParser создает парсер; время начала и окончания переводится в loc
func NewParser(loc *time.Location, log Logger) *Parser {
	if loc == nil {
		loc = time.UTC
	}
	return &Parser{loc: loc, log: log}
}

// Parse разбирает календарь целиком
// VEVENT, которые не удалось разобрать, пропускаются
func (p *Parser) Parse(body []byte) ([]domain.CalendarEvent, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, ErrEmptyCalendar
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseCalendar, err)
	}

	vevents := cal.Events()
	events := make([]domain.CalendarEvent, 0, len(vevents))
	for i, ve := range vevents {
		event, err := p.parseVEvent(ve)
		if err != nil {
			p.log.Warn("Skipping VEVENT #%d: %v", i, err)
			continue
		}
		events = append(events, event)
	}

	p.log.Info("Parsed calendar: %d of %d events", len(events), len(vevents))
	return events, nil
}

func (p *Parser) parseVEvent(ve *ical.VEvent) (domain.CalendarEvent, error) {
	event := domain.CalendarEvent{
		Type:     domain.TypeImported,
		Category: domain.CategoryEvent,
	}

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || strings.TrimSpace(dtStart.Value) == "" {
		return event, errMissingStart
	}

	if prop := ve.GetProperty(ical.ComponentPropertyUniqueId); prop != nil {
		event.ID = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertySummary); prop != nil {
		event.Title = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyDescription); prop != nil {
		event.Description = prop.Value
	}
	if prop := ve.GetProperty(ical.ComponentPropertyCategories); prop != nil {
		event.Category = categoryFromICS(prop.Value)
	}
	if prop := ve.GetProperty(ical.ComponentPropertyStatus); prop != nil {
		event.Status = statusFromICS(prop.Value)
	}
	if prop := ve.GetProperty(ical.ComponentPropertyPriority); prop != nil {
		event.Priority = priorityFromICS(prop.Value)
	}

	// Событие на весь день: VALUE=DATE или значение без времени
	if isDateOnly(dtStart) {
		event.IsAllDay = true
	} else {
		start, err := ve.GetStartAt()
		if err != nil {
			return event, fmt.Errorf("invalid DTSTART %q: %v", dtStart.Value, err)
		}
		start = start.In(p.loc)
		event.StartTime = types.NewTimeString(start)

		// Окончание в другой день не представимо в HH:mm - оставляем пустым
		if end, err := ve.GetEndAt(); err == nil && !end.IsZero() {
			end = end.In(p.loc)
			if sameDay(start, end) {
				event.EndTime = types.NewTimeString(end)
			}
		}
	}

	if prop := ve.GetProperty(ical.ComponentPropertyRrule); prop != nil && prop.Value != "" {
		event.IsRecurring = true
		event.RecurrenceType = recurrenceFromRRule(prop.Value)
	}

	return event, nil
}

// isDateOnly определяет DTSTART без времени
func isDateOnly(prop *ical.IANAProperty) bool {
	if params := prop.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(prop.Value, "T")
}

// categoryFromICS первая известная категория из CATEGORIES, иначе event
func categoryFromICS(value string) domain.EventCategory {
	for _, part := range strings.Split(value, ",") {
		category := domain.EventCategory(strings.ToLower(strings.TrimSpace(part)))
		if category.Valid() {
			return category
		}
	}
	return domain.CategoryEvent
}

// statusFromICS переводит STATUS; неизвестные значения означают "не задано"
func statusFromICS(value string) domain.EventStatus {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "CONFIRMED":
		return domain.EventStatusConfirmed
	case "TENTATIVE":
		return domain.EventStatusPending
	case "CANCELLED":
		return domain.EventStatusCancelled
	case "COMPLETED":
		return domain.EventStatusCompleted
	case "IN-PROCESS":
		return domain.EventStatusInProgress
	}
	return ""
}

// priorityFromICS PRIORITY: 1-4 высокий, 5 средний, 6-9 низкий, 0 - не задан
func priorityFromICS(value string) domain.TaskPriority {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return ""
	}
	switch {
	case n >= 1 && n <= 4:
		return domain.PriorityHigh
	case n == 5:
		return domain.PriorityMedium
	case n >= 6 && n <= 9:
		return domain.PriorityLow
	}
	return ""
}

// recurrenceFromRRule тип повторения по FREQ
// Для почасовых и прочих частот событие повторяющееся, но без типа
func recurrenceFromRRule(value string) domain.RecurrenceType {
	rule, err := rrule.StrToRRule(value)
	if err != nil {
		return ""
	}

	switch rule.OrigOptions.Freq {
	case rrule.DAILY:
		return domain.RecurrenceDaily
	case rrule.WEEKLY:
		return domain.RecurrenceWeekly
	case rrule.MONTHLY:
		return domain.RecurrenceMonthly
	case rrule.YEARLY:
		return domain.RecurrenceYearly
	}
	return ""
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

package domain

import (
	"strconv"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// EventCategory категория события календаря
type EventCategory string

const (
	CategoryAppointment EventCategory = "appointment"
	CategoryTask        EventCategory = "task"
	CategoryMeeting     EventCategory = "meeting"
	CategoryReminder    EventCategory = "reminder"
	CategoryEvent       EventCategory = "event"
	CategoryDeadline    EventCategory = "deadline"
)

// Categories все допустимые категории
var Categories = []EventCategory{
	CategoryAppointment,
	CategoryTask,
	CategoryMeeting,
	CategoryReminder,
	CategoryEvent,
	CategoryDeadline,
}

// Valid returns true if the category is one of the known categories
func (c EventCategory) Valid() bool {
	switch c {
	case CategoryAppointment, CategoryTask, CategoryMeeting, CategoryReminder, CategoryEvent, CategoryDeadline:
		return true
	}
	return false
}

// EventType канал, через который появилось событие
type EventType string

const (
	TypeEmail     EventType = "email"
	TypeWhatsApp  EventType = "whatsapp"
	TypeCall      EventType = "call"
	TypeManual    EventType = "manual"
	TypeAutomated EventType = "automated"
	TypeImported  EventType = "imported"
)

// Valid returns true if the type is one of the known channels
func (t EventType) Valid() bool {
	switch t {
	case TypeEmail, TypeWhatsApp, TypeCall, TypeManual, TypeAutomated, TypeImported:
		return true
	}
	return false
}

// TaskPriority приоритет задачи (только для категории task)
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// Valid returns true if the priority is one of the known priorities
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// EventStatus статус события календаря
type EventStatus string

const (
	EventStatusConfirmed  EventStatus = "confirmed"
	EventStatusPending    EventStatus = "pending"
	EventStatusCancelled  EventStatus = "cancelled"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusInProgress EventStatus = "in-progress"
	EventStatusOverdue    EventStatus = "overdue"
)

// Valid returns true if the status is one of the known statuses
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusConfirmed, EventStatusPending, EventStatusCancelled,
		EventStatusCompleted, EventStatusInProgress, EventStatusOverdue:
		return true
	}
	return false
}

// RecurrenceType периодичность повторяющегося события
type RecurrenceType string

const (
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

// Valid returns true if the recurrence type is one of the known types
func (r RecurrenceType) Valid() bool {
	switch r {
	case RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

// CalendarEvent событие календаря, для которого подбирается цвет
//
// Пустые строковые поля означают "не задано": соответствующий уровень правил пропускается.
type CalendarEvent struct {
	ID             string           `json:"id,omitempty"`
	Category       EventCategory    `json:"category"`
	Type           EventType        `json:"type,omitempty"`
	Priority       TaskPriority     `json:"priority,omitempty"`
	Status         EventStatus      `json:"status,omitempty"`
	StartTime      types.TimeString `json:"startTime,omitempty"`
	EndTime        types.TimeString `json:"endTime,omitempty"`
	IsAllDay       bool             `json:"isAllDay,omitempty"`
	IsRecurring    bool             `json:"isRecurring,omitempty"`
	RecurrenceType RecurrenceType   `json:"recurrenceType,omitempty"`
	Title          string           `json:"title,omitempty"`
	Description    string           `json:"description,omitempty"`
	Color          string           `json:"color,omitempty"` // ручной цвет, всегда имеет приоритет
}

// HasManualColor returns true if the user picked the color explicitly
func (e *CalendarEvent) HasManualColor() bool {
	return e.Color != ""
}

// FieldValue возвращает значение поля события для условий расширенных правил
// Второе значение false, если поле не задано или неизвестно
func (e *CalendarEvent) FieldValue(field ConditionField) (interface{}, bool) {
	var value string

	switch field {
	case FieldCategory:
		value = string(e.Category)
	case FieldType:
		value = string(e.Type)
	case FieldPriority:
		value = string(e.Priority)
	case FieldStatus:
		value = string(e.Status)
	case FieldStartTime:
		value = string(e.StartTime.Normalized())
	case FieldEndTime:
		value = string(e.EndTime.Normalized())
	case FieldRecurrenceType:
		value = string(e.RecurrenceType)
	case FieldTitle:
		value = e.Title
	case FieldDescription:
		value = e.Description
	case FieldIsAllDay:
		return e.IsAllDay, true
	case FieldIsRecurring:
		return e.IsRecurring, true
	default:
		return nil, false
	}

	if value == "" {
		return nil, false
	}
	return value, true
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

package domain

import (
	"time"

	"github.com/m04kA/SMC-CalendarService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusInProgress         BookingStatus = "in_progress"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
	StatusNoShow             BookingStatus = "no_show"
)

// InactiveStatuses список статусов неактивных бронирований
// По умолчанию такие бронирования не показываются в календаре
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
	StatusNoShow,
}

// Booking бронирование услуги (только чтение, для отображения в календаре)
type Booking struct {
	ID              int64
	UserID          int64
	CompanyID       int64
	AddressID       int64 // ID адреса компании (компания может иметь несколько точек обслуживания)
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          BookingStatus

	// Denormalized data for history
	ServiceName string
	Notes       *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventStatus конвертирует статус бронирования в статус события календаря
func (b *Booking) EventStatus() EventStatus {
	switch b.Status {
	case StatusPending:
		return EventStatusPending
	case StatusConfirmed:
		return EventStatusConfirmed
	case StatusInProgress:
		return EventStatusInProgress
	case StatusCompleted:
		return EventStatusCompleted
	case StatusCancelledByUser, StatusCancelledByCompany:
		return EventStatusCancelled
	case StatusNoShow:
		return EventStatusOverdue
	default:
		return ""
	}
}

// ToCalendarEvent конвертирует бронирование в событие календаря
// Бронирование всегда appointment, созданное вручную (type manual)
func (b *Booking) ToCalendarEvent() CalendarEvent {
	event := CalendarEvent{
		ID:        "booking-" + formatID(b.ID),
		Category:  CategoryAppointment,
		Type:      TypeManual,
		Status:    b.EventStatus(),
		StartTime: b.StartTime,
		Title:     b.ServiceName,
	}

	if b.Notes != nil {
		event.Description = *b.Notes
	}

	// Если бронирование заканчивается после полуночи - конец не указываем
	if end, err := b.StartTime.AddMinutes(b.DurationMinutes); err == nil {
		event.EndTime = end
	}

	return event
}

// CompanyBookingsFilter фильтр для получения бронирований компании
type CompanyBookingsFilter struct {
	CompanyID       int64      // Обязательный параметр
	AddressID       *int64     // Фильтр по адресу (опционально, если nil - все адреса)
	StartDate       *time.Time // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time // Конец периода (опционально, если nil - без ограничения)
	IncludeInactive bool       // Включать ли неактивные бронирования (отмененные, no-show)
}

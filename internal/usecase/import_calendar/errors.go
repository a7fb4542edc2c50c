package import_calendar

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCalendarNotFound возвращается, когда календарь по ссылке не найден
	ErrCalendarNotFound = errors.New("calendar not found")

	// ErrCalendarTooLarge возвращается, когда календарь превышает допустимый размер
	ErrCalendarTooLarge = errors.New("calendar is too large")

	// ErrCalendarUnavailable возвращается, когда сервер календаря недоступен или ответил ошибкой
	ErrCalendarUnavailable = errors.New("calendar source unavailable")

	// ErrInvalidCalendar возвращается, когда содержимое не является календарем iCalendar
	ErrInvalidCalendar = errors.New("invalid calendar data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)

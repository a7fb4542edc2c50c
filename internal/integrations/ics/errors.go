package ics

import "errors"

var (
	// ErrInvalidURL возвращается, когда адрес календаря не http(s)
	ErrInvalidURL = errors.New("ics client: invalid calendar url")

	// ErrForbiddenHost возвращается, когда адрес календаря ведет во внутреннюю сеть
	ErrForbiddenHost = errors.New("ics client: calendar host is not allowed")

	// ErrCalendarNotFound возвращается, когда календарь по адресу не найден
	ErrCalendarNotFound = errors.New("ics client: calendar not found")

	// ErrBodyTooLarge возвращается, когда календарь превышает допустимый размер
	ErrBodyTooLarge = errors.New("ics client: calendar is too large")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("ics client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервера календаря
	ErrInvalidResponse = errors.New("ics client: invalid response")

	// ErrEmptyCalendar возвращается для пустого тела календаря
	ErrEmptyCalendar = errors.New("ics: empty calendar")

	// ErrParseCalendar возвращается, когда тело не разбирается как iCalendar
	ErrParseCalendar = errors.New("ics: failed to parse calendar")
)

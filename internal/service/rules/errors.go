package rules

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrVersionConflict возвращается, когда конфигурация уже изменена другим пользователем
	ErrVersionConflict = errors.New("color rules were modified concurrently")

	// ErrRuleNotFound возвращается, когда расширенное правило не найдено
	ErrRuleNotFound = errors.New("advanced rule not found")

	// ErrPatternNotFound возвращается, когда шаблон ключевых слов не найден
	ErrPatternNotFound = errors.New("keyword pattern not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)

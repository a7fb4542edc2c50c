package rules

import "errors"

var (
	// ErrVersionConflict возвращается, когда конфигурация уже изменена другим запросом
	ErrVersionConflict = errors.New("rules.store: configuration version conflict")

	// ErrNilConfiguration возвращается при попытке опубликовать пустую конфигурацию
	ErrNilConfiguration = errors.New("rules.store: nil configuration")
)

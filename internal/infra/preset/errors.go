package preset

import "errors"

var (
	// ErrReadPreset возвращается, когда файл пресета не удалось прочитать
	ErrReadPreset = errors.New("preset: failed to read file")

	// ErrParsePreset возвращается, когда файл пресета не разбирается как YAML
	ErrParsePreset = errors.New("preset: failed to parse file")

	// ErrWatchPreset возвращается, когда не удалось подписаться на изменения файла
	ErrWatchPreset = errors.New("preset: failed to watch file")
)

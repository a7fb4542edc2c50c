package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	minutesPerDay  = 24 * 60
	timeLayout     = "15:04"
	timeLayoutSecs = "15:04:05"
)

var (
	// ErrInvalidTimeFormat возвращается, если строка не в формате HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrTimeOutOfRange возвращается, если результат выходит за пределы суток
	ErrTimeOutOfRange = errors.New("types: time is out of day range")
)

// TimeString время дня в формате HH:MM (24 часа, с ведущими нулями)
//
// Внутри всегда хранится нормализованное представление, поэтому сравнение
// через Minutes совпадает с лексикографическим сравнением строк.
type TimeString string

// NewTimeString создает TimeString из time.Time (дата и секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку HH:MM или HH:MM:SS
func NewTimeStringFromString(s string) (TimeString, error) {
	minutes, err := parseMinutes(s)
	if err != nil {
		return "", err
	}
	return fromMinutes(minutes), nil
}

// NewTimeStringFromMinutes создает TimeString из количества минут от полуночи
func NewTimeStringFromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= minutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrTimeOutOfRange, minutes)
	}
	return fromMinutes(minutes), nil
}

// Minutes возвращает количество минут от полуночи
func (t TimeString) Minutes() (int, error) {
	return parseMinutes(string(t))
}

// IsValid проверяет, что значение является корректным временем
func (t TimeString) IsValid() bool {
	_, err := t.Minutes()
	return err == nil
}

// AddMinutes прибавляет минуты; результат не может перейти через полночь
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return NewTimeStringFromMinutes(minutes + delta)
}

// MinutesUntil возвращает разницу other - t в минутах (может быть отрицательной)
func (t TimeString) MinutesUntil(other TimeString) (int, error) {
	from, err := t.Minutes()
	if err != nil {
		return 0, err
	}
	to, err := other.Minutes()
	if err != nil {
		return 0, err
	}
	return to - from, nil
}

// Normalized приводит HH:MM:SS к HH:MM
// Некорректное значение возвращается как есть
func (t TimeString) Normalized() TimeString {
	minutes, err := t.Minutes()
	if err != nil {
		return t
	}
	return fromMinutes(minutes)
}

// Between проверяет from <= t <= to (границы включительно)
func (t TimeString) Between(from, to TimeString) bool {
	value, err := t.Minutes()
	if err != nil {
		return false
	}
	lo, err := from.Minutes()
	if err != nil {
		return false
	}
	hi, err := to.Minutes()
	if err != nil {
		return false
	}
	return lo <= value && value <= hi
}

func (t TimeString) String() string {
	return string(t)
}

// Scan реализует sql.Scanner (колонка TIME в PostgreSQL)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case string:
		ts, err := NewTimeStringFromString(v)
		if err != nil {
			return err
		}
		*t = ts
		return nil
	case []byte:
		ts, err := NewTimeStringFromString(string(v))
		if err != nil {
			return err
		}
		*t = ts
		return nil
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", src)
	}
}

// UnmarshalJSON принимает только строку и нормализует ее
// Некорректное время сохраняется как есть, уровни правил его пропустят
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("types: TimeString must be a string: %w", err)
	}
	*t = TimeString(s).Normalized()
	return nil
}

// UnmarshalYAML нормализует значение из YAML так же, как UnmarshalJSON
func (t *TimeString) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("types: TimeString must be a string: %w", err)
	}
	*t = TimeString(s).Normalized()
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

// parseMinutes принимает только строгий формат с ведущими нулями
func parseMinutes(s string) (int, error) {
	switch len(s) {
	case len(timeLayout):
	case len(timeLayoutSecs):
		if s[5] != ':' || !isDigits(s[6:8]) {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	if s[2] != ':' || !isDigits(s[0:2]) || !isDigits(s[3:5]) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, _ := strconv.Atoi(s[0:2])
	minutes, _ := strconv.Atoi(s[3:5])
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hours*60 + minutes, nil
}

func fromMinutes(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

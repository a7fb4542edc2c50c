package preset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Load читает пресет правил раскраски из YAML файла
// Пресет описывает конфигурацию целиком; файл только читается, обратно ничего не пишется
func Load(path string) (*domain.RuleConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadPreset, path, err)
	}
	return Parse(data)
}

// Parse разбирает пресет из YAML
// Неизвестные ключи считаются ошибкой
func Parse(data []byte) (*domain.RuleConfiguration, error) {
	var cfg domain.RuleConfiguration

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrParsePreset)
		}
		return nil, fmt.Errorf("%w: %v", ErrParsePreset, err)
	}

	// Порядок уровней в настройках можно не указывать
	if len(cfg.PriorityOrder) == 0 {
		cfg.PriorityOrder = append([]domain.Tier(nil), domain.Tiers...)
	}

	return &cfg, nil
}

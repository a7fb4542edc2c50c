package rules

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// Store хранит текущую конфигурацию правил раскраски в памяти процесса
//
// Опубликованное значение никогда не изменяется: каждое обновление работает на копии
// и заменяет указатель целиком с увеличением версии. Наружу отдаются только копии.
type Store struct {
	mu      sync.RWMutex
	current *domain.RuleConfiguration
	now     func() time.Time
}

// NewStore создает хранилище с начальной конфигурацией
// Если initial == nil, используется конфигурация по умолчанию
func NewStore(initial *domain.RuleConfiguration) *Store {
	return newStore(initial, time.Now)
}

func newStore(initial *domain.RuleConfiguration, now func() time.Time) *Store {
	if initial == nil {
		initial = domain.DefaultRuleConfiguration()
	}

	cfg := initial.Clone()
	if cfg.Version <= 0 {
		cfg.Version = 1
	}
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = now()
	}

	return &Store{current: cfg, now: now}
}

// Current возвращает копию текущей конфигурации
func (s *Store) Current(ctx context.Context) *domain.RuleConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone()
}

// Update применяет fn к копии текущей конфигурации и публикует результат
// Если fn вернула ошибку, конфигурация не меняется
func (s *Store) Update(ctx context.Context, fn func(cfg *domain.RuleConfiguration) error) (*domain.RuleConfiguration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.current.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}

	return s.publishLocked(next), nil
}

// Replace публикует cfg, только если expectedVersion совпадает с текущей версией
func (s *Store) Replace(ctx context.Context, expectedVersion int64, cfg *domain.RuleConfiguration) (*domain.RuleConfiguration, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current.Version != expectedVersion {
		return nil, fmt.Errorf("%w: expected=%d, current=%d", ErrVersionConflict, expectedVersion, s.current.Version)
	}

	return s.publishLocked(cfg.Clone()), nil
}

// Load безусловно публикует cfg (сброс к умолчаниям, перезагрузка пресета)
func (s *Store) Load(ctx context.Context, cfg *domain.RuleConfiguration) (*domain.RuleConfiguration, error) {
	if cfg == nil {
		return nil, ErrNilConfiguration
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.publishLocked(cfg.Clone()), nil
}

// publishLocked версия продолжает расти даже при полной замене конфигурации
func (s *Store) publishLocked(next *domain.RuleConfiguration) *domain.RuleConfiguration {
	next.Version = s.current.Version + 1
	next.UpdatedAt = s.now()
	s.current = next
	return next.Clone()
}

package preset

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
)

// reloadDebounce редакторы пишут файл несколькими событиями подряд
const reloadDebounce = 100 * time.Millisecond

// Applier публикует новую конфигурацию правил
type Applier interface {
	ApplyPreset(ctx context.Context, cfg *domain.RuleConfiguration) (int64, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Watcher перечитывает файл пресета при каждом изменении
// Ошибки чтения и валидации логируются, текущая конфигурация остается прежней
type Watcher struct {
	path    string
	applier Applier
	logger  Logger
	watcher *fsnotify.Watcher

	mu    sync.Mutex
	timer *time.Timer

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// NewWatcher начинает следить за файлом пресета
// Следим за каталогом: при сохранении многие редакторы заменяют файл через rename
func NewWatcher(path string, applier Applier, logger Logger) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrWatchPreset, path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWatchPreset, err)
	}

	if err := fsw.Add(filepath.Dir(absPath)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("%w: %s: %v", ErrWatchPreset, absPath, err)
	}

	w := &Watcher{
		path:    absPath,
		applier: applier,
		logger:  logger,
		watcher: fsw,
		done:    make(chan struct{}),
	}

	w.wg.Add(1)
	go w.watch()

	logger.Info("Preset watcher started for %s", absPath)
	return w, nil
}

func (w *Watcher) watch() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				w.schedule()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Preset watcher error: %v", err)

		case <-w.done:
			return
		}
	}
}

// schedule откладывает перечитывание до окончания серии событий
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDebounce, w.Reload)
}

// Reload перечитывает файл и публикует конфигурацию
func (w *Watcher) Reload() {
	select {
	case <-w.done:
		return
	default:
	}

	cfg, err := Load(w.path)
	if err != nil {
		w.logger.Error("Preset reload failed, keeping current rules: %v", err)
		return
	}

	version, err := w.applier.ApplyPreset(context.Background(), cfg)
	if err != nil {
		w.logger.Error("Preset %s rejected, keeping current rules: %v", w.path, err)
		return
	}

	w.logger.Info("Preset %s reloaded, rules version=%d", w.path, version)
}

// Close останавливает наблюдение за файлом
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()

		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

package file

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/storage"

	"go.uber.org/zap"
)

// Storage хранит каждый ключ в отдельном файле внутри каталога данных.
// Запись идёт через временный файл и rename, чтобы не оставить полузаписанный JSON
type Storage struct {
	dir    string
	mtx    *sync.RWMutex
	closed bool
}

func New(dir string) (*Storage, error) {
	if dir == "" {
		return nil, errors.New("не задан каталог данных")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("создание каталога %s: %w", dir, err)
	}
	logger.Info("Repository: Файловое хранилище готово", zap.String("dir", dir))
	return &Storage{
		dir: dir,
		mtx: &sync.RWMutex{},
	}, nil
}

func (s *Storage) path(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+".json")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.closed {
		return storage.ErrClosed
	}
	info, err := os.Stat(s.dir)
	if err != nil {
		logger.Error("Repository: Каталог данных недоступен", err)
		return fmt.Errorf("проверка каталога: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s не является каталогом", s.dir)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.closed {
		return "", storage.ErrClosed
	}
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}
	return string(b), nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return storage.ErrClosed
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("создание временного файла: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("запись ключа %s: %w", key, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("синхронизация ключа %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("закрытие временного файла: %w", err)
	}
	if err := os.Rename(tmpName, s.path(key)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("замена файла ключа %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	logger.Info("Repository: Файловое хранилище закрыто", zap.String("dir", s.dir))
	return nil
}

package inmemory

import (
	"context"
	"sync"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/storage"

	"go.uber.org/zap"
)

type Storage struct {
	items  map[string]string
	mtx    *sync.RWMutex
	closed bool
}

func New() *Storage {
	return &Storage{
		items: make(map[string]string),
		mtx:   &sync.RWMutex{},
	}
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.closed {
		return storage.ErrClosed
	}
	logger.Info("Repository: Соединение стабильно", zap.String("storage", "inmemory"))
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if s.closed {
		return "", storage.ErrClosed
	}
	value, ok := s.items[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.closed {
		return storage.ErrClosed
	}
	s.items[key] = value
	return nil
}

func (s *Storage) Close() error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.closed = true
	return nil
}

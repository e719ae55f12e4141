package storage

import (
	"context"
	"errors"
)

// ключи, под которыми хранится состояние приложения
const KeyTasks = "tasks"
const KeyDarkMode = "darkMode"

var ErrNotFound = errors.New("ключ не найден")
var ErrClosed = errors.New("хранилище закрыто")

// Storage - локальное key-value хранилище.
// Get возвращает ErrNotFound, если ключ ещё не записывался
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	HealthCheck(ctx context.Context) error
	Close() error
}

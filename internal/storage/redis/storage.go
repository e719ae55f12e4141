package redis

import (
	"context"
	"errors"
	"fmt"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/storage"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Options struct {
	Addr     string
	Username string
	Password string
	DB       int
	// префикс отделяет ключи приложения от остальных данных в той же базе
	Prefix string
}

type Storage struct {
	client *redis.Client
	prefix string
}

func New(ctx context.Context, opts Options) (*Storage, error) {
	if opts.Addr == "" {
		return nil, errors.New("не задан адрес redis")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Username: opts.Username,
		Password: opts.Password,
		DB:       opts.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		logger.Error("Repository: Неудачная проверка ping redis", err)
		return nil, fmt.Errorf("проверка соединения redis: %w", err)
	}

	logger.Info("Repository: Успешное подключение к Redis",
		zap.String("addr", opts.Addr),
		zap.Int("db", opts.DB))
	return &Storage{client: client, prefix: opts.Prefix}, nil
}

func (s *Storage) key(key string) string {
	return s.prefix + key
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		logger.Error("Repository: Неудачная проверка ping redis", err)
		return fmt.Errorf("проверка соединения redis: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", storage.ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать ключ", err, zap.String("key", key))
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		logger.Error("Repository: Не удалось записать ключ", err, zap.String("key", key))
		return fmt.Errorf("запись ключа %s: %w", key, err)
	}
	return nil
}

func (s *Storage) Close() error {
	logger.Info("Repository: Закрытие соединения Redis")
	return s.client.Close()
}

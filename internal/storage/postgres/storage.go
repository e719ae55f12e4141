package postgres

import (
	"context"
	"errors"
	"fmt"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/storage"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Options struct {
	MaxConnections int32
	MinConnections int32
	IdleTimeout    time.Duration
}

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string, opts Options) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5
	if opts.MaxConnections > 0 {
		config.MaxConns = opts.MaxConnections
	}
	if opts.MinConnections > 0 {
		config.MinConns = opts.MinConnections
	}
	if opts.IdleTimeout > 0 {
		config.MaxConnIdleTime = opts.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() error {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
	return nil
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()

	query := `SELECT value
				FROM kv_store
				WHERE key = $1`

	var value string
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		logger.Error("Repository: Не удалось прочитать ключ", err,
			zap.String("key", key),
			zap.Duration("ms", time.Since(start)))
		return "", fmt.Errorf("чтение ключа %s: %w", key, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return value, nil
}

func (s *Storage) Set(ctx context.Context, key, value string) error {
	start := time.Now()

	query := `INSERT INTO kv_store (key, value, updated_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (key) DO UPDATE
				SET value = EXCLUDED.value,
					updated_at = NOW()`

	_, err := s.pool.Exec(ctx, query, key, value)
	if err != nil {
		logger.Error("Repository: Не удалось записать ключ", err,
			zap.String("key", key),
			zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("запись ключа %s: %w", key, err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"taskKeeper/internal/config"
	"taskKeeper/internal/handlers"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/service"
	"taskKeeper/internal/storage"
	"taskKeeper/internal/storage/file"
	"taskKeeper/internal/storage/inmemory"
	"taskKeeper/internal/storage/postgres"
	"taskKeeper/internal/storage/redis"
	"taskKeeper/internal/store"
	"taskKeeper/internal/worker"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	storage   storage.Storage
	store     *store.Store
	service   handlers.Service
	worker    *worker.ResyncWorker
	shutdowns []func(context.Context) // выполняются в обратном порядке
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(context.Context), 0),
	}
}

func (a *App) Init(ctx context.Context) (*App, error) {
	err := logger.InitWithOptions(logger.Options{
		Development: a.config.Logging.Development,
		File:        a.config.Logging.File,
		MaxSizeMB:   a.config.Logging.MaxSizeMB,
		MaxBackups:  a.config.Logging.MaxBackups,
		MaxAgeDays:  a.config.Logging.MaxAgeDays,
	})
	if err != nil {
		return nil, fmt.Errorf("инициализация логгера: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func(context.Context) {
		logger.Info("Завершение работы логгирования...")
		logger.Sync()
	})

	st, err := newStorage(ctx, a.config.Storage)
	if err != nil {
		a.Shutdown(ctx)
		return nil, fmt.Errorf("инициализация хранилища: %w", err)
	}
	a.storage = st
	a.shutdowns = append(a.shutdowns, func(context.Context) {
		logger.Info("Закрытие хранилища...")
		if err := st.Close(); err != nil {
			logger.Error("Ошибка закрытия хранилища", err)
		}
	})

	a.store = store.New(st, a.config.Store.WriteTimeout)
	if err := a.store.Load(ctx); err != nil {
		// стор остаётся пустым, приложение продолжает работу
		logger.Warn("Не удалось загрузить сохранённые данные", zap.Error(err))
	}
	a.shutdowns = append(a.shutdowns, func(ctx context.Context) {
		logger.Info("Ожидание записи данных...")
		if err := a.store.Close(ctx); err != nil {
			logger.Error("Ошибка завершения стора", err)
		}
	})

	a.service = service.NewTaskService(a.store, st)
	a.router = handlers.NewRouter(handlers.NewTaskHandler(a.service), handlers.RouterOptions{
		RateLimit:      a.config.Server.RateLimit,
		LocalOnly:      a.config.Server.LocalOnly,
		AllowedOrigins: a.config.Server.AllowedOrigins,
	})

	a.server = &http.Server{
		Addr:              a.config.GetServerAddr(),
		Handler:           a.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	if a.config.Worker.Enabled {
		a.worker = worker.NewResyncWorker(a.store, &a.config.Worker.ResyncEvery, &a.config.Worker.ResyncTimeout)
	}

	logger.Info("Приложение инициализировано",
		zap.String("storage", a.config.Storage.Type),
		zap.String("addr", a.server.Addr))
	return a, nil
}

func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case config.StorageInMemory:
		return inmemory.New(), nil
	case config.StorageFile:
		return file.New(cfg.Dir)
	case config.StoragePostgres:
		if err := postgres.Migrate(cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("миграции: %w", err)
		}
		return postgres.New(ctx, cfg.Database.URL, postgres.Options{
			MaxConnections: cfg.Database.MaxConnections,
			MinConnections: cfg.Database.MinConnections,
			IdleTimeout:    cfg.Database.IdleTimeout,
		})
	case config.StorageRedis:
		return redis.New(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Username: cfg.Redis.Username,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	default:
		return nil, fmt.Errorf("неизвестный тип хранилища %q", cfg.Type)
	}
}

// Handler нужен для тестов без поднятия сервера
func (a *App) Handler() http.Handler {
	return a.router
}

// Run блокируется до SIGINT/SIGTERM или отмены ctx, затем корректно останавливает приложение
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup
	workerCtx, cancelWorker := context.WithCancel(ctx)
	if a.worker != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			a.worker.Start(workerCtx)
		}()
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Server started", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Получен сигнал завершения")
	case err, ok := <-serverErr:
		if ok {
			logger.Error("Сервер остановлен с ошибкой", err)
			runErr = fmt.Errorf("запуск сервера: %w", err)
		}
	}

	timeout := a.config.Server.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка остановки сервера", err)
	}
	cancelWorker()
	wg.Wait()

	a.Shutdown(shutdownCtx)
	return runErr
}

func (a *App) Shutdown(ctx context.Context) {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i](ctx)
	}
	a.shutdowns = nil
}

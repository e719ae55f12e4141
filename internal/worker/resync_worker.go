package worker

import (
	"context"
	"taskKeeper/internal/logger"
	"time"

	"go.uber.org/zap"
)

// Flusher - стор, который умеет дописывать неудавшиеся записи
type Flusher interface {
	Dirty() bool
	Flush(ctx context.Context) error
}

type ResyncWorker struct {
	store    Flusher
	interval time.Duration
	timeout  time.Duration
}

func NewResyncWorker(store Flusher, interval *time.Duration, timeout *time.Duration) *ResyncWorker {
	var intervalToSet time.Duration
	if interval == nil || *interval <= 0 {
		intervalToSet = 30 * time.Second
	} else {
		intervalToSet = *interval
	}

	var timeoutToSet time.Duration
	if timeout == nil || *timeout <= 0 {
		timeoutToSet = 10 * time.Second
	} else {
		timeoutToSet = *timeout
	}
	return &ResyncWorker{
		store:    store,
		interval: intervalToSet,
		timeout:  timeoutToSet,
	}
}

func (w *ResyncWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.Check(ctx)
		case <-ctx.Done():
			logger.Info("Worker: Фоновая досинхронизация останавливается")
			return
		}
	}
}

// Check повторяет запись, если прошлая завершилась ошибкой. Возвращает true, если всё записано
func (w *ResyncWorker) Check(ctx context.Context) bool {
	if !w.store.Dirty() {
		return true
	}

	start := time.Now()
	logger.Info("Worker: Повторная запись в хранилище", zap.Time("started_at", start))

	flushCtx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	if err := w.store.Flush(flushCtx); err != nil {
		logger.Warn("Worker: Хранилище всё ещё недоступно",
			zap.Error(err),
			zap.Duration("ms", time.Since(start)))
		return false
	}

	logger.Info("Worker: Данные досинхронизированы", zap.Duration("ms", time.Since(start)))
	return true
}

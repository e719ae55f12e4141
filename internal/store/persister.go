package store

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/storage"
	"time"

	"go.uber.org/zap"
)

const defaultWriteTimeout = 5 * time.Second

var ErrClosed = errors.New("хранилище задач закрыто")

// Pending - сигнал завершения записи в хранилище
type Pending struct {
	done chan struct{}
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

func finishedPending(err error) *Pending {
	p := newPending()
	p.finish(err)
	return p
}

func (p *Pending) finish(err error) {
	p.err = err
	close(p.done)
}

// Done закрывается, когда запись завершена (успешно или нет)
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Wait ждёт завершения записи и возвращает её ошибку
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// slot хранит последний ещё не записанный снимок ключа.
// Новый снимок заменяет старый, ожидающие обеих мутаций получат результат одной записи
type slot struct {
	value   string
	waiters []*Pending
}

// persister пишет снимки в одной горутине. Очереди нет: на каждый ключ держится
// только последний снимок, поэтому постановка никогда не блокируется,
// а последняя запись перезаписывает предыдущие
type persister struct {
	storage      storage.Storage
	writeTimeout time.Duration

	mtx     sync.Mutex
	slots   map[string]*slot
	closing bool

	wake    chan struct{}
	stopped chan struct{}
	ctx     context.Context
	cancel  context.CancelFunc

	// ключи, последняя запись которых завершилась ошибкой
	dirtyTasks    atomic.Bool
	dirtyDarkMode atomic.Bool
}

func newPersister(st storage.Storage, writeTimeout time.Duration) *persister {
	if writeTimeout <= 0 {
		writeTimeout = defaultWriteTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &persister{
		storage:      st,
		writeTimeout: writeTimeout,
		slots:        make(map[string]*slot),
		wake:         make(chan struct{}, 1),
		stopped:      make(chan struct{}),
		ctx:          ctx,
		cancel:       cancel,
	}
	go p.run()
	return p
}

func (p *persister) signal() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// enqueue вызывается под блокировкой стора, поэтому порядок снимков
// совпадает с порядком мутаций. Не блокируется
func (p *persister) enqueue(key, value string) *Pending {
	pending := newPending()

	p.mtx.Lock()
	if p.closing {
		p.mtx.Unlock()
		pending.finish(ErrClosed)
		return pending
	}
	if s, ok := p.slots[key]; ok {
		s.value = value
		s.waiters = append(s.waiters, pending)
	} else {
		p.slots[key] = &slot{value: value, waiters: []*Pending{pending}}
	}
	p.mtx.Unlock()

	p.signal()
	return pending
}

// next забирает все накопленные снимки. false - очередь пуста и persister закрывается
func (p *persister) next() (map[string]*slot, bool) {
	for {
		p.mtx.Lock()
		if len(p.slots) > 0 {
			batch := p.slots
			p.slots = make(map[string]*slot)
			p.mtx.Unlock()
			return batch, true
		}
		if p.closing {
			p.mtx.Unlock()
			return nil, false
		}
		p.mtx.Unlock()
		<-p.wake
	}
}

func (p *persister) run() {
	defer close(p.stopped)

	for {
		batch, ok := p.next()
		if !ok {
			return
		}
		// задачи первыми, порядок ключей стабилен
		for _, key := range []string{storage.KeyTasks, storage.KeyDarkMode} {
			if s, ok := batch[key]; ok {
				p.write(key, s)
				delete(batch, key)
			}
		}
		for key, s := range batch {
			p.write(key, s)
		}
	}
}

func (p *persister) write(key string, s *slot) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(p.ctx, p.writeTimeout)
	err := p.storage.Set(ctx, key, s.value)
	cancel()

	if err != nil {
		logger.Error("Store: Ошибка сохранения", err,
			zap.String("key", key),
			zap.Int("coalesced", len(s.waiters)),
			zap.Duration("ms", time.Since(start)))
	} else {
		logger.Debug("Store: Состояние сохранено",
			zap.String("key", key),
			zap.Int("bytes", len(s.value)),
			zap.Int("coalesced", len(s.waiters)),
			zap.Duration("ms", time.Since(start)))
	}
	p.markResult(key, err)
	for _, w := range s.waiters {
		w.finish(err)
	}
}

func (p *persister) markResult(key string, err error) {
	switch key {
	case storage.KeyTasks:
		p.dirtyTasks.Store(err != nil)
	case storage.KeyDarkMode:
		p.dirtyDarkMode.Store(err != nil)
	}
}

// stop дописывает накопленные снимки и останавливает горутину.
// По истечении ctx текущая запись отменяется
func (p *persister) stop(ctx context.Context) error {
	p.mtx.Lock()
	p.closing = true
	p.mtx.Unlock()
	p.signal()

	select {
	case <-p.stopped:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/storage"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrTaskNotFound = errors.New("задача не найдена")
var ErrInvalidSort = errors.New("неизвестный режим сортировки")
var ErrInvalidFilter = errors.New("неизвестный режим фильтрации")

// Store - единственный владелец коллекции задач и настроек.
// Каждая мутация сразу ставит полный снимок коллекции в очередь записи
type Store struct {
	storage   storage.Storage
	persister *persister

	mtx      sync.RWMutex
	tasks    []task.Task
	sortBy   SortMode
	filterBy FilterMode
	darkMode bool
	closed   bool

	now   func() time.Time
	newID func() string
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) {
		s.newID = newID
	}
}

// New создаёт пустой стор. writeTimeout ограничивает одну запись в хранилище,
// 0 - значение по умолчанию
func New(st storage.Storage, writeTimeout time.Duration, options ...Option) *Store {
	s := &Store{
		storage:  st,
		tasks:    []task.Task{},
		sortBy:   SortAll,
		filterBy: FilterAll,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range options {
		opt(s)
	}
	s.persister = newPersister(st, writeTimeout)
	return s
}

// Load читает сохранённые задачи и тёмную тему.
// При ошибке стор остаётся в состоянии по умолчанию, ошибка логируется и возвращается
func (s *Store) Load(ctx context.Context) error {
	var errs []error

	tasks, err := s.loadTasks(ctx)
	if err != nil {
		logger.Error("Store: Ошибка загрузки задач", err)
		errs = append(errs, err)
	} else {
		s.mtx.Lock()
		s.tasks = tasks
		s.mtx.Unlock()
		logger.Info("Store: Задачи загружены", zap.Int("count", len(tasks)))
	}

	darkMode, err := s.loadDarkMode(ctx)
	if err != nil {
		logger.Error("Store: Ошибка загрузки тёмной темы", err)
		errs = append(errs, err)
	} else {
		s.mtx.Lock()
		s.darkMode = darkMode
		s.mtx.Unlock()
	}

	return errors.Join(errs...)
}

func (s *Store) loadTasks(ctx context.Context) ([]task.Task, error) {
	raw, err := s.storage.Get(ctx, storage.KeyTasks)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []task.Task{}, nil
		}
		return nil, fmt.Errorf("чтение задач: %w", err)
	}
	return decodeTasks(raw)
}

func (s *Store) loadDarkMode(ctx context.Context) (bool, error) {
	raw, err := s.storage.Get(ctx, storage.KeyDarkMode)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("чтение тёмной темы: %w", err)
	}
	return decodeDarkMode(raw), nil
}

// persistTasksLocked ставит текущую коллекцию в очередь записи. Вызывать под s.mtx
func (s *Store) persistTasksLocked() *Pending {
	if s.closed {
		logger.Warn("Store: Запись после закрытия", zap.String("key", storage.KeyTasks))
		return finishedPending(ErrClosed)
	}
	raw, err := encodeTasks(s.tasks)
	if err != nil {
		logger.Error("Store: Ошибка сериализации задач", err)
		return finishedPending(err)
	}
	return s.persister.enqueue(storage.KeyTasks, raw)
}

func (s *Store) persistDarkModeLocked() *Pending {
	if s.closed {
		logger.Warn("Store: Запись после закрытия", zap.String("key", storage.KeyDarkMode))
		return finishedPending(ErrClosed)
	}
	return s.persister.enqueue(storage.KeyDarkMode, encodeDarkMode(s.darkMode))
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// Add создаёт задачу: новый id, время создания, нормализованные дата и вложения
func (s *Store) Add(draft task.Draft) (task.Task, *Pending) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	createdAt := s.now()
	newTask := task.Task{
		ID:          s.uniqueIDLocked(),
		Title:       draft.Title,
		Description: draft.Description,
		CreatedAt:   task.SafeTime(&createdAt),
		DueDate:     task.SafeTime(draft.DueDate),
		Priority:    draft.Priority,
		Category:    draft.Category,
		Completed:   false,
		Attachments: task.NormalizeAttachments(draft.Attachments),
	}
	if newTask.Priority == "" {
		newTask.Priority = task.PriorityMedium
	}
	if newTask.Category == "" {
		newTask.Category = task.CategoryPersonal
	}

	s.tasks = append(s.tasks, newTask)
	logger.Info("Store: Задача создана", zap.String("task_id", newTask.ID))

	return newTask.Clone(), s.persistTasksLocked()
}

func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if id != "" && s.indexLocked(id) == -1 {
			return id
		}
	}
}

// Update заменяет задачу с тем же id. Время создания не меняется.
// Неизвестный id - не ошибка: коллекция не меняется, но всё равно сохраняется
func (s *Store) Update(updated task.Task) (bool, *Pending) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	normalized := updated.Clone()
	normalized.DueDate = task.SafeTime(updated.DueDate)
	normalized.Attachments = task.NormalizeAttachments(updated.Attachments)

	ind := s.indexLocked(updated.ID)
	if ind == -1 {
		logger.Info("Store: Задача для обновления не найдена", zap.String("task_id", updated.ID))
		return false, s.persistTasksLocked()
	}

	normalized.CreatedAt = s.tasks[ind].CreatedAt
	s.tasks[ind] = normalized
	return true, s.persistTasksLocked()
}

// Patch применяет опции к задаче под блокировкой стора, поэтому параллельные
// изменения других полей не теряются. check вызывается до записи: если он
// вернул ошибку, задача не меняется и ничего не сохраняется
func (s *Store) Patch(id string, check func(task.Task) error, options ...task.TaskOption) (task.Task, *Pending, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.indexLocked(id)
	if ind == -1 {
		logger.Info("Store: Задача для изменения не найдена", zap.String("task_id", id))
		return task.Task{}, nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	current := s.tasks[ind]
	patched := task.Apply(current, options...)
	patched.ID = current.ID
	patched.CreatedAt = current.CreatedAt
	patched.DueDate = task.SafeTime(patched.DueDate)
	patched.Attachments = task.NormalizeAttachments(patched.Attachments)

	if check != nil {
		if err := check(patched); err != nil {
			return task.Task{}, nil, err
		}
	}

	s.tasks[ind] = patched
	return patched.Clone(), s.persistTasksLocked(), nil
}

func (s *Store) Delete(id string) (bool, *Pending) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.indexLocked(id)
	if ind == -1 {
		logger.Info("Store: Задача для удаления не найдена", zap.String("task_id", id))
		return false, s.persistTasksLocked()
	}

	s.tasks = append(s.tasks[:ind:ind], s.tasks[ind+1:]...)
	return true, s.persistTasksLocked()
}

func (s *Store) ToggleCompletion(id string) (bool, *Pending) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	ind := s.indexLocked(id)
	if ind == -1 {
		logger.Info("Store: Задача для переключения не найдена", zap.String("task_id", id))
		return false, s.persistTasksLocked()
	}

	s.tasks[ind].Completed = !s.tasks[ind].Completed
	return true, s.persistTasksLocked()
}

func (s *Store) ClearAll() *Pending {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.tasks = []task.Task{}
	logger.Info("Store: Все задачи удалены")
	return s.persistTasksLocked()
}

// настройки сортировки и фильтра живут только в сессии
func (s *Store) SetSortBy(mode SortMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidSort, mode)
	}
	s.mtx.Lock()
	s.sortBy = mode
	s.mtx.Unlock()
	return nil
}

func (s *Store) SetFilterBy(mode FilterMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFilter, mode)
	}
	s.mtx.Lock()
	s.filterBy = mode
	s.mtx.Unlock()
	return nil
}

func (s *Store) SortBy() SortMode {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.sortBy
}

func (s *Store) FilterBy() FilterMode {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.filterBy
}

// ToggleDarkMode сохраняет флаг сразу и независимо от задач
func (s *Store) ToggleDarkMode() (bool, *Pending) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.darkMode = !s.darkMode
	return s.darkMode, s.persistDarkModeLocked()
}

func (s *Store) DarkMode() bool {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.darkMode
}

func (s *Store) Get(id string) (task.Task, bool) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ind := s.indexLocked(id)
	if ind == -1 {
		return task.Task{}, false
	}
	return s.tasks[ind].Clone(), true
}

// All - вся коллекция в порядке добавления, без фильтра и сортировки
func (s *Store) All() []task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() []task.Task {
	res := make([]task.Task, len(s.tasks))
	for i, t := range s.tasks {
		res[i] = t.Clone()
	}
	return res
}

// Tasks - отфильтрованный и отсортированный вид. Пересчитывается на каждый вызов
func (s *Store) Tasks() []task.Task {
	s.mtx.RLock()
	snapshot := s.snapshotLocked()
	sortBy, filterBy := s.sortBy, s.filterBy
	s.mtx.RUnlock()

	return Sort(Filter(snapshot, filterBy), sortBy)
}

// Search применяет поиск поверх Tasks
func (s *Store) Search(query string) []task.Task {
	return Search(s.Tasks(), query)
}

// Dirty сообщает, что последняя запись какого-то ключа не удалась
func (s *Store) Dirty() bool {
	return s.persister.dirtyTasks.Load() || s.persister.dirtyDarkMode.Load()
}

// Flush повторно записывает ключи, последняя запись которых не удалась, и ждёт результата
func (s *Store) Flush(ctx context.Context) error {
	s.mtx.Lock()
	var pendings []*Pending
	if s.persister.dirtyTasks.Load() {
		pendings = append(pendings, s.persistTasksLocked())
	}
	if s.persister.dirtyDarkMode.Load() {
		pendings = append(pendings, s.persistDarkModeLocked())
	}
	s.mtx.Unlock()

	var errs []error
	for _, p := range pendings {
		if err := p.Wait(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close дожидается записи всех поставленных в очередь снимков
func (s *Store) Close(ctx context.Context) error {
	s.mtx.Lock()
	if s.closed {
		s.mtx.Unlock()
		return nil
	}
	s.closed = true
	s.mtx.Unlock()

	if err := s.persister.stop(ctx); err != nil {
		logger.Warn("Store: Не все записи завершены при закрытии", zap.Error(err))
		return fmt.Errorf("закрытие стора: %w", err)
	}
	logger.Info("Store: Закрыт")
	return nil
}

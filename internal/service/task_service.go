package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/store"

	"go.uber.org/zap"
)

// здесь происходит проверка ошибок бизнес-логики

const resourceTask = "задача"

type Settings struct {
	SortBy   store.SortMode   `json:"sort_by"`
	FilterBy store.FilterMode `json:"filter_by"`
	DarkMode bool             `json:"dark_mode"`
}

// TaskService не ждёт записи в хранилище: *store.Pending от мутаций
// отбрасывается, ошибки записи логирует и повторяет сам стор
type TaskService struct {
	store  TaskStore
	health HealthChecker
}

func NewTaskService(taskStore TaskStore, health HealthChecker) *TaskService {
	return &TaskService{
		store:  taskStore,
		health: health,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.health.HealthCheck(ctx); err != nil {
		logger.Error("Service: Проверка здоровья не пройдена", err, logger.RequestIDField(ctx))
		return fmt.Errorf("проверка здоровья сервиса: %w", err)
	}
	return nil
}

func validatePriority(priority task.Priority) error {
	if priority != "" && !priority.Valid() {
		return NewValidationError("priority", fmt.Sprintf("ожидается High, Medium или Low, получено %q", priority))
	}
	return nil
}

func validateCategory(category task.Category) error {
	if category != "" && !category.Valid() {
		return NewValidationError("category", fmt.Sprintf("ожидается Personal, Work, Shopping или Other, получено %q", category))
	}
	return nil
}

func validateAttachments(attachments []task.Attachment) error {
	for i, a := range attachments {
		if !a.Type.Valid() {
			return NewValidationError(fmt.Sprintf("attachments[%d].type", i), "ожидается image или file")
		}
		if strings.TrimSpace(a.URI) == "" {
			return NewValidationError(fmt.Sprintf("attachments[%d].uri", i), "пустое значение")
		}
	}
	return nil
}

func validateTask(t task.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "название не может быть пустым")
	}
	if err := validatePriority(t.Priority); err != nil {
		return err
	}
	if err := validateCategory(t.Category); err != nil {
		return err
	}
	return validateAttachments(t.Attachments)
}

func (s *TaskService) CreateTask(ctx context.Context, draft task.Draft) (*task.Task, error) {
	err := validateTask(task.Task{
		Title:       draft.Title,
		Priority:    draft.Priority,
		Category:    draft.Category,
		Attachments: draft.Attachments,
	})
	if err != nil {
		logger.Info("Service: Ошибка валидации при создании", zap.Error(err), logger.RequestIDField(ctx))
		return nil, err
	}

	created, _ := s.store.Add(draft)
	return &created, nil
}

func (s *TaskService) GetTaskByID(ctx context.Context, id string) (*task.Task, error) {
	found, ok := s.store.Get(id)
	if !ok {
		logger.Info("Service: Задача не найдена", zap.String("target_id", id), logger.RequestIDField(ctx))
		return nil, NewNotFound(resourceTask, id)
	}
	return &found, nil
}

func (s *TaskService) ListTasks(ctx context.Context, query string) []task.Task {
	if strings.TrimSpace(query) == "" {
		return s.store.Tasks()
	}
	return s.store.Search(query)
}

func (s *TaskService) UpdateTask(ctx context.Context, id string, options ...task.TaskOption) (*task.Task, error) {
	// опции применяются внутри стора под его блокировкой
	updated, _, err := s.store.Patch(id, validateTask, options...)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			logger.Info("Service: Задача не найдена", zap.String("target_id", id), logger.RequestIDField(ctx))
			return nil, NewNotFound(resourceTask, id)
		}
		logger.Info("Service: Ошибка валидации при обновлении",
			zap.String("target_id", id),
			zap.Error(err),
			logger.RequestIDField(ctx))
		return nil, err
	}
	return &updated, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id string) error {
	found, _ := s.store.Delete(id)
	if !found {
		logger.Info("Service: Задача для удаления не найдена", zap.String("target_id", id), logger.RequestIDField(ctx))
		return NewNotFound(resourceTask, id)
	}
	return nil
}

func (s *TaskService) ToggleTask(ctx context.Context, id string) (*task.Task, error) {
	found, _ := s.store.ToggleCompletion(id)
	if !found {
		logger.Info("Service: Задача для переключения не найдена", zap.String("target_id", id), logger.RequestIDField(ctx))
		return nil, NewNotFound(resourceTask, id)
	}

	result, ok := s.store.Get(id)
	if !ok {
		return nil, NewNotFound(resourceTask, id)
	}
	return &result, nil
}

func (s *TaskService) ClearTasks(ctx context.Context) {
	s.store.ClearAll()
}

func (s *TaskService) GetSettings(ctx context.Context) Settings {
	return Settings{
		SortBy:   s.store.SortBy(),
		FilterBy: s.store.FilterBy(),
		DarkMode: s.store.DarkMode(),
	}
}

func (s *TaskService) SetSortBy(ctx context.Context, mode string) (Settings, error) {
	if err := s.store.SetSortBy(store.SortMode(mode)); err != nil {
		return Settings{}, NewValidationError("sort_by", "ожидается All, High, Medium или Low")
	}
	return s.GetSettings(ctx), nil
}

func (s *TaskService) SetFilterBy(ctx context.Context, mode string) (Settings, error) {
	if err := s.store.SetFilterBy(store.FilterMode(mode)); err != nil {
		return Settings{}, NewValidationError("filter_by", "ожидается All, Personal, Work, Shopping или Other")
	}
	return s.GetSettings(ctx), nil
}

func (s *TaskService) ToggleDarkMode(ctx context.Context) Settings {
	s.store.ToggleDarkMode()
	return s.GetSettings(ctx)
}

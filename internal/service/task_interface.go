package service

import (
	"context"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/store"
)

// TaskStore - то, что сервису нужно от стора задач
type TaskStore interface {
	Add(draft task.Draft) (task.Task, *store.Pending)
	Patch(id string, check func(task.Task) error, options ...task.TaskOption) (task.Task, *store.Pending, error)
	Delete(id string) (bool, *store.Pending)
	ToggleCompletion(id string) (bool, *store.Pending)
	ClearAll() *store.Pending
	Get(id string) (task.Task, bool)
	Tasks() []task.Task
	Search(query string) []task.Task
	SetSortBy(mode store.SortMode) error
	SetFilterBy(mode store.FilterMode) error
	SortBy() store.SortMode
	FilterBy() store.FilterMode
	ToggleDarkMode() (bool, *store.Pending)
	DarkMode() bool
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

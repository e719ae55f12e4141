package handlers

import (
	"context"
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/service"
)

type Service interface {
	HealthCheck(ctx context.Context) error
	CreateTask(ctx context.Context, draft task.Draft) (*task.Task, error)
	GetTaskByID(ctx context.Context, id string) (*task.Task, error)
	ListTasks(ctx context.Context, query string) []task.Task
	UpdateTask(ctx context.Context, id string, options ...task.TaskOption) (*task.Task, error)
	DeleteTask(ctx context.Context, id string) error
	ToggleTask(ctx context.Context, id string) (*task.Task, error)
	ClearTasks(ctx context.Context)
	GetSettings(ctx context.Context) service.Settings
	SetSortBy(ctx context.Context, mode string) (service.Settings, error)
	SetFilterBy(ctx context.Context, mode string) (service.Settings, error)
	ToggleDarkMode(ctx context.Context) service.Settings
}

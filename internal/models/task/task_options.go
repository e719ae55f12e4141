package task

import (
	"time"
)

type TaskOption func(*Task)

func WithTitle(title string) TaskOption {
	return func(task *Task) {
		task.Title = title
	}
}

func WithDescription(description string) TaskOption {
	return func(task *Task) {
		task.Description = description
	}
}

func WithPriority(priority Priority) TaskOption {
	if priority == "" {
		return nil
	}
	return func(task *Task) {
		task.Priority = priority
	}
}

func WithCategory(category Category) TaskOption {
	if category == "" {
		return nil
	}
	return func(task *Task) {
		task.Category = category
	}
}

// nil снимает дедлайн
func WithDueDate(dueDate *time.Time) TaskOption {
	return func(task *Task) {
		task.DueDate = SafeTime(dueDate)
	}
}

func WithCompleted(completed bool) TaskOption {
	return func(task *Task) {
		task.Completed = completed
	}
}

func WithAttachments(attachments []Attachment) TaskOption {
	return func(task *Task) {
		task.Attachments = NormalizeAttachments(attachments)
	}
}

// Apply применяет опции к копии задачи, пропуская nil
func Apply(t Task, options ...TaskOption) Task {
	res := t.Clone()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&res)
	}
	return res
}

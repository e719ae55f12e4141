package task

import (
	"time"
)

type Task struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	CreatedAt   *time.Time   `json:"created_at,omitempty"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	Priority    Priority     `json:"priority"`
	Category    Category     `json:"category"`
	Completed   bool         `json:"completed"`
	Attachments []Attachment `json:"attachments"`
}

// черновик задачи - то, что приходит с экрана добавления
type Draft struct {
	Title       string
	Description string
	DueDate     *time.Time
	Priority    Priority
	Category    Category
	Attachments []Attachment
}

type Priority string
type Category string

const PriorityHigh Priority = "High"
const PriorityMedium Priority = "Medium"
const PriorityLow Priority = "Low"

const CategoryPersonal Category = "Personal"
const CategoryWork Category = "Work"
const CategoryShopping Category = "Shopping"
const CategoryOther Category = "Other"

func (p Priority) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Rank возвращает порядок приоритета: High < Medium < Low < неизвестный
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryShopping, CategoryOther:
		return true
	}
	return false
}

// Clone возвращает копию задачи, не разделяющую память с оригиналом
func (t Task) Clone() Task {
	cp := t
	if t.CreatedAt != nil {
		createdAt := *t.CreatedAt
		cp.CreatedAt = &createdAt
	}
	if t.DueDate != nil {
		dueDate := *t.DueDate
		cp.DueDate = &dueDate
	}
	cp.Attachments = make([]Attachment, len(t.Attachments))
	copy(cp.Attachments, t.Attachments)
	return cp
}

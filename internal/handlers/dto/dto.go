package dto

import (
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/service"
)

type AttachmentDTO struct {
	Type string `json:"type"`
	URI  string `json:"uri"`
	Name string `json:"name,omitempty"`
}

type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	DueDate     string          `json:"due_date"`
	Priority    string          `json:"priority"`
	Category    string          `json:"category"`
	Attachments []AttachmentDTO `json:"attachments"`
}

// ClearDueDate снимает дедлайн; DueDate при этом игнорируется
type UpdateTaskRequest struct {
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	DueDate      *string          `json:"due_date,omitempty"`
	ClearDueDate bool             `json:"clear_due_date,omitempty"`
	Priority     *string          `json:"priority,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Completed    *bool            `json:"completed,omitempty"`
	Attachments  *[]AttachmentDTO `json:"attachments,omitempty"`
}

type SortRequest struct {
	SortBy string `json:"sort_by"`
}

type FilterRequest struct {
	FilterBy string `json:"filter_by"`
}

type TaskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	CreatedAt   *string         `json:"created_at"`
	DueDate     *string         `json:"due_date"`
	Priority    string          `json:"priority"`
	Category    string          `json:"category"`
	Completed   bool            `json:"completed"`
	Attachments []AttachmentDTO `json:"attachments"`
}

type SettingsResponse struct {
	SortBy   string `json:"sort_by"`
	FilterBy string `json:"filter_by"`
	DarkMode bool   `json:"dark_mode"`
}

func toAttachments(items []AttachmentDTO) []task.Attachment {
	res := make([]task.Attachment, 0, len(items))
	for _, a := range items {
		res = append(res, task.Attachment{
			Type: task.AttachmentType(a.Type),
			URI:  a.URI,
			Name: a.Name,
		})
	}
	return res
}

func fromAttachments(items []task.Attachment) []AttachmentDTO {
	res := make([]AttachmentDTO, 0, len(items))
	for _, a := range items {
		res = append(res, AttachmentDTO{
			Type: string(a.Type),
			URI:  a.URI,
			Name: a.Name,
		})
	}
	return res
}

// ToDraft переводит запрос в черновик. Нераспознанная дата считается отсутствующей
func (r CreateTaskRequest) ToDraft() task.Draft {
	return task.Draft{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     task.SafeParse(r.DueDate),
		Priority:    task.Priority(r.Priority),
		Category:    task.Category(r.Category),
		Attachments: toAttachments(r.Attachments),
	}
}

func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.DueDate == nil && !r.ClearDueDate &&
		r.Priority == nil && r.Category == nil && r.Completed == nil && r.Attachments == nil
}

func (r UpdateTaskRequest) ToOptions() []task.TaskOption {
	var options []task.TaskOption
	if r.Title != nil {
		options = append(options, task.WithTitle(*r.Title))
	}
	if r.Description != nil {
		options = append(options, task.WithDescription(*r.Description))
	}
	switch {
	case r.ClearDueDate:
		options = append(options, task.WithDueDate(nil))
	case r.DueDate != nil:
		options = append(options, task.WithDueDate(task.SafeParse(*r.DueDate)))
	}
	if r.Priority != nil {
		options = append(options, task.WithPriority(task.Priority(*r.Priority)))
	}
	if r.Category != nil {
		options = append(options, task.WithCategory(task.Category(*r.Category)))
	}
	if r.Completed != nil {
		options = append(options, task.WithCompleted(*r.Completed))
	}
	if r.Attachments != nil {
		options = append(options, task.WithAttachments(toAttachments(*r.Attachments)))
	}
	return options
}

func FromTask(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   task.FormatDate(t.CreatedAt),
		DueDate:     task.FormatDate(t.DueDate),
		Priority:    string(t.Priority),
		Category:    string(t.Category),
		Completed:   t.Completed,
		Attachments: fromAttachments(t.Attachments),
	}
}

func FromTaskList(tasks []task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i := range tasks {
		result[i] = FromTask(&tasks[i])
	}
	return result
}

func FromSettings(s service.Settings) SettingsResponse {
	return SettingsResponse{
		SortBy:   string(s.SortBy),
		FilterBy: string(s.FilterBy),
		DarkMode: s.DarkMode,
	}
}

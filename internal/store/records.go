package store

import (
	"encoding/json"
	"fmt"
	"taskKeeper/internal/logger"
	"taskKeeper/internal/models/task"
	"time"

	"go.uber.org/zap"
)

// isoDate - дата в формате хранения: ISO-строка или null.
// Всё, что не разбирается как дата, читается как отсутствующая дата
type isoDate struct {
	t *time.Time
}

func (d isoDate) MarshalJSON() ([]byte, error) {
	formatted := task.FormatDate(d.t)
	if formatted == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*formatted)
}

func (d *isoDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		d.t = nil
		return nil
	}
	d.t = task.SafeParse(s)
	return nil
}

type attachmentRecord struct {
	Type task.AttachmentType `json:"type"`
	URI  string              `json:"uri"`
	Name string              `json:"name"`
}

type taskRecord struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	CreatedAt   isoDate            `json:"createdAt"`
	DueDate     isoDate            `json:"dueDate"`
	Priority    task.Priority      `json:"priority"`
	Category    task.Category      `json:"category"`
	Completed   bool               `json:"completed"`
	Attachments []attachmentRecord `json:"attachments"`
}

func toRecord(t task.Task) taskRecord {
	attachments := make([]attachmentRecord, 0, len(t.Attachments))
	for _, a := range t.Attachments {
		attachments = append(attachments, attachmentRecord{Type: a.Type, URI: a.URI, Name: a.Name})
	}
	return taskRecord{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		CreatedAt:   isoDate{t: t.CreatedAt},
		DueDate:     isoDate{t: t.DueDate},
		Priority:    t.Priority,
		Category:    t.Category,
		Completed:   t.Completed,
		Attachments: attachments,
	}
}

func fromRecord(r taskRecord) task.Task {
	attachments := make([]task.Attachment, 0, len(r.Attachments))
	for _, a := range r.Attachments {
		attachments = append(attachments, task.Attachment{Type: a.Type, URI: a.URI, Name: a.Name})
	}
	return task.Task{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		CreatedAt:   r.CreatedAt.t,
		DueDate:     r.DueDate.t,
		Priority:    r.Priority,
		Category:    r.Category,
		Completed:   r.Completed,
		Attachments: task.NormalizeAttachments(attachments),
	}
}

func encodeTasks(tasks []task.Task) (string, error) {
	records := make([]taskRecord, 0, len(tasks))
	for _, t := range tasks {
		records = append(records, toRecord(t))
	}
	b, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("сериализация задач: %w", err)
	}
	return string(b), nil
}

// decodeTasks разбирает сохранённую коллекцию.
// Записи без id отбрасываются: id - единственный ключ поиска
func decodeTasks(raw string) ([]task.Task, error) {
	var records []taskRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("разбор задач: %w", err)
	}

	tasks := make([]task.Task, 0, len(records))
	for i, r := range records {
		if r.ID == "" {
			logger.Warn("Store: Пропущена задача без id", zap.Int("index", i), zap.String("title", r.Title))
			continue
		}
		tasks = append(tasks, fromRecord(r))
	}
	return tasks, nil
}

func encodeDarkMode(enabled bool) string {
	if enabled {
		return "true"
	}
	return "false"
}

func decodeDarkMode(raw string) bool {
	return raw == "true"
}

package task_test

import (
	"taskKeeper/internal/models/task"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSafeParse тестирует безопасный разбор дат
func TestSafeParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *time.Time
	}{
		{
			name:     "empty string",
			input:    "",
			expected: nil,
		},
		{
			name:     "garbage",
			input:    "not a date",
			expected: nil,
		},
		{
			name:     "iso with millis",
			input:    "2024-03-01T10:20:30.123Z",
			expected: ptr(time.Date(2024, 3, 1, 10, 20, 30, 123_000_000, time.UTC)),
		},
		{
			name:     "rfc3339 with offset",
			input:    "2024-03-01T13:20:30+03:00",
			expected: ptr(time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)),
		},
		{
			name:     "date only",
			input:    "2024-03-01",
			expected: ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := task.SafeParse(tt.input)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.expected.Equal(*got), "got %s", got)
		})
	}
}

// TestFormatDate тестирует обратное преобразование
func TestFormatDate(t *testing.T) {
	assert.Nil(t, task.FormatDate(nil))

	moment := time.Date(2024, 3, 1, 10, 20, 30, 123_456_789, time.UTC)
	formatted := task.FormatDate(&moment)
	require.NotNil(t, formatted)
	assert.Equal(t, "2024-03-01T10:20:30.123Z", *formatted)

	parsed := task.SafeParse(*formatted)
	require.NotNil(t, parsed)
	assert.True(t, moment.Truncate(time.Millisecond).Equal(*parsed))
}

// TestSafeTime тестирует нормализацию уже разобранных дат
func TestSafeTime(t *testing.T) {
	assert.Nil(t, task.SafeTime(nil))
	assert.Nil(t, task.SafeTime(&time.Time{}))

	local := time.Date(2024, 5, 5, 12, 0, 0, 999_999, time.FixedZone("MSK", 3*60*60))
	got := task.SafeTime(&local)
	require.NotNil(t, got)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Nanosecond()%int(time.Millisecond))
}

// TestNormalizeAttachments тестирует имя по умолчанию и пустой срез
func TestNormalizeAttachments(t *testing.T) {
	got := task.NormalizeAttachments(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	input := []task.Attachment{
		{Type: task.AttachmentImage, URI: "file:///img.png"},
		{Type: task.AttachmentFile, URI: "file:///doc.pdf", Name: "doc.pdf"},
	}
	got = task.NormalizeAttachments(input)
	require.Len(t, got, 2)
	assert.Equal(t, task.DefaultAttachmentName, got[0].Name)
	assert.Equal(t, "doc.pdf", got[1].Name)
	// исходный срез не меняется
	assert.Equal(t, "", input[0].Name)
}

// TestPriority_Rank тестирует порядок приоритетов
func TestPriority_Rank(t *testing.T) {
	assert.Less(t, task.PriorityHigh.Rank(), task.PriorityMedium.Rank())
	assert.Less(t, task.PriorityMedium.Rank(), task.PriorityLow.Rank())
	assert.Less(t, task.PriorityLow.Rank(), task.Priority("Urgent").Rank())

	assert.True(t, task.PriorityLow.Valid())
	assert.False(t, task.Priority("low").Valid())
	assert.True(t, task.CategoryShopping.Valid())
	assert.False(t, task.Category("All").Valid())
}

// TestApply тестирует применение опций к копии
func TestApply(t *testing.T) {
	due := time.Now().Add(time.Hour)
	original := task.Task{
		ID:          "1",
		Title:       "Old",
		Priority:    task.PriorityLow,
		Category:    task.CategoryWork,
		Attachments: []task.Attachment{{Type: task.AttachmentFile, URI: "a", Name: "a"}},
	}

	updated := task.Apply(original,
		task.WithTitle("New"),
		task.WithPriority(""),
		task.WithCategory(task.CategoryOther),
		task.WithDueDate(&due),
		task.WithAttachments([]task.Attachment{{Type: task.AttachmentImage, URI: "b"}}),
	)

	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, task.PriorityLow, updated.Priority)
	assert.Equal(t, task.CategoryOther, updated.Category)
	require.NotNil(t, updated.DueDate)
	assert.Equal(t, task.DefaultAttachmentName, updated.Attachments[0].Name)

	assert.Equal(t, "Old", original.Title)
	assert.Equal(t, "a", original.Attachments[0].URI)
	assert.Nil(t, original.DueDate)
}

func ptr(t time.Time) *time.Time {
	return &t
}

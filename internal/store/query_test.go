package store_test

import (
	"taskKeeper/internal/models/task"
	"taskKeeper/internal/store"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ids(tasks []task.Task) []string {
	res := make([]string, 0, len(tasks))
	for _, t := range tasks {
		res = append(res, t.ID)
	}
	return res
}

func sample() []task.Task {
	return []task.Task{
		{ID: "1", Title: "Report", Priority: task.PriorityLow, Category: task.CategoryWork},
		{ID: "2", Title: "Milk", Description: "2 liters", Priority: task.PriorityHigh, Category: task.CategoryShopping},
		{ID: "3", Title: "Call mom", Priority: task.PriorityMedium, Category: task.CategoryPersonal},
		{ID: "4", Title: "Deploy", Priority: task.PriorityHigh, Category: task.CategoryWork},
	}
}

// TestFilter тестирует фильтр по категории
func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		mode     store.FilterMode
		expected []string
	}{
		{name: "all passes everything", mode: store.FilterAll, expected: []string{"1", "2", "3", "4"}},
		{name: "work keeps relative order", mode: store.FilterMode(task.CategoryWork), expected: []string{"1", "4"}},
		{name: "shopping", mode: store.FilterMode(task.CategoryShopping), expected: []string{"2"}},
		{name: "nothing in other", mode: store.FilterMode(task.CategoryOther), expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(store.Filter(sample(), tt.mode)))
		})
	}
}

// TestSort тестирует сортировку по выбранному приоритету
func TestSort(t *testing.T) {
	tests := []struct {
		name     string
		mode     store.SortMode
		expected []string
	}{
		{name: "all keeps insertion order", mode: store.SortAll, expected: []string{"1", "2", "3", "4"}},
		{name: "high first, stable", mode: store.SortMode(task.PriorityHigh), expected: []string{"2", "4", "3", "1"}},
		{name: "medium first, rest by rank", mode: store.SortMode(task.PriorityMedium), expected: []string{"3", "2", "4", "1"}},
		{name: "low first, rest by rank", mode: store.SortMode(task.PriorityLow), expected: []string{"1", "2", "4", "3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ids(store.Sort(sample(), tt.mode)))
		})
	}
}

// TestSort_DoesNotMutateInput тестирует, что вход не меняется
func TestSort_DoesNotMutateInput(t *testing.T) {
	input := sample()
	_ = store.Sort(input, store.SortMode(task.PriorityHigh))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(input))
}

// TestSort_UnknownPriorityLast тестирует задачи с нераспознанным приоритетом
func TestSort_UnknownPriorityLast(t *testing.T) {
	input := []task.Task{
		{ID: "x", Priority: task.Priority("Urgent")},
		{ID: "l", Priority: task.PriorityLow},
		{ID: "h", Priority: task.PriorityHigh},
	}
	assert.Equal(t, []string{"l", "h", "x"}, ids(store.Sort(input, store.SortMode(task.PriorityLow))))
}

// TestModes_Valid тестирует допустимые значения режимов
func TestModes_Valid(t *testing.T) {
	assert.True(t, store.SortAll.Valid())
	assert.True(t, store.SortMode("Medium").Valid())
	assert.False(t, store.SortMode("Work").Valid())
	assert.False(t, store.SortMode("dueDate").Valid())

	assert.True(t, store.FilterAll.Valid())
	assert.True(t, store.FilterMode("Work").Valid())
	assert.False(t, store.FilterMode("High").Valid())
	assert.False(t, store.FilterMode("completed").Valid())
}

// TestSearch тестирует поиск по названию и описанию
func TestSearch(t *testing.T) {
	assert.Equal(t, []string{"2"}, ids(store.Search(sample(), "MILK")))
	assert.Equal(t, []string{"2"}, ids(store.Search(sample(), "liters")))
	assert.Equal(t, []string{"1", "2", "3", "4"}, ids(store.Search(sample(), "  ")))
	assert.Empty(t, store.Search(sample(), "nothing"))
}

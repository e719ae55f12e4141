package store

import (
	"sort"
	"strings"
	"taskKeeper/internal/models/task"
)

// SortMode - "All" (порядок добавления) или значение приоритета
type SortMode string

// FilterMode - "All" или значение категории
type FilterMode string

const SortAll SortMode = "All"
const FilterAll FilterMode = "All"

func (m SortMode) Valid() bool {
	return m == SortAll || task.Priority(m).Valid()
}

func (m FilterMode) Valid() bool {
	return m == FilterAll || task.Category(m).Valid()
}

// Filter оставляет задачи выбранной категории, сохраняя их порядок
func Filter(tasks []task.Task, mode FilterMode) []task.Task {
	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if mode == FilterAll || t.Category == task.Category(mode) {
			res = append(res, t)
		}
	}
	return res
}

// Sort ставит задачи выбранного приоритета первыми, остальные идут по рангу.
// Ключ (не совпадает, ранг) задаёт полный предпорядок, сортировка стабильная
func Sort(tasks []task.Task, mode SortMode) []task.Task {
	res := make([]task.Task, len(tasks))
	copy(res, tasks)
	if mode == SortAll {
		return res
	}

	selected := task.Priority(mode)
	sort.SliceStable(res, func(i, j int) bool {
		return compareByPriority(res[i], res[j], selected) < 0
	})
	return res
}

func compareByPriority(a, b task.Task, selected task.Priority) int {
	aSelected := a.Priority == selected
	bSelected := b.Priority == selected
	if aSelected && !bSelected {
		return -1
	}
	if !aSelected && bSelected {
		return 1
	}
	switch diff := a.Priority.Rank() - b.Priority.Rank(); {
	case diff < 0:
		return -1
	case diff > 0:
		return 1
	default:
		return 0
	}
}

// Search - поиск подстроки без учёта регистра по названию и описанию
func Search(tasks []task.Task, query string) []task.Task {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		res := make([]task.Task, len(tasks))
		copy(res, tasks)
		return res
	}

	res := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Title), query) ||
			strings.Contains(strings.ToLower(t.Description), query) {
			res = append(res, t)
		}
	}
	return res
}

package task

import (
	"time"
)

// формат хранения дат: ISO-8601 с миллисекундами в UTC
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

var parseLayouts = []string{
	DateLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// SafeParse разбирает строку с датой. Пустая или битая строка даёт nil,
// ошибка наружу не выходит
func SafeParse(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range parseLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t := parsed.UTC().Truncate(time.Millisecond)
			return &t
		}
	}
	return nil
}

// SafeTime нормализует уже разобранную дату: нулевое время считается отсутствующим
func SafeTime(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	res := t.UTC().Truncate(time.Millisecond)
	return &res
}

// FormatDate - обратная операция к SafeParse, nil даёт nil (JSON null)
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(DateLayout)
	return &s
}

// Package models содержит доменные структуры календаря и трекера подписок,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// TaskStatus статус задачи в канбан-смысле.
type TaskStatus string

// Допустимые статусы события.
const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Recurrence повторяемость события. Хранится как метаданные:
// система не разворачивает повторяющиеся экземпляры.
type Recurrence string

// Допустимые значения повторяемости.
const (
	RecurrenceNone    Recurrence = "none"
	RecurrenceDaily   Recurrence = "daily"
	RecurrenceWeekly  Recurrence = "weekly"
	RecurrenceMonthly Recurrence = "monthly"
	RecurrenceYearly  Recurrence = "yearly"
)

// ResourceItem ссылка-вложение. Принадлежит либо одному событию,
// либо глобальному хабу пользователя, но никогда обоим сразу.
type ResourceItem struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
}

// Event основная модель события календаря. Идентификатор может быть
// временным (короткий, сгенерированный локально) или постоянным
// (24-символьный hex, выданный хранилищем). Время хранится как time.Time,
// на HTTP-границе сериализуется в ISO-8601.
type Event struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description,omitempty"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     *time.Time     `json:"endTime,omitempty"`
	Type        string         `json:"type"`
	Department  string         `json:"department"`
	Status      TaskStatus     `json:"status"`
	Recurrence  Recurrence     `json:"recurrence,omitempty"`
	Order       *int           `json:"order,omitempty"`
	MeetLink    string         `json:"meetLink,omitempty"`
	Location    string         `json:"location,omitempty"`
	Attendees   []string       `json:"attendees,omitempty"`
	Resources   []ResourceItem `json:"resources,omitempty"`
	CreatedAt   time.Time      `json:"createdAt,omitempty"`
	UpdatedAt   time.Time      `json:"updatedAt,omitempty"`
}

// Clone возвращает глубокую копию события, включая указатели и срезы.
func (e Event) Clone() Event {
	c := e
	if e.EndTime != nil {
		t := *e.EndTime
		c.EndTime = &t
	}
	if e.Order != nil {
		o := *e.Order
		c.Order = &o
	}
	if e.Attendees != nil {
		c.Attendees = append([]string(nil), e.Attendees...)
	}
	if e.Resources != nil {
		c.Resources = append([]ResourceItem(nil), e.Resources...)
	}
	return c
}

// CloneEvents возвращает глубокую копию списка событий.
// Используется для снимков истории и читающих доступов к стору.
func CloneEvents(events []Event) []Event {
	if events == nil {
		return nil
	}
	out := make([]Event, len(events))
	for i, e := range events {
		out[i] = e.Clone()
	}
	return out
}

// DummyEvent используется для приёма данных создания события из JSON-запроса.
// Времена приходят строками RFC3339, чтобы их можно было валидировать и
// парсить вручную.
type DummyEvent struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description,omitempty"`
	StartTime   string         `json:"startTime" validate:"required"`
	EndTime     string         `json:"endTime,omitempty"`
	Type        string         `json:"type,omitempty"`
	Department  string         `json:"department,omitempty"`
	Status      string         `json:"status,omitempty" validate:"omitempty,oneof=todo in-progress completed"`
	Recurrence  string         `json:"recurrence,omitempty" validate:"omitempty,oneof=none daily weekly monthly yearly"`
	MeetLink    string         `json:"meetLink,omitempty"`
	Location    string         `json:"location,omitempty"`
	Attendees   []string       `json:"attendees,omitempty"`
	Resources   []ResourceItem `json:"resources,omitempty"`
}

// DummyEventUpdate частичное обновление события: заполненные поля
// сливаются в локальную копию, остальные не трогаются.
type DummyEventUpdate struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	StartTime   *string        `json:"startTime,omitempty"`
	EndTime     *string        `json:"endTime,omitempty"`
	Type        *string        `json:"type,omitempty"`
	Department  *string        `json:"department,omitempty"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=todo in-progress completed"`
	Recurrence  *string        `json:"recurrence,omitempty" validate:"omitempty,oneof=none daily weekly monthly yearly"`
	MeetLink    *string        `json:"meetLink,omitempty"`
	Location    *string        `json:"location,omitempty"`
	Attendees   []string       `json:"attendees,omitempty"`
	Resources   []ResourceItem `json:"resources,omitempty"`
}

// DummyReorder запрос ручной пересортировки событий одного дня:
// идентификаторы в новом порядке отображения.
type DummyReorder struct {
	IDs []string `json:"ids" validate:"required,min=1"`
}

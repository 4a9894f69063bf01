// Package store содержит контейнеры состояния сессии пользователя:
// канонический список событий календаря и список подписок.
//
// EventStore — единственный владелец списка событий. Снаружи список
// доступен только через Snapshot (глубокая копия) и именованные точки
// мутации; ни одна другая часть системы не изменяет срез напрямую.
// Подписчики получают уведомления о видах изменений — этим питается
// websocket-рассылка в UI.
package store

import (
	"sync"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// ChangeKind вид изменения состояния стора.
type ChangeKind string

// Виды изменений, о которых уведомляются подписчики.
const (
	ChangeCreated   ChangeKind = "created"
	ChangeUpdated   ChangeKind = "updated"
	ChangeDeleted   ChangeKind = "deleted"
	ChangeReordered ChangeKind = "reordered"
	ChangeConfirmed ChangeKind = "confirmed"
	ChangeRestored  ChangeKind = "restored"
)

// Change уведомление об одном изменении стора.
type Change struct {
	Kind ChangeKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

// Listener получает уведомления об изменениях. Вызывается синхронно
// из-под мутации, поэтому обязан быть быстрым и не трогать стор.
type Listener func(Change)

// EventStore канонический упорядоченный список событий одной сессии.
type EventStore struct {
	mu        sync.RWMutex
	events    []models.Event
	listeners []Listener
}

// NewEventStore создает стор, заполненный начальным списком событий.
func NewEventStore(seed []models.Event) *EventStore {
	return &EventStore{events: models.CloneEvents(seed)}
}

// Subscribe регистрирует слушателя изменений.
func (s *EventStore) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *EventStore) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Snapshot возвращает глубокую копию текущего списка событий.
func (s *EventStore) Snapshot() []models.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneEvents(s.events)
}

// Len возвращает количество событий.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.events)
}

// Find возвращает копию события по идентификатору.
func (s *EventStore) Find(id string) (models.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.ID == id {
			return e.Clone(), true
		}
	}
	return models.Event{}, false
}

// Append добавляет событие в конец списка.
func (s *EventStore) Append(ev models.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev.Clone())
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeCreated, ID: ev.ID})
}

// Replace заменяет событие с данным идентификатором целиком.
// Возвращает false, если события нет — тогда стор не меняется.
func (s *EventStore) Replace(id string, ev models.Event) bool {
	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = ev.Clone()
			s.mu.Unlock()
			s.notify(Change{Kind: ChangeUpdated, ID: ev.ID})
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Remove удаляет событие по идентификатору.
func (s *EventStore) Remove(id string) bool {
	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events = append(s.events[:i], s.events[i+1:]...)
			s.mu.Unlock()
			s.notify(Change{Kind: ChangeDeleted, ID: id})
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// Confirm заменяет временный идентификатор события постоянным из ответа
// хранилища и переносит серверные отметки времени. Остальные поля
// остаются локальными: правка, сделанная между оптимистичной вставкой
// и подтверждением, не должна молча откатываться. Замена идёт строго
// по совпадению id — повторное добавление записи исключено.
func (s *EventStore) Confirm(tempID string, confirmed models.Event) bool {
	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == tempID {
			s.events[i].ID = confirmed.ID
			s.events[i].CreatedAt = confirmed.CreatedAt
			s.events[i].UpdatedAt = confirmed.UpdatedAt
			s.mu.Unlock()
			s.notify(Change{Kind: ChangeConfirmed, ID: confirmed.ID})
			return true
		}
	}
	s.mu.Unlock()
	return false
}

// MergeSubset вливает переупорядоченное подмножество обратно в основной
// список по совпадению идентификаторов. События, не найденные в сторе,
// игнорируются.
func (s *EventStore) MergeSubset(subset []models.Event) {
	s.mu.Lock()
	for _, re := range subset {
		for i := range s.events {
			if s.events[i].ID == re.ID {
				s.events[i] = re.Clone()
				break
			}
		}
	}
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeReordered})
}

// Restore заменяет весь список снимком из истории.
func (s *EventStore) Restore(snapshot []models.Event) {
	s.mu.Lock()
	s.events = models.CloneEvents(snapshot)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeRestored})
}

package store

import (
	"sync"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// SubscriptionStore список подписок одной сессии. Истории правок у
// подписок нет, поэтому контейнер проще EventStore: снимок, вставка,
// удаление и подтверждение идентификатора.
type SubscriptionStore struct {
	mu        sync.RWMutex
	subs      []models.Subscription
	listeners []Listener
}

// NewSubscriptionStore создает стор, заполненный начальным списком.
func NewSubscriptionStore(seed []models.Subscription) *SubscriptionStore {
	return &SubscriptionStore{subs: append([]models.Subscription(nil), seed...)}
}

// Subscribe регистрирует слушателя изменений.
func (s *SubscriptionStore) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *SubscriptionStore) notify(c Change) {
	for _, fn := range s.listeners {
		fn(c)
	}
}

// Snapshot возвращает копию текущего списка подписок.
func (s *SubscriptionStore) Snapshot() []models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Subscription, len(s.subs))
	copy(out, s.subs)
	for i := range out {
		if out[i].EndDate != nil {
			t := *out[i].EndDate
			out[i].EndDate = &t
		}
	}
	return out
}

// Append добавляет подписку в конец списка.
func (s *SubscriptionStore) Append(sub models.Subscription) {
	s.mu.Lock()
	s.subs = append(s.subs, sub)
	s.mu.Unlock()
	s.notify(Change{Kind: ChangeCreated, ID: sub.ID})
}

// Remove удаляет подписку и возвращает удалённую запись —
// она нужна для отката при неудачном удалении на сервере.
func (s *SubscriptionStore) Remove(id string) (models.Subscription, bool) {
	s.mu.Lock()
	for i := range s.subs {
		if s.subs[i].ID == id {
			removed := s.subs[i]
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			s.mu.Unlock()
			s.notify(Change{Kind: ChangeDeleted, ID: id})
			return removed, true
		}
	}
	s.mu.Unlock()
	return models.Subscription{}, false
}

// Confirm заменяет временный идентификатор постоянным из ответа
// хранилища вместе с серверными отметками времени.
func (s *SubscriptionStore) Confirm(tempID string, confirmed models.Subscription) bool {
	s.mu.Lock()
	for i := range s.subs {
		if s.subs[i].ID == tempID {
			s.subs[i].ID = confirmed.ID
			s.subs[i].CreatedAt = confirmed.CreatedAt
			s.subs[i].UpdatedAt = confirmed.UpdatedAt
			s.mu.Unlock()
			s.notify(Change{Kind: ChangeConfirmed, ID: confirmed.ID})
			return true
		}
	}
	s.mu.Unlock()
	return false
}

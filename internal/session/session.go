// Package session держит рабочее состояние пользователя в памяти
// процесса: события, подписки и историю изменений. Состояние
// поднимается из хранилища один раз при первом обращении и дальше
// живёт в памяти, обновления уходят в хранилище асинхронно.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/realaashishly/korixen-cal/internal/history"
	"github.com/realaashishly/korixen-cal/internal/models"
	"github.com/realaashishly/korixen-cal/internal/store"
)

// Loader поднимает начальное состояние пользователя из хранилища.
type Loader interface {
	ListEvents(ctx context.Context, userUID string) ([]models.Event, error)
	ListSubscriptions(ctx context.Context, userUID string) ([]models.Subscription, error)
}

// Session рабочее состояние одного пользователя.
type Session struct {
	UserUID       string
	Events        *store.EventStore
	Subscriptions *store.SubscriptionStore
	History       *history.Manager
}

// Manager раздаёт сессии по UID пользователя, гарантируя, что каждая
// поднимается из хранилища ровно один раз.
type Manager struct {
	loader   Loader
	onCreate func(*Session)

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager создаёт менеджер сессий поверх загрузчика состояния.
func NewManager(loader Loader) *Manager {
	return &Manager{
		loader:   loader,
		sessions: make(map[string]*Session),
	}
}

// OnCreate регистрирует колбэк, вызываемый после поднятия каждой новой
// сессии. Через него навешиваются слушатели изменений сторов.
// Должен быть выставлен до первого обращения за сессией.
func (m *Manager) OnCreate(fn func(*Session)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onCreate = fn
}

// Session возвращает сессию пользователя, при первом обращении
// поднимая её из хранилища.
func (m *Manager) Session(ctx context.Context, userUID string) (*Session, error) {
	const op = "session.Manager.Session"

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[userUID]; ok {
		return s, nil
	}

	events, err := m.loader.ListEvents(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	subs, err := m.loader.ListSubscriptions(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := &Session{
		UserUID:       userUID,
		Events:        store.NewEventStore(events),
		Subscriptions: store.NewSubscriptionStore(subs),
		History:       history.NewManager(),
	}
	if m.onCreate != nil {
		m.onCreate(s)
	}
	m.sessions[userUID] = s
	return s, nil
}

// Drop выбрасывает сессию из памяти; следующее обращение поднимет
// свежее состояние из хранилища.
func (m *Manager) Drop(userUID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userUID)
}

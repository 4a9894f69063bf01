// Package event содержит бизнес-логику календаря: оптимистичные
// мутации событий, откат и повтор, проекции день/неделя/канбан.
// Мутация применяется к состоянию в памяти сразу, запись в хранилище
// уходит в фоне; события с временным ID в хранилище не трогаются.
package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
	"github.com/realaashishly/korixen-cal/internal/session"
	"github.com/realaashishly/korixen-cal/internal/views"
)

// ErrNotFound возвращается, когда событие с данным ID отсутствует
// в состоянии пользователя.
var ErrNotFound = errors.New("event not found")

// ErrMixedDays возвращается, когда в ручной перестановке участвуют
// события из разных календарных дней.
var ErrMixedDays = errors.New("reorder spans multiple days")

// Repository определяет методы для работы с событиями в хранилище.
type Repository interface {
	// CreateEvent сохраняет событие и возвращает его с постоянным ID
	// и отметками времени хранилища.
	CreateEvent(ctx context.Context, userUID string, ev models.Event) (models.Event, error)
	// UpdateEvent перезаписывает событие по ID.
	UpdateEvent(ctx context.Context, userUID string, ev models.Event) error
	// DeleteEvent удаляет событие по ID.
	DeleteEvent(ctx context.Context, userUID, id string) error
	// UpdateEventPlacement сохраняет порядок, время и статус пачки событий.
	UpdateEventPlacement(ctx context.Context, userUID string, events []models.Event) error
}

// AssetsProvider отдаёт настройки пользователя, нужные проекциям.
type AssetsProvider interface {
	UserAssets(ctx context.Context, userUID string) (models.UserAssets, error)
}

// Service реализует операции календаря поверх сессий пользователей.
type Service struct {
	sessions *session.Manager
	repo     Repository
	assets   AssetsProvider
	log      *slog.Logger

	pending sync.WaitGroup
}

// New создает новый экземпляр Service.
func New(sessions *session.Manager, repo Repository, assets AssetsProvider, log *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		repo:     repo,
		assets:   assets,
		log:      log,
	}
}

// Flush дожидается завершения всех фоновых записей в хранилище.
func (s *Service) Flush() {
	s.pending.Wait()
}

// List возвращает снимок всех событий пользователя, при необходимости
// отфильтрованный по отделу и статусу.
func (s *Service) List(ctx context.Context, userUID, roleFilter, statusFilter string) ([]models.Event, error) {
	const op = "services.event.List"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if roleFilter == "" {
		roleFilter = views.RoleFilterAll
	}
	if statusFilter == "" {
		statusFilter = views.StatusFilterAll
	}
	return views.Filter(sess.Events.Snapshot(), roleFilter, statusFilter), nil
}

// Create добавляет событие с временным ID, сразу возвращает его
// вызывающему и в фоне сохраняет в хранилище. После подтверждения
// временный ID заменяется на постоянный, локальные правки при этом
// не теряются.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummyEvent) (models.Event, error) {
	const op = "services.event.Create"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: invalid start time: %w", op, err)
	}
	var endTime *time.Time
	if req.EndTime != "" {
		t, err := time.Parse(time.RFC3339, req.EndTime)
		if err != nil {
			return models.Event{}, fmt.Errorf("%s: invalid end time: %w", op, err)
		}
		endTime = &t
	}

	sess.History.Record(sess.Events.Snapshot())

	now := time.Now().UTC()
	ev := models.Event{
		ID:          ids.NewTemp(),
		Title:       req.Title,
		Description: req.Description,
		StartTime:   startTime,
		EndTime:     endTime,
		Type:        req.Type,
		Department:  req.Department,
		Status:      models.TaskStatus(req.Status),
		Recurrence:  models.Recurrence(req.Recurrence),
		MeetLink:    req.MeetLink,
		Location:    req.Location,
		Attendees:   req.Attendees,
		Resources:   req.Resources,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if ev.Status == "" {
		ev.Status = models.StatusTodo
	}
	if ev.Recurrence == "" {
		ev.Recurrence = models.RecurrenceNone
	}
	if ev.Type == "" {
		ev.Type = "task"
	}
	if ev.Department == "" {
		ev.Department = models.DepartmentGeneral
	}
	sess.Events.Append(ev)

	s.persist(func(ctx context.Context) {
		confirmed, err := s.repo.CreateEvent(ctx, userUID, ev)
		if err != nil {
			s.log.Error("failed to save event", sl.Err(err),
				slog.String("user_uid", userUID), slog.String("temp_id", ev.ID))
			return
		}
		sess.Events.Confirm(ev.ID, confirmed)
	})

	return ev, nil
}

// Update частично обновляет событие. Правка события с временным ID
// применяется только в памяти: она доедет до хранилища вместе
// с подтверждением создания, раз подтверждение меняет лишь ID.
func (s *Service) Update(ctx context.Context, userUID, id string, req models.DummyEventUpdate) (models.Event, error) {
	const op = "services.event.Update"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	current, ok := sess.Events.Find(id)
	if !ok {
		return models.Event{}, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	updated, err := merge(current, req)
	if err != nil {
		return models.Event{}, fmt.Errorf("%s: %w", op, err)
	}

	sess.History.Record(sess.Events.Snapshot())
	updated.UpdatedAt = time.Now().UTC()
	sess.Events.Replace(id, updated)

	if !ids.IsTemporary(id) {
		s.persist(func(ctx context.Context) {
			if err := s.repo.UpdateEvent(ctx, userUID, updated); err != nil {
				s.log.Error("failed to update event", sl.Err(err),
					slog.String("user_uid", userUID), slog.String("event_id", id))
			}
		})
	}

	return updated, nil
}

// Delete удаляет событие из памяти и, если ID постоянный, из
// хранилища.
func (s *Service) Delete(ctx context.Context, userUID, id string) error {
	const op = "services.event.Delete"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := sess.Events.Find(id); !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	sess.History.Record(sess.Events.Snapshot())
	sess.Events.Remove(id)

	if !ids.IsTemporary(id) {
		s.persist(func(ctx context.Context) {
			if err := s.repo.DeleteEvent(ctx, userUID, id); err != nil {
				s.log.Error("failed to delete event", sl.Err(err),
					slog.String("user_uid", userUID), slog.String("event_id", id))
			}
		})
	}

	return nil
}

// Reorder принимает упорядоченный список ID и присваивает каждому
// событию порядковый номер, равный позиции в списке. Неизвестные ID
// игнорируются, события из разных дней не принимаются. Вся
// перестановка занимает один шаг истории, в хранилище уходят только
// события с постоянными ID.
func (s *Service) Reorder(ctx context.Context, userUID string, orderedIDs []string) ([]models.Event, error) {
	const op = "services.event.Reorder"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	subset := make([]models.Event, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		ev, ok := sess.Events.Find(id)
		if !ok {
			continue
		}
		subset = append(subset, ev)
	}
	for i := 1; i < len(subset); i++ {
		if !views.SameDay(subset[i].StartTime, subset[0].StartTime) {
			return nil, fmt.Errorf("%s: %w", op, ErrMixedDays)
		}
	}

	sess.History.Record(sess.Events.Snapshot())

	now := time.Now().UTC()
	for i := range subset {
		order := i
		subset[i].Order = &order
		subset[i].UpdatedAt = now
	}
	sess.Events.MergeSubset(subset)

	durable := make([]models.Event, 0, len(subset))
	for _, ev := range subset {
		if !ids.IsTemporary(ev.ID) {
			durable = append(durable, ev)
		}
	}
	if len(durable) > 0 {
		s.persist(func(ctx context.Context) {
			if err := s.repo.UpdateEventPlacement(ctx, userUID, durable); err != nil {
				s.log.Error("failed to save event placement", sl.Err(err),
					slog.String("user_uid", userUID), slog.Int("count", len(durable)))
			}
		})
	}

	return sess.Events.Snapshot(), nil
}

// Undo откатывает последнюю мутацию. Возвращает false, когда история
// пуста. Откат действует только на состояние в памяти.
func (s *Service) Undo(ctx context.Context, userUID string) ([]models.Event, bool, error) {
	const op = "services.event.Undo"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	snapshot, ok := sess.History.Undo(sess.Events.Snapshot())
	if !ok {
		return sess.Events.Snapshot(), false, nil
	}
	sess.Events.Restore(snapshot)
	return sess.Events.Snapshot(), true, nil
}

// Redo повторяет откаченную мутацию, шаги возвращаются в порядке
// отката.
func (s *Service) Redo(ctx context.Context, userUID string) ([]models.Event, bool, error) {
	const op = "services.event.Redo"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	snapshot, ok := sess.History.Redo(sess.Events.Snapshot())
	if !ok {
		return sess.Events.Snapshot(), false, nil
	}
	sess.Events.Restore(snapshot)
	return sess.Events.Snapshot(), true, nil
}

// Day возвращает события выбранного дня в порядке показа.
func (s *Service) Day(ctx context.Context, userUID string, date time.Time) ([]models.Event, error) {
	const op = "services.event.Day"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.Day(sess.Events.Snapshot(), date), nil
}

// Week возвращает семь дневных корзин недели, начинающейся
// с понедельника.
func (s *Service) Week(ctx context.Context, userUID string, ref time.Time) ([]views.DayBucket, error) {
	const op = "services.event.Week"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.Week(sess.Events.Snapshot(), ref), nil
}

// Kanban возвращает канбан-доску с колонкой на каждый отдел из
// настроек пользователя, включая пустые.
func (s *Service) Kanban(ctx context.Context, userUID string) ([]views.Column, error) {
	const op = "services.event.Kanban"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	assets, err := s.assets.UserAssets(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return views.Kanban(sess.Events.Snapshot(), assets.Departments), nil
}

// persist выполняет запись в хранилище в фоне с собственным
// таймаутом, не привязанным к времени жизни HTTP-запроса.
func (s *Service) persist(fn func(ctx context.Context)) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		fn(ctx)
	}()
}

func merge(current models.Event, req models.DummyEventUpdate) (models.Event, error) {
	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.StartTime != nil {
		t, err := time.Parse(time.RFC3339, *req.StartTime)
		if err != nil {
			return models.Event{}, fmt.Errorf("invalid start time: %w", err)
		}
		current.StartTime = t
	}
	if req.EndTime != nil {
		if *req.EndTime == "" {
			current.EndTime = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.EndTime)
			if err != nil {
				return models.Event{}, fmt.Errorf("invalid end time: %w", err)
			}
			current.EndTime = &t
		}
	}
	if req.Type != nil {
		current.Type = *req.Type
	}
	if req.Department != nil {
		current.Department = *req.Department
	}
	if req.Status != nil {
		current.Status = models.TaskStatus(*req.Status)
	}
	if req.Recurrence != nil {
		current.Recurrence = models.Recurrence(*req.Recurrence)
	}
	if req.MeetLink != nil {
		current.MeetLink = *req.MeetLink
	}
	if req.Location != nil {
		current.Location = *req.Location
	}
	if req.Attendees != nil {
		current.Attendees = req.Attendees
	}
	if req.Resources != nil {
		current.Resources = req.Resources
	}
	return current, nil
}

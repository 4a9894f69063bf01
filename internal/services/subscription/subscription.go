// Package subscription содержит бизнес-логику трекера регулярных
// расходов: оптимистичные создание и удаление подписок и сводку
// расходов с кешированием. В отличие от календаря, неудачная запись
// подписки в хранилище откатывает оптимистичное изменение: суммы
// на дашборде не должны врать.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/realaashishly/korixen-cal/internal/billing"
	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
	"github.com/realaashishly/korixen-cal/internal/session"
)

// ErrNotFound возвращается, когда подписка с данным ID отсутствует.
var ErrNotFound = errors.New("subscription not found")

const summaryTTL = 15 * time.Minute

// Repository определяет методы для работы с подписками в хранилище.
type Repository interface {
	// CreateSubscription сохраняет подписку и возвращает её
	// с постоянным ID.
	CreateSubscription(ctx context.Context, userUID string, sub models.Subscription) (models.Subscription, error)
	// DeleteSubscription удаляет подписку по ID.
	DeleteSubscription(ctx context.Context, userUID, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Service реализует операции трекера подписок поверх сессий
// пользователей.
type Service struct {
	sessions *session.Manager
	repo     Repository
	cache    Cache
	log      *slog.Logger

	pending sync.WaitGroup
}

// New создает новый экземпляр Service.
func New(sessions *session.Manager, repo Repository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		sessions: sessions,
		repo:     repo,
		cache:    cache,
		log:      log,
	}
}

// Flush дожидается завершения всех фоновых записей в хранилище.
func (s *Service) Flush() {
	s.pending.Wait()
}

// List возвращает снимок подписок пользователя.
func (s *Service) List(ctx context.Context, userUID string) ([]models.Subscription, error) {
	const op = "services.subscription.List"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return sess.Subscriptions.Snapshot(), nil
}

// Create добавляет подписку с временным ID и в фоне сохраняет её
// в хранилище. Если запись не удалась, оптимистичная подписка
// убирается из состояния.
func (s *Service) Create(ctx context.Context, userUID string, req models.DummySubscription) (models.Subscription, error) {
	const op = "services.subscription.Create"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: invalid start date: %w", op, err)
	}
	var endDate *time.Time
	if req.EndDate != "" {
		t, err := time.Parse("2006-01-02", req.EndDate)
		if err != nil {
			return models.Subscription{}, fmt.Errorf("%s: invalid end date: %w", op, err)
		}
		if t.Before(startDate) {
			return models.Subscription{}, fmt.Errorf("%s: end date must not be earlier than start date", op)
		}
		endDate = &t
	}

	now := time.Now().UTC()
	sub := models.Subscription{
		ID:           ids.NewTemp(),
		Name:         req.Name,
		Price:        decimal.NewFromFloat(req.Price),
		Currency:     req.Currency,
		BillingCycle: models.BillingCycle(req.BillingCycle),
		StartDate:    startDate,
		EndDate:      endDate,
		Link:         req.Link,
		Type:         models.SubscriptionType(req.Type),
		IsActive:     true,
		Color:        req.Color,
		Icon:         req.Icon,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if sub.Currency == "" {
		sub.Currency = "USD"
	}
	sess.Subscriptions.Append(sub)
	s.invalidateSummary(userUID)

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		confirmed, err := s.repo.CreateSubscription(ctx, userUID, sub)
		if err != nil {
			s.log.Error("failed to save subscription, rolling back", sl.Err(err),
				slog.String("user_uid", userUID), slog.String("temp_id", sub.ID))
			sess.Subscriptions.Remove(sub.ID)
			s.invalidateSummary(userUID)
			return
		}
		sess.Subscriptions.Confirm(sub.ID, confirmed)
	}()

	return sub, nil
}

// Delete убирает подписку из состояния и удаляет её из хранилища.
// Если удаление не удалось, подписка возвращается обратно.
func (s *Service) Delete(ctx context.Context, userUID, id string) error {
	const op = "services.subscription.Delete"

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	removed, ok := sess.Subscriptions.Remove(id)
	if !ok {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	s.invalidateSummary(userUID)

	if ids.IsTemporary(id) {
		return nil
	}

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.repo.DeleteSubscription(ctx, userUID, id); err != nil {
			s.log.Error("failed to delete subscription, rolling back", sl.Err(err),
				slog.String("user_uid", userUID), slog.String("subscription_id", id))
			sess.Subscriptions.Append(removed)
			s.invalidateSummary(userUID)
		}
	}()

	return nil
}

// Summary возвращает сводку расходов пользователя на дату today.
// Результат кешируется до конца дня или до следующей мутации.
func (s *Service) Summary(ctx context.Context, userUID string, today time.Time) (models.SubscriptionSummary, error) {
	const op = "services.subscription.Summary"

	key := summaryKey(userUID, today)

	var cached models.SubscriptionSummary
	found, err := s.cache.Get(key, &cached)
	if err != nil {
		s.log.Warn("failed to read summary from cache", sl.Err(err))
	}
	if found {
		return cached, nil
	}

	sess, err := s.sessions.Session(ctx, userUID)
	if err != nil {
		return models.SubscriptionSummary{}, fmt.Errorf("%s: %w", op, err)
	}

	summary := billing.Summary(sess.Subscriptions.Snapshot(), today)
	if err := s.cache.Set(key, summary, summaryTTL); err != nil {
		s.log.Warn("failed to cache summary", sl.Err(err))
	}
	return summary, nil
}

func (s *Service) invalidateSummary(userUID string) {
	if err := s.cache.Invalidate(summaryKey(userUID, time.Now().UTC())); err != nil {
		s.log.Warn("failed to invalidate summary cache", sl.Err(err))
	}
}

func summaryKey(userUID string, today time.Time) string {
	return fmt.Sprintf("summary:%s:%s", userUID, today.Format("2006-01-02"))
}

package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/models"
	"github.com/realaashishly/korixen-cal/internal/session"
)

type mockRepo struct {
	mu        sync.Mutex
	created   []models.Subscription
	deleted   []string
	createErr error
	deleteErr error
}

func (m *mockRepo) CreateSubscription(_ context.Context, _ string, sub models.Subscription) (models.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return models.Subscription{}, m.createErr
	}
	confirmed := sub
	confirmed.ID = ids.NewDurable()
	m.created = append(m.created, confirmed)
	return confirmed, nil
}

func (m *mockRepo) DeleteSubscription(_ context.Context, _, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deleted = append(m.deleted, id)
	return nil
}

type noopCache struct{}

func (noopCache) Get(string, any) (bool, error)        { return false, nil }
func (noopCache) Set(string, any, time.Duration) error { return nil }
func (noopCache) Invalidate(string) error              { return nil }

type seededLoader struct {
	subs []models.Subscription
}

func (seededLoader) ListEvents(context.Context, string) ([]models.Event, error) { return nil, nil }
func (l seededLoader) ListSubscriptions(context.Context, string) ([]models.Subscription, error) {
	return l.subs, nil
}

func newService(repo *mockRepo, seed []models.Subscription) *Service {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(session.NewManager(seededLoader{subs: seed}), repo, noopCache{}, log)
}

func createReq(name string, price float64) models.DummySubscription {
	return models.DummySubscription{
		Name:         name,
		Price:        price,
		BillingCycle: "monthly",
		StartDate:    "2024-01-15",
		Type:         "software",
	}
}

func TestCreate_OptimisticThenConfirmed(t *testing.T) {
	repo := &mockRepo{}
	svc := newService(repo, nil)
	ctx := context.Background()

	sub, err := svc.Create(ctx, "u1", createReq("netflix", 15.49))
	require.NoError(t, err)
	assert.True(t, ids.IsTemporary(sub.ID))
	assert.True(t, sub.IsActive)
	assert.Equal(t, "USD", sub.Currency)

	svc.Flush()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, ids.IsTemporary(list[0].ID))
}

func TestCreate_RemoteFailureRollsBack(t *testing.T) {
	repo := &mockRepo{createErr: errors.New("storage down")}
	svc := newService(repo, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, "u1", createReq("netflix", 15.49))
	require.NoError(t, err)

	svc.Flush()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, list, "неудачное сохранение убирает оптимистичную подписку")
}

func TestCreate_InvalidDates(t *testing.T) {
	svc := newService(&mockRepo{}, nil)

	req := createReq("netflix", 15.49)
	req.StartDate = "15-01-2024"
	_, err := svc.Create(context.Background(), "u1", req)
	assert.Error(t, err)

	req = createReq("netflix", 15.49)
	req.EndDate = "2023-12-01"
	_, err = svc.Create(context.Background(), "u1", req)
	assert.Error(t, err, "дата окончания раньше даты старта")
}

func TestDelete_RemoteFailureRestores(t *testing.T) {
	seed := []models.Subscription{{
		ID:           "65f1a2b3c4d5e6f7a8b9c0d1",
		Name:         "netflix",
		Price:        decimal.NewFromFloat(15.49),
		BillingCycle: models.CycleMonthly,
		StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		IsActive:     true,
	}}
	repo := &mockRepo{deleteErr: errors.New("storage down")}
	svc := newService(repo, seed)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "u1", seed[0].ID))
	svc.Flush()

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1, "неудачное удаление возвращает подписку")
	assert.Equal(t, seed[0].ID, list[0].ID)
}

func TestDelete_TempIDSkipsRemote(t *testing.T) {
	repo := &mockRepo{createErr: errors.New("storage down")}
	svc := newService(repo, nil)
	ctx := context.Background()

	sub, err := svc.Create(ctx, "u1", createReq("netflix", 15.49))
	require.NoError(t, err)

	// удаление до подтверждения: хранилище не трогаем
	err = svc.Delete(ctx, "u1", sub.ID)
	if err != nil {
		// фоновый откат мог успеть убрать подписку сам
		assert.ErrorIs(t, err, ErrNotFound)
	}
	svc.Flush()
	assert.Empty(t, repo.deleted)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(&mockRepo{}, nil)
	err := svc.Delete(context.Background(), "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSummary(t *testing.T) {
	seed := []models.Subscription{
		{
			ID:           "65f1a2b3c4d5e6f7a8b9c0d1",
			Name:         "netflix",
			Price:        decimal.NewFromInt(15),
			BillingCycle: models.CycleMonthly,
			StartDate:    time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
			IsActive:     true,
		},
		{
			ID:           "65f1a2b3c4d5e6f7a8b9c0d2",
			Name:         "jetbrains",
			Price:        decimal.NewFromInt(120),
			BillingCycle: models.CycleYearly,
			StartDate:    time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC),
			IsActive:     true,
		},
	}
	svc := newService(&mockRepo{}, seed)

	summary, err := svc.Summary(context.Background(), "u1", time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, summary.TotalMonthly.Equal(decimal.NewFromInt(25)), "got %s", summary.TotalMonthly)
	assert.True(t, summary.TotalYearly.Equal(decimal.NewFromInt(300)))
	require.Len(t, summary.Upcoming, 2)
	assert.Equal(t, "netflix", summary.Upcoming[0].Name)
	assert.Equal(t, time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC), summary.Upcoming[0].NextPaymentDate)
	assert.Equal(t, "jetbrains", summary.Upcoming[1].Name)
}

package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/migrations"
)

// setupTestDatabase поднимает PostgreSQL в контейнере, применяет
// миграции и возвращает готовое хранилище.
func setupTestDatabase(t *testing.T) (*Storage, func()) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForAll(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2),
				wait.ForListeningPort(nat.Port("5432/tcp")),
			).WithStartupTimeoutDefault(time.Minute),
		),
	)
	require.NoError(t, err, "failed to start container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	var storage *Storage
	for attempt := 0; attempt < 10; attempt++ {
		storage, err = New(dsn)
		if err == nil {
			break
		}
		time.Sleep(time.Second)
	}
	require.NoError(t, err, "failed to create storage after retries")

	migrationsPath, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, migrations.Run(storage.DB, migrationsPath))

	cleanup := func() {
		_ = storage.DB.Close()
		_ = pgContainer.Terminate(ctx)
	}
	return storage, cleanup
}

// TestDataFactory содержит методы для создания тестовых данных.
type TestDataFactory struct {
	storage *Storage
}

// NewTestDataFactory создает новую фабрику тестовых данных.
func NewTestDataFactory(storage *Storage) *TestDataFactory {
	return &TestDataFactory{storage: storage}
}

// CreateUser создает тестового пользователя и возвращает его UID.
func (f *TestDataFactory) CreateUser(t *testing.T, username, email string) string {
	var uid string
	err := f.storage.DB.QueryRow(`INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4) RETURNING uid`,
		username, email, "hashedpassword", "user").Scan(&uid)
	require.NoError(t, err)
	return uid
}

// CreateEvent создает тестовое событие и возвращает его ID.
func (f *TestDataFactory) CreateEvent(t *testing.T, userUID, title string, startTime time.Time) string {
	id := ids.NewDurable()
	_, err := f.storage.DB.Exec(`INSERT INTO events (id, user_uid, title, start_time)
		VALUES ($1, $2, $3, $4)`,
		id, userUID, title, startTime)
	require.NoError(t, err)
	return id
}

// CreateSubscription создает тестовую подписку и возвращает её ID.
func (f *TestDataFactory) CreateSubscription(t *testing.T, userUID, name string, price decimal.Decimal,
	cycle string, startDate time.Time, isActive bool) string {
	id := ids.NewDurable()
	_, err := f.storage.DB.Exec(`INSERT INTO subscriptions
		(id, user_uid, name, price, billing_cycle, start_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, userUID, name, price, cycle, startDate, isActive)
	require.NoError(t, err)
	return id
}

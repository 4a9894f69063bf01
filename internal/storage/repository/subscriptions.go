package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// ListSubscriptions возвращает все подписки пользователя.
func (s *Storage) ListSubscriptions(ctx context.Context, userUID string) ([]models.Subscription, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, price, currency, billing_cycle, start_date, end_date,
			      link, sub_type, is_active, color, icon, created_at, updated_at
			  FROM subscriptions WHERE user_uid = $1
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.Subscription
	for rows.Next() {
		var (
			sub     models.Subscription
			endDate sql.NullTime
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Price, &sub.Currency, &sub.BillingCycle,
			&sub.StartDate, &endDate, &sub.Link, &sub.Type, &sub.IsActive,
			&sub.Color, &sub.Icon, &sub.CreatedAt, &sub.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sub.ID = strings.TrimRight(sub.ID, " ")
		if endDate.Valid {
			t := endDate.Time
			sub.EndDate = &t
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

// CreateSubscription сохраняет подписку под свежим постоянным ID.
func (s *Storage) CreateSubscription(ctx context.Context, userUID string, sub models.Subscription) (models.Subscription, error) {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return models.Subscription{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stored := sub
	stored.ID = ids.NewDurable()

	query := `INSERT INTO subscriptions (id, user_uid, name, price, currency, billing_cycle,
			      start_date, end_date, link, sub_type, is_active, color, icon)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
			  RETURNING created_at, updated_at`
	err := s.DB.QueryRowContext(ctx, query,
		stored.ID, userUID, sub.Name, sub.Price, sub.Currency, sub.BillingCycle,
		sub.StartDate, sub.EndDate, sub.Link, sub.Type, sub.IsActive,
		sub.Color, sub.Icon).Scan(&stored.CreatedAt, &stored.UpdatedAt)
	if err != nil {
		return models.Subscription{}, fmt.Errorf("%s: %w", op, err)
	}
	return stored, nil
}

// DeleteSubscription удаляет подписку по ID.
func (s *Storage) DeleteSubscription(ctx context.Context, userUID, id string) error {
	const op = "storage.DeleteSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions WHERE id = $1 AND user_uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, id, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ListActiveSubscriptionsWithUsers возвращает активные подписки всех
// пользователей вместе с контактами владельцев. Используется
// планировщиком напоминаний.
func (s *Storage) ListActiveSubscriptionsWithUsers(ctx context.Context) ([]models.SubscriptionWithUser, error) {
	const op = "storage.ListActiveSubscriptionsWithUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT s.id, s.name, s.price, s.currency, s.billing_cycle, s.start_date,
			      s.end_date, s.is_active, s.user_uid, u.email, u.username
			  FROM subscriptions s
			  JOIN users u ON u.uid = s.user_uid
			  WHERE s.is_active = TRUE`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = rows.Close() }()

	var out []models.SubscriptionWithUser
	for rows.Next() {
		var (
			sub     models.SubscriptionWithUser
			endDate sql.NullTime
		)
		if err := rows.Scan(&sub.ID, &sub.Name, &sub.Price, &sub.Currency, &sub.BillingCycle,
			&sub.StartDate, &endDate, &sub.IsActive, &sub.UserUID, &sub.Email, &sub.Username); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sub.ID = strings.TrimRight(sub.ID, " ")
		if endDate.Valid {
			t := endDate.Time
			sub.EndDate = &t
		}
		out = append(out, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

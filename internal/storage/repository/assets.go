package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// GetUserAssets возвращает справочники пользователя. Если строка ещё
// не заведена, возвращаются дефолтные справочники.
func (s *Storage) GetUserAssets(ctx context.Context, userUID string) (models.UserAssets, error) {
	const op = "storage.GetUserAssets"
	select {
	case <-ctx.Done():
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT departments, event_types, resource_categories, resources
			  FROM user_assets WHERE user_uid = $1`
	var departments, eventTypes, categories, resources []byte
	err := s.DB.QueryRowContext(ctx, query, userUID).Scan(&departments, &eventTypes, &categories, &resources)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DefaultUserAssets(), nil
	}
	if err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}

	var assets models.UserAssets
	if err := json.Unmarshal(departments, &assets.Departments); err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(eventTypes, &assets.EventTypes); err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(categories, &assets.ResourceCategories); err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := json.Unmarshal(resources, &assets.Resources); err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	return assets, nil
}

// SaveUserAssets сохраняет справочники пользователя целиком.
func (s *Storage) SaveUserAssets(ctx context.Context, userUID string, assets models.UserAssets) error {
	const op = "storage.SaveUserAssets"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	departments, err := json.Marshal(assets.Departments)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	eventTypes, err := json.Marshal(assets.EventTypes)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	categories, err := json.Marshal(assets.ResourceCategories)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	resources, err := json.Marshal(assets.Resources)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	query := `INSERT INTO user_assets (user_uid, departments, event_types, resource_categories, resources)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (user_uid) DO UPDATE
			  SET departments = EXCLUDED.departments,
			      event_types = EXCLUDED.event_types,
			      resource_categories = EXCLUDED.resource_categories,
			      resources = EXCLUDED.resources,
			      updated_at = now()`
	if _, err := s.DB.ExecContext(ctx, query, userUID, departments, eventTypes, categories, resources); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

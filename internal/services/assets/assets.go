// Package assets содержит бизнес-логику пользовательских справочников:
// отделы, типы событий, категории ресурсов и глобальный хаб ссылок.
package assets

import (
	"context"
	"fmt"

	"github.com/realaashishly/korixen-cal/internal/lib/ids"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Repository определяет методы для работы со справочниками в хранилище.
type Repository interface {
	GetUserAssets(ctx context.Context, userUID string) (models.UserAssets, error)
	SaveUserAssets(ctx context.Context, userUID string, assets models.UserAssets) error
}

// Service реализует чтение и частичное обновление справочников.
type Service struct {
	repo Repository
}

// New создает новый экземпляр Service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// UserAssets возвращает справочники пользователя.
func (s *Service) UserAssets(ctx context.Context, userUID string) (models.UserAssets, error) {
	const op = "services.assets.UserAssets"

	assets, err := s.repo.GetUserAssets(ctx, userUID)
	if err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	return assets, nil
}

// Update частично обновляет справочники: nil-срез в запросе оставляет
// список нетронутым, пустой срез очищает его. Новым ресурсам без ID
// выдаётся постоянный идентификатор.
func (s *Service) Update(ctx context.Context, userUID string, req models.DummyUserAssets) (models.UserAssets, error) {
	const op = "services.assets.Update"

	assets, err := s.repo.GetUserAssets(ctx, userUID)
	if err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}

	if req.Departments != nil {
		assets.Departments = req.Departments
	}
	if req.EventTypes != nil {
		assets.EventTypes = req.EventTypes
	}
	if req.ResourceCategories != nil {
		assets.ResourceCategories = req.ResourceCategories
	}
	if req.Resources != nil {
		for i := range req.Resources {
			if req.Resources[i].ID == "" {
				req.Resources[i].ID = ids.NewDurable()
			}
		}
		assets.Resources = req.Resources
	}

	if err := s.repo.SaveUserAssets(ctx, userUID, assets); err != nil {
		return models.UserAssets{}, fmt.Errorf("%s: %w", op, err)
	}
	return assets, nil
}

// Package reminder находит подписки, у которых завтра дата списания,
// и публикует напоминания в очередь. Запускается планировщиком
// по cron-расписанию.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/realaashishly/korixen-cal/internal/billing"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
	"github.com/realaashishly/korixen-cal/internal/rabbitmq"
)

// Repository определяет методы планировщика для чтения подписок.
type Repository interface {
	// ListActiveSubscriptionsWithUsers возвращает все активные подписки
	// вместе с контактами владельцев.
	ListActiveSubscriptionsWithUsers(ctx context.Context) ([]models.SubscriptionWithUser, error)
}

// Service реализует разовый проход планировщика напоминаний.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
	}
}

// Run выполняет один проход: собирает напоминания на завтра
// и публикует каждое в exchange reminders.
func (s *Service) Run(ctx context.Context, channel *amqp.Channel) {
	s.log.Info("starting reminder pass")

	subs, err := s.repo.ListActiveSubscriptionsWithUsers(ctx)
	if err != nil {
		s.log.Error("failed to list subscriptions", sl.Err(err))
		return
	}

	reminders := DueTomorrow(subs, time.Now().UTC())
	if len(reminders) == 0 {
		s.log.Info("no payments due tomorrow")
		return
	}
	s.log.Info("found payments due tomorrow", "count", len(reminders))

	for _, r := range reminders {
		if err := rabbitmq.PublishReminder(channel, r); err != nil {
			s.log.Error("failed to publish reminder", sl.Err(err),
				slog.String("subscription_id", r.SubscriptionID))
		}
	}
}

// DueTomorrow возвращает напоминания по подпискам, у которых следующее
// списание приходится на завтрашний календарный день.
func DueTomorrow(subs []models.SubscriptionWithUser, today time.Time) []models.PaymentReminder {
	tomorrow := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	var out []models.PaymentReminder
	for _, s := range subs {
		if !s.IsActive {
			continue
		}
		next, ok := billing.NextPaymentDate(s.Subscription, today)
		if !ok || !next.Equal(tomorrow) {
			continue
		}
		out = append(out, models.PaymentReminder{
			MessageID:       uuid.NewString(),
			Email:           s.Email,
			Username:        s.Username,
			SubscriptionID:  s.ID,
			Name:            s.Name,
			Price:           s.Price,
			Currency:        s.Currency,
			NextPaymentDate: next,
		})
	}
	return out
}

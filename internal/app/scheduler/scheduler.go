// Package scheduler содержит приложение планировщика напоминаний:
// по cron-расписанию находит подписки с завтрашним списанием и
// публикует напоминания в очередь.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/streadway/amqp"

	"github.com/realaashishly/korixen-cal/internal/config"
	"github.com/realaashishly/korixen-cal/internal/rabbitmq"
	reminderservice "github.com/realaashishly/korixen-cal/internal/services/reminder"
	"github.com/realaashishly/korixen-cal/internal/storage/repository"
)

// App представляет приложение планировщика.
type App struct {
	reminderService *reminderservice.Service
	cronSpec        string
	conn            *amqp.Connection
	ch              *amqp.Channel
	logger          *slog.Logger
}

func waitForDB(db *repository.Storage) error {
	for attempt := 0; attempt < 10; attempt++ {
		err := repository.CheckDatabaseReady(db)
		if err == nil {
			return nil
		}
		time.Sleep(3 * time.Second)
	}
	return fmt.Errorf("database not ready after retries")
}

// New создает новый экземпляр приложения планировщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, cfg.MaxRetriesRabbit, cfg.RetryDelayRabbit)
	if err != nil {
		return nil, fmt.Errorf("failed to connect RabbitMQ: %w", err)
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		closeResources(nil, conn, logger)
		return nil, fmt.Errorf("failed to setup RabbitMQ channel: %w", err)
	}

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		closeResources(ch, conn, logger)
		return nil, fmt.Errorf("failed to connect storage: %w", err)
	}

	if err := waitForDB(db); err != nil {
		closeResources(ch, conn, logger)
		return nil, err
	}

	reminderService := reminderservice.New(db, logger)

	return &App{
		reminderService: reminderService,
		cronSpec:        cfg.Reminder.CronSpec,
		conn:            conn,
		ch:              ch,
		logger:          logger,
	}, nil
}

func closeResources(ch *amqp.Channel, conn *amqp.Connection, logger *slog.Logger) {
	if ch != nil {
		if err := ch.Close(); err != nil {
			logger.Error("failed to close channel", "error", err)
		}
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Error("failed to close connection", "error", err)
		}
	}
}

// Run запускает планировщик по расписанию и останавливает его
// по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	c := cron.New()
	_, err := c.AddFunc(a.cronSpec, func() {
		a.reminderService.Run(ctx, a.ch)
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", a.cronSpec, err)
	}
	c.Start()
	a.logger.Info("reminder scheduler started", slog.String("cron", a.cronSpec))

	<-ctx.Done()

	a.logger.Info("shutting down scheduler service")
	<-c.Stop().Done()

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

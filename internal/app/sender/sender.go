// Package sender содержит приложение отправщика писем: вычитывает
// очередь напоминаний и рассылает их по SMTP.
package sender

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/realaashishly/korixen-cal/internal/config"
	"github.com/realaashishly/korixen-cal/internal/lib/smtp"
	"github.com/realaashishly/korixen-cal/internal/rabbitmq"
	senderservice "github.com/realaashishly/korixen-cal/internal/services/sender"
)

// App представляет приложение отправщика.
type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.Service
	logger        *slog.Logger
}

// New создает новый экземпляр приложения отправщика.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	conn, err := rabbitmq.Connect(cfg.RabbitConnectionString, cfg.MaxRetriesRabbit, cfg.RetryDelayRabbit)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg, logger)
	senderService := senderservice.New(transport, logger)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

// Run запускает потребителя очереди и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumeReminders(ctx, a.ch, a.logger, a.senderService.SendPaymentReminder)
	if err != nil {
		a.logger.Error("failed to start reminders consumer", slog.Any("err", err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", slog.Any("err", err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", slog.Any("err", err))
	}

	return nil
}

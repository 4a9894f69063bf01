package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/realaashishly/korixen-cal/internal/lib/sl"
)

// maxInFlight ограничивает число одновременно обрабатываемых
// напоминаний, чтобы всплеск очереди не открыл столько же
// SMTP-соединений.
const maxInFlight = 10

// ConsumeReminders вычитывает очередь напоминаний о списаниях и
// передает тела сообщений обработчику. Ошибка обработчика возвращает
// сообщение в очередь.
func ConsumeReminders(ctx context.Context, ch *amqp.Channel, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.ConsumeReminders"
	delivery, err := ch.Consume(
		QueuePayments,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					if err := handler(d.Body); err != nil {
						log.Error("failed to handle reminder, requeueing", sl.Err(err),
							slog.String("message_id", d.MessageId))
						if nackErr := d.Nack(false, true); nackErr != nil {
							log.Error("failed to nack reminder", sl.Err(nackErr))
						}
						return
					}
					if ackErr := d.Ack(false); ackErr != nil {
						log.Error("failed to ack reminder", sl.Err(ackErr))
					}
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

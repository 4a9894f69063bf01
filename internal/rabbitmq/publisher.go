package rabbitmq

import (
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/realaashishly/korixen-cal/internal/models"
)

// PublishReminder публикует напоминание о списании в exchange
// reminders. Сообщение уходит persistent, MessageID напоминания
// становится MessageId сообщения для дедупликации на стороне
// потребителя.
func PublishReminder(ch *amqp.Channel, reminder models.PaymentReminder) error {
	const op = "rabbitmq.PublishReminder"
	body, err := json.Marshal(reminder)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		ExchangeReminders,
		KeyPayments,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    reminder.MessageID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

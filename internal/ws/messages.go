package ws

import (
	"encoding/json"
	"time"
)

// MessageType тип исходящего сообщения.
type MessageType string

// Типы сообщений, отправляемых клиентам.
const (
	TypeEventsChanged        MessageType = "events.changed"
	TypeSubscriptionsChanged MessageType = "subscriptions.changed"
)

// Message конверт исходящего сообщения.
type Message struct {
	Type      MessageType `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   any         `json:"payload,omitempty"`
}

// NewMessage создает сообщение с текущей отметкой времени.
func NewMessage(msgType MessageType, payload any) Message {
	return Message{
		Type:      msgType,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// JSON сериализует сообщение.
func (m Message) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ChangePayload описание одной мутации состояния.
type ChangePayload struct {
	Kind string `json:"kind"`
	ID   string `json:"id,omitempty"`
}

// Package ws рассылает подключённым клиентам уведомления об изменениях
// их состояния: мутации календаря и подписок уходят во все открытые
// вкладки пользователя. Сообщения адресные, чужие события клиенту
// не приходят.
package ws

import (
	"log/slog"
	"sync"
)

// Hub реестр активных клиентов с адресной рассылкой по пользователю.
type Hub struct {
	log *slog.Logger

	mu      sync.RWMutex
	clients map[*Client]bool
}

// NewHub создает новый Hub.
func NewHub(log *slog.Logger) *Hub {
	return &Hub{
		log:     log,
		clients: make(map[*Client]bool),
	}
}

// Register добавляет клиента в реестр.
func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	total := len(h.clients)
	h.mu.Unlock()
	h.log.Info("websocket client connected",
		slog.String("user_uid", client.userUID), slog.Int("total", total))
}

// Unregister убирает клиента из реестра и закрывает его канал отправки.
func (h *Hub) Unregister(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	total := len(h.clients)
	h.mu.Unlock()
	h.log.Info("websocket client disconnected",
		slog.String("user_uid", client.userUID), slog.Int("total", total))
}

// Publish отправляет сообщение всем клиентам одного пользователя.
// Клиент с переполненным буфером отключается.
func (h *Hub) Publish(userUID string, message []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.userUID != userUID {
			continue
		}
		select {
		case client.send <- message:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// ClientCount возвращает число подключённых клиентов.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Client одно открытое websocket-соединение пользователя.
type Client struct {
	userUID string
	send    chan []byte
}

// NewClient создает клиента для пользователя userUID.
func NewClient(userUID string) *Client {
	return &Client{
		userUID: userUID,
		send:    make(chan []byte, 256),
	}
}

// Send возвращает канал исходящих сообщений клиента.
func (c *Client) Send() <-chan []byte {
	return c.send
}

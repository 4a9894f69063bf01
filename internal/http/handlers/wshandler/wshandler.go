// Package wshandler реализует HTTP-обработчик апгрейда соединения до
// веб-сокета. Соединение привязывается к пользователю из контекста и
// получает уведомления об изменениях его данных.
package wshandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/gorilla/websocket"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/ws"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Handler обрабатывает HTTP-запросы апгрейда до веб-сокета.
type Handler struct {
	log *slog.Logger
	hub *ws.Hub
}

// New создает новый экземпляр Handler с указанными логгером и хабом.
func New(log *slog.Logger, hub *ws.Hub) *Handler {
	return &Handler{
		log: log,
		hub: hub,
	}
}

// ServeHTTP godoc
// @Summary Подписка на уведомления
// @Description Апгрейдит соединение до веб-сокета и шлет уведомления об изменениях данных пользователя.
// @Tags Notifications
// @Security BearerAuth
// @Success 101 {string} string "Протокол переключен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /ws [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.wshandler"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	client := ws.NewClient(userUID)
	h.hub.Register(client)
	log.Info("websocket client connected", slog.String("user_uid", userUID))

	go h.writePump(conn, client)
	go h.readPump(conn, client)
}

// writePump переливает сообщения клиента в соединение и держит его
// живым пингами. Закрытие канала означает отключение клиента хабом.
func (h *Handler) writePump(conn *websocket.Conn, client *ws.Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.hub.Unregister(client)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.hub.Unregister(client)
				return
			}
		}
	}
}

// readPump вычитывает входящие кадры только ради обработки pong и
// обнаружения закрытия соединения клиентом.
func (h *Handler) readPump(conn *websocket.Conn, client *ws.Client) {
	defer h.hub.Unregister(client)

	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

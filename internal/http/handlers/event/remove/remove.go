// Package remove реализует HTTP-обработчик удаления события.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	eventsvc "github.com/realaashishly/korixen-cal/internal/services/event"
)

// Handler обрабатывает HTTP-запросы на удаление события.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления события.
type Service interface {
	Delete(ctx context.Context, userUID, id string) error
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удаление события
// @Description Удаляет событие пользователя. Локальная копия удаляется сразу, хранилище обновляется в фоне.
// @Tags Events
// @Security BearerAuth
// @Produce  json
// @Param id path string true "Идентификатор события"
// @Success 200 {object} response.OKResponse "Событие удалено"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing event id")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Delete(r.Context(), userUID, id); err != nil {
		if errors.Is(err, eventsvc.ErrNotFound) {
			log.Error("event not found", slog.String("event_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}
		log.Error("failed to delete event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to delete event"))
		return
	}

	log.Info("success to delete event", slog.String("event_id", id))
	render.JSON(w, r, response.OK())
}

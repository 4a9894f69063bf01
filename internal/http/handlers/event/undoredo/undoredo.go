// Package undoredo реализует HTTP-обработчики отмены и повтора операций
// над событиями. История линейная: отмена откатывает последний шаг,
// повтор возвращает его, новая операция после отмены обрезает хвост.
package undoredo

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Service описывает интерфейс истории операций над событиями.
type Service interface {
	Undo(ctx context.Context, userUID string) ([]models.Event, bool, error)
	Redo(ctx context.Context, userUID string) ([]models.Event, bool, error)
}

// Handler обрабатывает HTTP-запросы отмены или повтора, в зависимости
// от конструктора.
type Handler struct {
	log     *slog.Logger
	service Service
	redo    bool
}

// NewUndo создает Handler для отмены последней операции.
func NewUndo(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// NewRedo создает Handler для повтора отмененной операции.
func NewRedo(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service, redo: true}
}

// ServeHTTP godoc
// @Summary Отмена или повтор операции
// @Description Откатывает последний шаг истории событий либо возвращает отмененный. Пустая история — не ошибка, applied=false.
// @Tags Events
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Состояние событий после шага истории"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events/undo [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.undoredo"

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

	var (
		events  []models.Event
		applied bool
		err     error
	)
	if h.redo {
		events, applied, err = h.service.Redo(r.Context(), userUID)
	} else {
		events, applied, err = h.service.Undo(r.Context(), userUID)
	}
	if err != nil {
		log.Error("failed to apply history step", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to apply history step"))
		return
	}

	log.Info("history step applied", slog.Bool("applied", applied), slog.Bool("redo", h.redo))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"applied": applied,
		"events":  events,
	}))
}

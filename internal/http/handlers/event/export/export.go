// Package export реализует HTTP-обработчик экспорта календаря пользователя
// в формате iCalendar.
package export

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/ics"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Handler обрабатывает HTTP-запросы экспорта календаря.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс получения событий для экспорта.
type Service interface {
	List(ctx context.Context, userUID, roleFilter, statusFilter string) ([]models.Event, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Экспорт календаря
// @Description Возвращает все события пользователя одним файлом iCalendar.
// @Tags Events
// @Security BearerAuth
// @Produce  text/calendar
// @Success 200 {string} string "Файл iCalendar"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events/export [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.export"

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

	events, err := h.service.List(r.Context(), userUID, "", "")
	if err != nil {
		log.Error("failed to list events for export", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to export calendar"))
		return
	}

	log.Info("calendar exported", "count", len(events))
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="korixen.ics"`)
	_, _ = w.Write([]byte(ics.BuildCalendar(events)))
}

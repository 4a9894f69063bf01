// Package day реализует HTTP-обработчик дневной проекции календаря.
package day

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Handler обрабатывает HTTP-запросы дневной проекции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики дневной проекции.
type Service interface {
	Day(ctx context.Context, userUID string, date time.Time) ([]models.Event, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Дневная проекция
// @Description Возвращает события указанного календарного дня, отсортированные по позиции и времени начала.
// @Tags Views
// @Security BearerAuth
// @Produce  json
// @Param date query string false "Дата в формате 2006-01-02, по умолчанию сегодня"
// @Success 200 {object} map[string]any "События дня"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /views/day [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.day"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	date := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Error("invalid date format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date, expected 2006-01-02"))
			return
		}
		date = parsed
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Day(r.Context(), userUID, date)
	if err != nil {
		log.Error("failed to build day view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build day view"))
		return
	}

	log.Info("day view built", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"date":   date.Format("2006-01-02"),
		"events": res,
	}))
}

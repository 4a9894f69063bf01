// Package week реализует HTTP-обработчик недельной проекции календаря.
package week

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
	"github.com/realaashishly/korixen-cal/internal/views"
)

// Handler обрабатывает HTTP-запросы недельной проекции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики недельной проекции.
type Service interface {
	Week(ctx context.Context, userUID string, ref time.Time) ([]views.DayBucket, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Недельная проекция
// @Description Возвращает семь корзин событий недели, содержащей опорную дату. Неделя начинается с понедельника.
// @Tags Views
// @Security BearerAuth
// @Produce  json
// @Param date query string false "Опорная дата в формате 2006-01-02, по умолчанию сегодня"
// @Success 200 {object} map[string]any "Корзины недели"
// @Failure 400 {object} response.ErrorResponse "Некорректная дата"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /views/week [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.week"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	ref := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			log.Error("invalid date format", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid date, expected 2006-01-02"))
			return
		}
		ref = parsed
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Week(r.Context(), userUID, ref)
	if err != nil {
		log.Error("failed to build week view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build week view"))
		return
	}

	log.Info("week view built")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"days": res,
	}))
}

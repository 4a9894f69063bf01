// Package kanban реализует HTTP-обработчик канбан-проекции: события
// группируются по отделам пользователя и сортируются по статусу.
package kanban

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/views"
)

// Handler обрабатывает HTTP-запросы канбан-проекции.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики канбан-проекции.
type Service interface {
	Kanban(ctx context.Context, userUID string) ([]views.Column, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Канбан-проекция
// @Description Возвращает колонку на каждый отдел из справочника пользователя, включая пустые.
// @Tags Views
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Колонки канбана"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /views/kanban [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.kanban"

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

	res, err := h.service.Kanban(r.Context(), userUID)
	if err != nil {
		log.Error("failed to build kanban view", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to build kanban view"))
		return
	}

	log.Info("kanban view built", "columns", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"columns": res,
	}))
}

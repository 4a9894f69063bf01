// Package read реализует HTTP-обработчик получения пользовательских
// справочников и глобального хаба ресурсов.
package read

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

// Handler обрабатывает HTTP-запросы на чтение справочников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочников.
type Service interface {
	UserAssets(ctx context.Context, userUID string) (models.UserAssets, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Справочники пользователя
// @Description Возвращает отделы, типы событий, категории ресурсов и хаб ресурсов.
// @Tags Assets
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Справочники"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /assets [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assets.read"

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

	res, err := h.service.UserAssets(r.Context(), userUID)
	if err != nil {
		log.Error("failed to read user assets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read user assets"))
		return
	}

	log.Info("user assets read")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assets": res,
	}))
}

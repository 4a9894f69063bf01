// Package update реализует HTTP-обработчик частичного обновления
// пользовательских справочников: nil-список не трогается, пустой очищает.
package update

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Handler обрабатывает HTTP-запросы на обновление справочников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики обновления справочников.
type Service interface {
	Update(ctx context.Context, userUID string, req models.DummyUserAssets) (models.UserAssets, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Обновление справочников
// @Description Частично обновляет справочники пользователя. Отсутствующий список не трогается, пустой очищает. Новые ресурсы получают идентификаторы.
// @Tags Assets
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyUserAssets true "Обновляемые списки"
// @Success 200 {object} map[string]any "Справочники после обновления"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /assets [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.assets.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUserAssets
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Update(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to update user assets", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update user assets"))
		return
	}

	log.Info("user assets updated")
	render.JSON(w, r, response.OKWithData(map[string]any{
		"assets": res,
	}))
}

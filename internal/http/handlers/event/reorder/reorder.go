// Package reorder реализует HTTP-обработчик ручной пересортировки событий дня.
//
// Запрос несет идентификаторы событий в новом порядке отображения; операция
// записывается в историю одним шагом.
package reorder

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
	eventsvc "github.com/realaashishly/korixen-cal/internal/services/event"
)

// Handler обрабатывает HTTP-запросы на пересортировку событий.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики пересортировки.
type Service interface {
	Reorder(ctx context.Context, userUID string, orderedIDs []string) ([]models.Event, error)
}

// New создает новый экземпляр Handler с указанными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Пересортировка событий
// @Description Присваивает событиям позиции по порядку переданных идентификаторов. Одна операция — один шаг истории.
// @Tags Events
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyReorder true "Идентификаторы в новом порядке"
// @Success 200 {object} map[string]any "События с обновленными позициями"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или события из разных дней"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events/reorder [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.reorder"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyReorder
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	res, err := h.service.Reorder(r.Context(), userUID, req.IDs)
	if err != nil {
		log.Error("failed to reorder events", sl.Err(err))
		if errors.Is(err, eventsvc.ErrMixedDays) {
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("events must belong to one day"))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reorder events"))
		return
	}

	log.Info("success to reorder events", "count", len(res))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"events": res,
	}))
}

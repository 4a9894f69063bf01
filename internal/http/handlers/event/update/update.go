// Package update реализует HTTP-обработчик частичного обновления события.
//
// Заполненные поля запроса сливаются в текущее состояние события, остальные
// не трогаются. Локальная копия обновляется сразу, запись в хранилище
// выполняется в фоне.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
	eventsvc "github.com/realaashishly/korixen-cal/internal/services/event"
)

// Handler обрабатывает HTTP-запросы на обновление события.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления события.
type Service interface {
	Update(ctx context.Context, userUID, id string, req models.DummyEventUpdate) (models.Event, error)
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
// @Summary Обновление события
// @Description Частично обновляет событие: переданные поля сливаются в текущее состояние.
// @Tags Events
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param id path string true "Идентификатор события"
// @Param request body models.DummyEventUpdate true "Обновляемые поля"
// @Success 200 {object} map[string]any "Обновленное событие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или формат времени"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events/{id} [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"

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

	var req models.DummyEventUpdate
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

	event, err := h.service.Update(r.Context(), userUID, id, req)
	if err != nil {
		if errors.Is(err, eventsvc.ErrNotFound) {
			log.Error("event not found", slog.String("event_id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("event not found"))
			return
		}
		log.Error("failed to update event", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to update event"))
		return
	}

	log.Info("success to update event", slog.String("event_id", event.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"event": event,
	}))
}

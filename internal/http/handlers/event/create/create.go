// Package create реализует HTTP-обработчик создания события календаря.
//
// Handler декодирует JSON-запрос, валидирует поля, извлекает UID пользователя
// из контекста и делегирует создание сервису событий. Событие возвращается
// сразу с временным идентификатором, не дожидаясь подтверждения хранилища.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/lib/sl"
	"github.com/realaashishly/korixen-cal/internal/models"
)

// Handler обрабатывает HTTP-запросы на создание события.
type Handler struct {
	log      *slog.Logger        // Логгер для записи операций и ошибок
	service  Service             // Сервис бизнес-логики событий
	validate *validator.Validate // Валидатор для проверки входных данных
}

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyEvent) (models.Event, error)
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
// @Summary Создание события
// @Description Создает событие календаря. Ответ приходит сразу с временным идентификатором, запись в хранилище выполняется в фоне.
// @Tags Events
// @Security BearerAuth
// @Accept  json
// @Produce  json
// @Param request body models.DummyEvent true "Данные события"
// @Success 200 {object} map[string]any "Созданное событие"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или формат времени"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("title", req.Title))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}
	log.Info("all fields are validated")

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	event, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		log.Error("failed to create event", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to create event"))
		return
	}

	log.Info("success to create event", slog.String("event_id", event.ID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"event": event,
	}))
}

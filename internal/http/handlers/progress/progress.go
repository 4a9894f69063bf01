// Package progress реализует HTTP-обработчик годового прогресса:
// прошедшие дни, оставшиеся недели и процент года.
package progress

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/realaashishly/korixen-cal/internal/http/response"
	"github.com/realaashishly/korixen-cal/internal/views"
)

// Handler обрабатывает HTTP-запросы годового прогресса.
type Handler struct {
	log *slog.Logger
}

// New создает новый экземпляр Handler с указанным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Годовой прогресс
// @Description Возвращает число прошедших дней, оставшихся полных недель и процент года.
// @Tags Views
// @Security BearerAuth
// @Produce  json
// @Success 200 {object} map[string]any "Годовой прогресс"
// @Router /views/progress [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.progress"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	res := views.YearProgress(time.Now())

	log.Info("year progress built", slog.Int("percent", res.Percent))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"progress": res,
	}))
}

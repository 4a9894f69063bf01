// Package korixen предоставляет маршруты для основного приложения.
package korixen

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	assetsread "github.com/realaashishly/korixen-cal/internal/http/handlers/assets/read"
	assetsupdate "github.com/realaashishly/korixen-cal/internal/http/handlers/assets/update"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/auth/login"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/auth/register"
	eventcreate "github.com/realaashishly/korixen-cal/internal/http/handlers/event/create"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/day"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/export"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/kanban"
	eventlist "github.com/realaashishly/korixen-cal/internal/http/handlers/event/list"
	eventremove "github.com/realaashishly/korixen-cal/internal/http/handlers/event/remove"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/reorder"
	eventupdate "github.com/realaashishly/korixen-cal/internal/http/handlers/event/update"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/undoredo"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/event/week"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/health"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/progress"
	subcreate "github.com/realaashishly/korixen-cal/internal/http/handlers/subscription/create"
	sublist "github.com/realaashishly/korixen-cal/internal/http/handlers/subscription/list"
	subremove "github.com/realaashishly/korixen-cal/internal/http/handlers/subscription/remove"
	subsummary "github.com/realaashishly/korixen-cal/internal/http/handlers/subscription/summary"
	"github.com/realaashishly/korixen-cal/internal/http/handlers/wshandler"
	"github.com/realaashishly/korixen-cal/internal/http/middlewarectx"
	assetsservice "github.com/realaashishly/korixen-cal/internal/services/assets"
	authservice "github.com/realaashishly/korixen-cal/internal/services/auth"
	eventservice "github.com/realaashishly/korixen-cal/internal/services/event"
	subservice "github.com/realaashishly/korixen-cal/internal/services/subscription"
	"github.com/realaashishly/korixen-cal/internal/ws"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, authService *authservice.Service, eventService *eventservice.Service, subscriptionService *subservice.Service, assetsService *assetsservice.Service, hub *ws.Hub) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Post("/events", eventcreate.New(logger, eventService).ServeHTTP)
			r.Get("/events", eventlist.New(logger, eventService).ServeHTTP)
			r.Patch("/events/{id}", eventupdate.New(logger, eventService).ServeHTTP)
			r.Delete("/events/{id}", eventremove.New(logger, eventService).ServeHTTP)
			r.Post("/events/reorder", reorder.New(logger, eventService).ServeHTTP)
			r.Post("/events/undo", undoredo.NewUndo(logger, eventService).ServeHTTP)
			r.Post("/events/redo", undoredo.NewRedo(logger, eventService).ServeHTTP)
			r.Get("/events/export", export.New(logger, eventService).ServeHTTP)

			r.Get("/views/day", day.New(logger, eventService).ServeHTTP)
			r.Get("/views/week", week.New(logger, eventService).ServeHTTP)
			r.Get("/views/kanban", kanban.New(logger, eventService).ServeHTTP)
			r.Get("/views/progress", progress.New(logger).ServeHTTP)

			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/subscriptions/{id}", subremove.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions/summary", subsummary.New(logger, subscriptionService).ServeHTTP)

			r.Get("/assets", assetsread.New(logger, assetsService).ServeHTTP)
			r.Patch("/assets", assetsupdate.New(logger, assetsService).ServeHTTP)

			r.Get("/ws", wshandler.New(logger, hub).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}

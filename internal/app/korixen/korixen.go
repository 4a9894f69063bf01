// Package korixen собирает основное HTTP-приложение: хранилище,
// миграции, кэш, сессии пользователей, сервисы и маршруты.
package korixen

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/realaashishly/korixen-cal/internal/cache"
	"github.com/realaashishly/korixen-cal/internal/config"
	"github.com/realaashishly/korixen-cal/internal/lib/jwt"
	"github.com/realaashishly/korixen-cal/internal/migrations"
	"github.com/realaashishly/korixen-cal/internal/services/assets"
	"github.com/realaashishly/korixen-cal/internal/services/auth"
	"github.com/realaashishly/korixen-cal/internal/services/event"
	"github.com/realaashishly/korixen-cal/internal/services/subscription"
	"github.com/realaashishly/korixen-cal/internal/session"
	"github.com/realaashishly/korixen-cal/internal/storage/repository"
	"github.com/realaashishly/korixen-cal/internal/store"
	"github.com/realaashishly/korixen-cal/internal/ws"
)

// App основное приложение.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New инициализирует зависимости и собирает приложение.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	hub := ws.NewHub(logger)

	sessions := session.NewManager(db)
	sessions.OnCreate(func(s *session.Session) {
		userUID := s.UserUID
		s.Events.Subscribe(func(c store.Change) {
			publish(hub, logger, userUID, ws.TypeEventsChanged, c)
		})
		s.Subscriptions.Subscribe(func(c store.Change) {
			publish(hub, logger, userUID, ws.TypeSubscriptionsChanged, c)
		})
	})

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := auth.New(db, jwtMaker)
	assetsService := assets.New(db)
	eventService := event.New(sessions, db, assetsService, logger)
	subscriptionService := subscription.New(sessions, db, cacheRedis, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, eventService, subscriptionService, assetsService, hub)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

func publish(hub *ws.Hub, logger *slog.Logger, userUID string, msgType ws.MessageType, c store.Change) {
	msg, err := ws.NewMessage(msgType, ws.ChangePayload{Kind: string(c.Kind), ID: c.ID}).JSON()
	if err != nil {
		logger.Error("failed to marshal ws message", slog.Any("err", err))
		return
	}
	hub.Publish(userUID, msg)
}

// Run запускает сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}

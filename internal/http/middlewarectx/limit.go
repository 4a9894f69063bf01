package middlewarectx

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"
)

// limiters хранит по одному лимитеру на пользователя: 1 запрос
// в секунду с запасом на 3. Записи не вычищаются, лимитер живет,
// пока жив процесс.
type limiters struct {
	mu      sync.Mutex
	perUser map[string]*rate.Limiter
	limit   rate.Limit
	burst   int
}

func newLimiters() *limiters {
	return &limiters{
		perUser: make(map[string]*rate.Limiter),
		limit:   rate.Limit(1),
		burst:   3,
	}
}

func (l *limiters) get(key string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	lim, ok := l.perUser[key]
	if !ok {
		lim = rate.NewLimiter(l.limit, l.burst)
		l.perUser[key] = lim
	}
	return lim
}

// RateLimitMiddleware ограничивает частоту запросов отдельно для
// каждого пользователя. Ключом служит UID из JWT, положенный в
// контекст аутентификацией; без него запросы считаются по адресу
// клиента.
func RateLimitMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	lims := newLimiters()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, ok := r.Context().Value(UserUID).(string)
			if !ok || key == "" {
				key = r.RemoteAddr
			}
			if !lims.get(key).Allow() {
				log.Error("too many requests", slog.String("key", key))
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, "too many requests")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

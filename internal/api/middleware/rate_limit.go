package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const msgRateLimited = "слишком много запросов, повторите позже"

// RateLimitStore интерфейс счётчика запросов, разделяемого инстансами сервиса
type RateLimitStore interface {
	Hit(ctx context.Context, identity, action string, now time.Time, window time.Duration) (int, error)
}

// RateLimit ограничивает число запросов на (identity, action) в окне
//
// Счётчик живёт в общей БД, поэтому лимит корректен при нескольких
// инстансах сервиса. Недоступность счётчика не блокирует запросы:
// лимитер деградирует в fail-open с записью в лог
func RateLimit(store RateLimitStore, action string, maxRequests int, window time.Duration, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := clientIdentity(r)

			hits, err := store.Hit(r.Context(), identity, action, time.Now(), window)
			if err != nil {
				log.Error("RateLimit: counter unavailable, failing open: action=%s: %v", action, err)
				next.ServeHTTP(w, r)
				return
			}

			if hits > maxRequests {
				log.Warn("RateLimit: limit exceeded: identity=%s, action=%s, hits=%d, max=%d",
					identity, action, hits, maxRequests)
				handlers.RespondTooManyRequests(w, msgRateLimited)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIdentity определяет идентичность клиента для лимитера
// За прокси берётся первый адрес из X-Forwarded-For
func clientIdentity(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

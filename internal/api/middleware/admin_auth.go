package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	adminKeyHeader = "X-Admin-Key"

	msgMissingAdminKey = "требуется заголовок X-Admin-Key"
	msgInvalidAdminKey = "некорректный административный ключ"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// AdminAuth проверяет административный ключ в заголовке X-Admin-Key
// Сравнение ключей выполняется за постоянное время
func AdminAuth(apiKey string, log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := r.Header.Get(adminKeyHeader)
			if provided == "" {
				log.Warn("AdminAuth: missing %s header: %s %s", adminKeyHeader, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingAdminKey)
				return
			}

			if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
				log.Warn("AdminAuth: invalid admin key: %s %s", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgInvalidAdminKey)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SHM-SeatService/internal/api/handlers"
)

type ctxKey int

const operatorIDKey ctxKey = iota

const headerOperatorID = "X-Operator-ID"

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth извлекает ID оператора из заголовка X-Operator-ID и кладёт его
// в контекст запроса. Аутентификацию выполняет вышестоящий шлюз;
// здесь заголовок нужен для аудита операций
func Auth(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(headerOperatorID)
			if raw == "" {
				log.Warn("%s %s - Missing %s header", r.Method, r.URL.Path, headerOperatorID)
				handlers.RespondUnauthorized(w, "отсутствует ID оператора")
				return
			}

			operatorID, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				log.Warn("%s %s - Invalid %s header: %v", r.Method, r.URL.Path, headerOperatorID, err)
				handlers.RespondUnauthorized(w, "некорректный ID оператора")
				return
			}

			ctx := context.WithValue(r.Context(), operatorIDKey, operatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetOperatorID возвращает ID оператора из контекста запроса
func GetOperatorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(operatorIDKey).(int64)
	return id, ok
}

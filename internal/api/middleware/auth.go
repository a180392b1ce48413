package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-ScheduleService/internal/api/handlers"
)

// userIDHeader заголовок аутентификации, проставляется API-шлюзом
const userIDHeader = "X-User-ID"

const msgMissingUserID = "требуется заголовок X-User-ID"

// Auth проверяет наличие корректного X-User-ID у защищённых маршрутов
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := UserIDFromRequest(r); err != nil {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// UserIDFromRequest извлекает ID пользователя из заголовка запроса
func UserIDFromRequest(r *http.Request) (int64, error) {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", userIDHeader)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid %s header: %q", userIDHeader, raw)
	}

	return userID, nil
}

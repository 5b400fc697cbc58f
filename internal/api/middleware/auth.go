package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/slotly/appointment-service/internal/api/handlers"
	"github.com/slotly/appointment-service/internal/domain"
)

// Заголовки, проставляемые API gateway после проверки токена
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidUserID = "некорректный ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
)

// Identity аутентифицированный пользователь запроса
type Identity struct {
	UserID int64
	Role   domain.UserRole
}

type contextKey struct{}

var identityKey contextKey

// Auth проверяет заголовки X-User-ID и X-User-Role и кладет Identity в контекст.
// Сервис доверяет заголовкам: проверка подписи токена выполняется на gateway.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.Header.Get(HeaderUserID)
		if userIDStr == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(userIDStr, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role, err := domain.ParseUserRole(r.Header.Get(HeaderUserRole))
		if err != nil {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}

		identity := Identity{UserID: userID, Role: role}
		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentity возвращает Identity из контекста запроса
func GetIdentity(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// GetUserID возвращает ID пользователя из контекста запроса
func GetUserID(ctx context.Context) (int64, bool) {
	identity, ok := GetIdentity(ctx)
	return identity.UserID, ok
}

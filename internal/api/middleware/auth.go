package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/pawtrim/booking-service/internal/domain"
)

type contextKey string

const (
	userIDKey   contextKey = "userID"
	userRoleKey contextKey = "userRole"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"
)

// Auth извлекает идентификацию пользователя из заголовков запроса.
// Аутентификацию выполняет API-гейтвей выше по стеку; сюда заголовки
// приходят уже проверенными.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if idStr := r.Header.Get(headerUserID); idStr != "" {
			if id, err := strconv.ParseInt(idStr, 10, 64); err == nil && id > 0 {
				ctx = context.WithValue(ctx, userIDKey, id)
			}
		}

		role := domain.ActorRole(r.Header.Get(headerUserRole))
		switch role {
		case domain.RoleCustomer, domain.RoleGroomer, domain.RoleAdmin:
			ctx = context.WithValue(ctx, userRoleKey, role)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// GetUserRole возвращает роль пользователя из контекста
func GetUserRole(ctx context.Context) (domain.ActorRole, bool) {
	role, ok := ctx.Value(userRoleKey).(domain.ActorRole)
	return role, ok
}

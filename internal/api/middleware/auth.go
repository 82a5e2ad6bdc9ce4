package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type contextKey string

const (
	actorKey     contextKey = "actor"
	requestIDKey contextKey = "request_id"
)

// Заголовки, которые проставляет gateway после аутентификации
const (
	HeaderUserID   = "X-User-ID"
	HeaderUserRole = "X-User-Role"
)

const (
	msgMissingUserID = "отсутствует ID пользователя"
	msgInvalidRole   = "некорректная роль пользователя"
	msgForbidden     = "доступ запрещен"
)

// Auth требует заголовок X-User-ID и кладет Actor в контекст.
// Без X-User-Role вызывающий считается клиентом.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok, valid := actorFromHeaders(r)
		if !valid {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}
		if !ok {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
	})
}

// OptionalAuth кладет Actor в контекст, только если заголовки переданы
func OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok, valid := actorFromHeaders(r)
		if !valid {
			handlers.RespondUnauthorized(w, msgInvalidRole)
			return
		}
		if ok {
			r = r.WithContext(WithActor(r.Context(), actor))
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole пропускает только перечисленные роли, должен стоять после Auth
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := GetActor(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, msgMissingUserID)
				return
			}
			for _, role := range roles {
				if actor.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			handlers.RespondForbidden(w, msgForbidden)
		})
	}
}

// WithActor кладет Actor в контекст
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor достает Actor из контекста
func GetActor(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

func actorFromHeaders(r *http.Request) (actor domain.Actor, ok bool, valid bool) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderUserRole))))

	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.IsValid() {
		return domain.Actor{}, false, false
	}
	if userID == "" {
		return domain.Actor{}, false, true
	}
	return domain.Actor{ID: userID, Role: role}, true, true
}

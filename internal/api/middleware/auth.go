package middleware

import (
	"context"
	"isp-billing/internal/config"
	"isp-billing/internal/domain/auth"
	"log/slog"
	"net/http"
	"strings"
)

type userContextKey struct{}

// AnonymousUser stands in for the signed-in administrator when auth is off.
var AnonymousUser = auth.User{ID: "anonymous", Name: "Anonymous", Persistence: auth.PersistenceSession}

func WithUser(ctx context.Context, user auth.User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

func UserFromContext(ctx context.Context) (auth.User, bool) {
	user, ok := ctx.Value(userContextKey{}).(auth.User)
	return user, ok
}

// TokenFromRequest reads a bearer token, falling back to the session cookie.
func TokenFromRequest(r *http.Request, cookieName string) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookieName == "" {
		return ""
	}
	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func AuthMiddleware(cfg config.AuthConfig, svc auth.Service, logger *slog.Logger) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), AnonymousUser)))
			})
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r, cfg.CookieName)
			if token == "" {
				logger.Warn("AuthMiddleware: Missing credentials", "path", r.URL.Path)
				unauthorized(w)
				return
			}

			user, err := svc.CurrentUser(r.Context(), token)
			if err != nil {
				logger.Warn("AuthMiddleware: Rejected token", "error", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), *user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":{"message":"Unauthorized"}}`))
}

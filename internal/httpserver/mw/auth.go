package mw

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/bio/internal/auth"
	"github.com/MrSnakeDoc/bio/internal/logger"
)

type claimsKey struct{}

// Claims returns the token claims stored by RequireOwner.
func Claims(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return c, ok
}

// RequireOwner checks the bearer token and that it was issued to the user
// named by the {username} route parameter. A missing token is answered with
// 401, an invalid one or one issued to another user with 403.
func RequireOwner(tokens *auth.Tokens, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearer(r)
			if !ok {
				reject(w, http.StatusUnauthorized, "Authentication required.")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				log.Debug("token rejected", logger.String("path", r.URL.Path), logger.Error(err))
				reject(w, http.StatusForbidden, "Invalid or expired token.")
				return
			}

			if owner := chi.URLParam(r, "username"); owner != claims.Username {
				reject(w, http.StatusForbidden, "Access denied. You can only access your own data.")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
		})
	}
}

func bearer(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"sellerboost-api/internal/identity"
	"sellerboost-api/internal/model"
	"sellerboost-api/pkg/apierror"
	"sellerboost-api/pkg/response"
)

// PrincipalKey is the context key for the authenticated principal.
const PrincipalKey contextKey = "principal"

// NewAuthMiddleware creates the bearer-token gate.
// NO GLOBAL STATE - the resolver is passed via closure.
func NewAuthMiddleware(resolver identity.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Preflight carries no credentials.
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				slog.WarnContext(r.Context(), "authorization header missing", "stage", "auth", "reason", "missing")
				response.Error(w, apierror.Unauthorized("No authorization header"))
				return
			}

			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				slog.WarnContext(r.Context(), "empty bearer token", "stage", "auth", "reason", "invalid")
				response.Error(w, apierror.Unauthorized("Unauthorized: empty bearer token"))
				return
			}

			principal, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				slog.WarnContext(r.Context(), "token rejected", "stage", "auth", "reason", "invalid", "error", err)
				response.Error(w, apierror.Unauthorized("Unauthorized: invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), PrincipalKey, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the principal stored by the auth middleware.
func PrincipalFromContext(ctx context.Context) (*model.Principal, bool) {
	p, ok := ctx.Value(PrincipalKey).(*model.Principal)
	return p, ok && p != nil
}

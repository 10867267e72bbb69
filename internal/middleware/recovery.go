package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"sellerboost-api/pkg/apierror"
	"sellerboost-api/pkg/response"
)

// Recovery turns a panic into a JSON 500 and logs the stack.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				slog.ErrorContext(r.Context(), "panic recovered",
					"panic", rec,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)
				response.Error(w, apierror.Internal("", nil))
			}
		}()

		next.ServeHTTP(w, r)
	})
}

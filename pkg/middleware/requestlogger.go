package middleware

import (
	"log/slog"
	"net/http"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/logger"
)

// RequestLogger stores a logger enriched with the request's correlation, user,
// visitor and trace identifiers in the context. Mount it after RequestLogging,
// Tracing, VisitorID and any auth middleware so those values are present.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if id := UserIDFromContext(ctx); id != "" {
				ctx = logger.WithUserID(ctx, id)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/logger"
)

// VisitorCookie names the cookie that identifies an anonymous browser.
const VisitorCookie = "visitor_id"

const visitorKey contextKey = "visitor_id"

// VisitorID makes sure every request carries a visitor identifier, issuing a
// long-lived cookie when the browser has none or an unparsable one.
func VisitorID(maxAge time.Duration, secure bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var id string
			if c, err := r.Cookie(VisitorCookie); err == nil {
				if _, perr := uuid.Parse(c.Value); perr == nil {
					id = c.Value
				}
			}
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(maxAge.Seconds()),
					HttpOnly: true,
					Secure:   secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), visitorKey, id)
			ctx = logger.WithVisitorID(ctx, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// VisitorIDFromContext returns the visitor ID set by VisitorID.
func VisitorIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey).(string)
	return id
}

package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/validator"
)

// ContentTypeJSON rejects write requests whose body is declared as anything
// other than JSON. A missing Content-Type is tolerated.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				httputil.WriteJSON(w, http.StatusUnsupportedMediaType, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNSUPPORTED_MEDIA_TYPE", Message: "Content-Type must be application/json"},
				})
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// currentUserID returns the authenticated user. Routes using it sit behind
// middleware.Auth, so a missing id only happens on misconfigured routing.
func currentUserID(w http.ResponseWriter, r *http.Request) (string, bool) {
	uid := middleware.UserIDFromContext(r.Context())
	if uid == "" {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return "", false
	}
	return uid, true
}

// writeDecodeError reports a body that failed to decode or validate.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		httputil.WriteError(w, r, err, nil)
		return
	}
	httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
		Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "invalid request body"},
	})
}

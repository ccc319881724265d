package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/auth"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/domain"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/service"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/internal/session"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/httputil"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/middleware"
	"github.com/shirin-nasim/spice-nut-giftshop-sub000/pkg/validator"
)

// AuthHandler handles sign-up, sign-in, sign-out, refresh and session lookup.
type AuthHandler struct {
	auth     *service.AuthService
	sessions *session.Factory
	logger   *slog.Logger
}

// NewAuthHandler creates a new auth HTTP handler.
func NewAuthHandler(authService *service.AuthService, sessions *session.Factory, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     authService,
		sessions: sessions,
		logger:   logger,
	}
}

// --- Request DTOs ---

// SignUpRequest is the JSON body for POST /auth/signup.
type SignUpRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	FullName string `json:"full_name" validate:"max=200"`
}

// SignInRequest is the JSON body for POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse is returned on sign-up and sign-in.
type AuthResponse struct {
	User   *domain.User      `json:"user"`
	Tokens *auth.TokenPair   `json:"tokens"`
	Cart   *session.Snapshot `json:"cart,omitempty"`
}

// SessionResponse is returned by GET /auth/session.
type SessionResponse struct {
	User *domain.User     `json:"user"`
	Cart session.Snapshot `json:"cart"`
}

// --- Handlers ---

// SignUp handles POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req SignUpRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	user, tokens, err := h.auth.SignUp(r.Context(), service.SignUpInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusCreated, AuthResponse{User: user, Tokens: tokens})
}

// SignIn handles POST /api/v1/auth/signin. The response carries the user's
// cart when it can be loaded.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req SignInRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	user, tokens, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	resp := AuthResponse{User: user, Tokens: tokens}
	if sess, err := h.sessions.Open(r.Context(), user.ID); err != nil {
		h.logger.WarnContext(r.Context(), "failed to load cart on sign-in",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	} else {
		snap := sess.Snapshot()
		resp.Cart = &snap
	}
	httputil.WriteData(w, http.StatusOK, resp)
}

// SignOut handles POST /api/v1/auth/signout. An optional refresh_token in the
// body is revoked along with the access token.
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
		})
		return
	}

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeDecodeError(w, r, err)
		return
	}

	if err := h.auth.SignOut(r.Context(), token, req.RefreshToken); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := validator.DecodeAndValidate(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	tokens, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, tokens)
}

// Session handles GET /api/v1/auth/session
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(w, r)
	if !ok {
		return
	}

	user, err := h.auth.User(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	sess, err := h.sessions.Open(r.Context(), userID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteData(w, http.StatusOK, SessionResponse{User: user, Cart: sess.Snapshot()})
}

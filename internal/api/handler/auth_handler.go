package handler

import (
	"fmt"
	"isp-billing/internal/api/handler/dto"
	"isp-billing/internal/api/middleware"
	"isp-billing/internal/config"
	"isp-billing/internal/domain/auth"
	"isp-billing/internal/domain/customer"
	"isp-billing/internal/pkg/apperrors"
	"log/slog"
	"net/http"
	"time"
)

type AuthHandler struct {
	service  auth.Service
	sessions *customer.Sessions
	cfg      config.AuthConfig
	logger   *slog.Logger
}

func NewAuthHandler(s auth.Service, sessions *customer.Sessions, cfg config.AuthConfig, l *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service:  s,
		sessions: sessions,
		cfg:      cfg,
		logger:   l.With("component", "AuthHandler"),
	}
}

// sessionCookie only carries Max-Age for persistent sign-ins, so a
// session-scoped sign-in ends with the browser session.
func (h *AuthHandler) sessionCookie(s *auth.Session) *http.Cookie {
	cookie := &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    s.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Persistence == auth.PersistenceLocal {
		cookie.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
		cookie.Expires = s.ExpiresAt
	}
	return cookie
}

// Login signs an administrator in.
//
// @Summary Sign in
// @Description Verifies the email and password and issues a token. With rememberMe the sign-in survives browser restarts; otherwise it lasts for the browser session. The token is also set as an HttpOnly cookie.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.LoginResponse "Signed in"
// @Failure 400 {object} dto.ErrorResponse "Invalid email address or malformed request"
// @Failure 401 {object} dto.ErrorResponse "Unknown account or wrong password"
// @Failure 403 {object} dto.ErrorResponse "Account disabled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	session, err := h.service.SignIn(r.Context(), req.Email, req.Password, req.RememberMe)
	if err != nil {
		status, _, _ := classifyError(err)
		respondJSON(w, status, dto.ErrorResponse{Error: dto.ErrorDetail{Message: auth.LoginMessage(err)}})
		return
	}

	if h.cfg.CookieName != "" {
		http.SetCookie(w, h.sessionCookie(session))
	}
	respondJSON(w, http.StatusOK, dto.NewLoginResponse(session))
}

// Logout signs the current administrator out.
//
// @Summary Sign out
// @Description Revokes the current token, discards the administrator's customer list state and clears the session cookie.
// @Tags Authentication
// @Success 204 "Signed out"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Failure 503 {object} dto.ErrorResponse "Revocation store unreachable"
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromRequest(r, h.cfg.CookieName); token != "" && h.cfg.Enabled {
		if err := h.service.SignOut(r.Context(), token); err != nil {
			h.logger.ErrorContext(r.Context(), "Failed to sign out", slog.Any("error", err))
			respondError(w, err)
			return
		}
	}

	if user, ok := middleware.UserFromContext(r.Context()); ok {
		h.sessions.Drop(user.ID)
	}
	if h.cfg.CookieName != "" {
		http.SetCookie(w, &http.Cookie{
			Name:     h.cfg.CookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			Secure:   h.cfg.CookieSecure,
			MaxAge:   -1,
		})
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the signed-in administrator.
//
// @Summary Current administrator
// @Tags Authentication
// @Produce json
// @Success 200 {object} dto.UserResponse "Signed-in administrator"
// @Failure 401 {object} dto.ErrorResponse "Not signed in"
// @Router /auth/me [get]
// @Security BearerAuth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respondError(w, apperrors.ErrUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewUserResponse(user))
}

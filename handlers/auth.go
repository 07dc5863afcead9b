// Package handlers, HTTP request/response işlemlerini yönetir.
//
// Handler'lar incedir: body'yi parse eder, service'i çağırır, sonucu
// pkg.JSON ile döner. İş mantığı ve veritabanı erişimi service katmanındadır.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/ratelimit"
	"github.com/akinalp/pisi/services"
)

type contextKey string

// Context anahtarları. AuthMiddleware doldurur, admin handler'ları okur.
const (
	UserContextKey    contextKey = "user"
	SessionContextKey contextKey = "session"
)

// CurrentUser, isteği yapan admini context'ten döner.
func CurrentUser(r *http.Request) (*models.User, bool) {
	user, ok := r.Context().Value(UserContextKey).(*models.User)
	return user, ok && user != nil
}

// requireUser, context'te admin yoksa 401 yazar ve false döner.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := CurrentUser(r)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
	}
	return user, ok
}

// AuthHandler, giriş/çıkış endpoint'lerini yönetir.
type AuthHandler struct {
	authService  services.AuthService
	loginLimiter *ratelimit.Limiter
}

// NewAuthHandler, constructor. loginLimiter nil ise rate limiting kapalıdır.
func NewAuthHandler(authService services.AuthService, loginLimiter *ratelimit.Limiter) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		loginLimiter: loginLimiter,
	}
}

// Login godoc
// POST /api/auth/login
//
// IP başına deneme sınırı vardır. Başarılı giriş sayacı sıfırlar.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ip := ratelimit.ExtractIP(r)
	if h.loginLimiter != nil && !h.loginLimiter.Allow(ip) {
		retryAfter := h.loginLimiter.RetryAfterSeconds(ip)
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		pkg.ErrorFor(w, r, pkg.NewUserError(pkg.ErrTooManyRequests, "auth.tooManyAttempts", map[string]string{
			"seconds": strconv.Itoa(retryAfter),
		}))
		return
	}

	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tokens, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	if h.loginLimiter != nil {
		h.loginLimiter.Reset(ip)
	}
	pkg.JSON(w, http.StatusOK, tokens)
}

// Refresh godoc
// POST /api/auth/refresh
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	tokens, err := h.authService.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, tokens)
}

// Logout godoc
// POST /api/auth/logout
// Body: { "refresh_token": "..." }
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.RefreshToken != "" {
		if err := h.authService.Logout(r.Context(), req.RefreshToken); err != nil {
			pkg.ErrorFor(w, r, err)
			return
		}
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Session godoc
// GET /api/auth/session
// Oturum açmış admini ve access token bitişini döner.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	session, ok := r.Context().Value(SessionContextKey).(*models.CurrentSession)
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "session not found in context")
		return
	}
	pkg.JSON(w, http.StatusOK, session)
}

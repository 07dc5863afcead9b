// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Kendi kontrolünü yapar, geçerse next'i çağırır, geçmezse isteği burada bitirir.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/pisi/handlers"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// AuthMiddleware, admin endpoint'lerini JWT ile korur.
type AuthMiddleware struct {
	authService services.AuthService
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: authService}
}

// Require, geçerli bir access token zorunlu kılar.
//
// Header formatı: Authorization: Bearer <token>
//
// Token geçerliyse admin (*models.User) ve oturum (*models.CurrentSession)
// context'e eklenir. Değilse 401 döner, next çağrılmaz.
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
			return
		}

		session, err := m.authService.Authenticate(r.Context(), tokenString)
		if err != nil {
			pkg.ErrorFor(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), handlers.UserContextKey, &session.User)
		ctx = context.WithValue(ctx, handlers.SessionContextKey, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

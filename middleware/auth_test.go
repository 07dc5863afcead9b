package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/handlers"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/services"
)

func newAuthService(t *testing.T) (services.AuthService, string) {
	t.Helper()

	db, err := database.NewInMemory(database.Migrations())
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	svc := services.NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		"middleware-secret",
		15*time.Minute,
		time.Hour,
	)

	ctx := context.Background()
	if _, err := svc.EnsureAdmin(ctx, &models.CreateAdminRequest{Email: "admin@pisi.test", Password: "kahvalti123"}); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@pisi.test", Password: "kahvalti123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	return svc, tokens.AccessToken
}

func TestRequireAuth(t *testing.T) {
	svc, token := newAuthService(t)
	mw := NewAuthMiddleware(svc)

	var seen *models.User
	protected := mw.Require(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = handlers.CurrentUser(r)
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seen = nil
			req := httptest.NewRequest(http.MethodGet, "/api/admin/messages", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			protected.ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
			if tt.want == http.StatusNoContent {
				if seen == nil || seen.Email != "admin@pisi.test" {
					t.Fatalf("context user = %+v", seen)
				}
			} else if seen != nil {
				t.Fatal("next handler called without valid token")
			}
		})
	}
}

func TestRequireAuthExposesSession(t *testing.T) {
	svc, token := newAuthService(t)
	mw := NewAuthMiddleware(svc)
	authHandler := handlers.NewAuthHandler(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mw.Require(http.HandlerFunc(authHandler.Session)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "admin@pisi.test") {
		t.Fatalf("body = %s, want admin email", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("body leaks password field: %s", rec.Body.String())
	}
}

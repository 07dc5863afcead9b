package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
)

func newAuthFixture(t *testing.T) AuthService {
	t.Helper()
	db := newTestDB(t)
	svc := NewAuthService(
		repository.NewSQLiteUserRepo(db.Conn),
		repository.NewSQLiteSessionRepo(db.Conn),
		"test-secret",
		15*time.Minute,
		24*time.Hour,
	)
	created, err := svc.EnsureAdmin(context.Background(), &models.CreateAdminRequest{
		Email:    "Admin@Pisi.test",
		Password: "kahvalti123",
	})
	if err != nil || !created {
		t.Fatalf("EnsureAdmin = %v, %v", created, err)
	}
	return svc
}

func TestAuthLoginRefreshLogout(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@pisi.test", Password: "kahvalti123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		t.Fatal("empty tokens")
	}

	session, err := svc.Authenticate(ctx, tokens.AccessToken)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if session.User.Email != "admin@pisi.test" || session.User.PasswordHash != "" {
		t.Fatalf("session user = %+v", session.User)
	}

	rotated, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if rotated.RefreshToken == tokens.RefreshToken {
		t.Fatal("refresh token not rotated")
	}
	if _, err := svc.RefreshToken(ctx, tokens.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("reused refresh token err = %v", err)
	}

	if err := svc.Logout(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.RefreshToken(ctx, rotated.RefreshToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("refresh after logout err = %v", err)
	}
}

func TestAuthLoginRejectsWrongPassword(t *testing.T) {
	svc := newAuthFixture(t)
	ctx := context.Background()

	for _, req := range []*models.LoginRequest{
		{Email: "admin@pisi.test", Password: "wrong-password"},
		{Email: "nobody@pisi.test", Password: "kahvalti123"},
	} {
		_, err := svc.Login(ctx, req)
		var uerr *pkg.UserError
		if !errors.As(err, &uerr) || uerr.Key != "auth.invalidCredentials" {
			t.Errorf("Login(%s) err = %v", req.Email, err)
		}
	}
}

func TestAuthRejectsForeignToken(t *testing.T) {
	svc := newAuthFixture(t)
	other := NewAuthService(nil, nil, "other-secret", time.Minute, time.Hour)
	ctx := context.Background()

	tokens, err := svc.Login(ctx, &models.LoginRequest{Email: "admin@pisi.test", Password: "kahvalti123"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := other.ValidateAccessToken(tokens.AccessToken); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("foreign secret err = %v", err)
	}
	if _, err := svc.Authenticate(ctx, "garbage"); !errors.Is(err, pkg.ErrUnauthorized) {
		t.Fatalf("garbage token err = %v", err)
	}
}

func TestAuthEnsureAdminOnlyOnce(t *testing.T) {
	svc := newAuthFixture(t)
	created, err := svc.EnsureAdmin(context.Background(), &models.CreateAdminRequest{
		Email:    "second@pisi.test",
		Password: "kahvalti123",
	})
	if err != nil || created {
		t.Fatalf("second EnsureAdmin = %v, %v", created, err)
	}
}

package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims, access token'ın payload'ıdır.
// Middleware ve ws katmanı token'ı DB'ye gitmeden doğrular.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

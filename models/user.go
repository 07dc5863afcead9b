// Package models, uygulamanın domain modellerini tanımlar.
//
// Her model veritabanındaki bir tablonun Go karşılığıdır ve aynı zamanda
// API'den gelen/giden verinin şeklini belirler. Opsiyonel alanlar pointer'dır
// (*string, *int) — nil "değer yok" demektir ve JSON'da null olarak görünür.
package models

import (
	"strings"
	"time"
)

// User, admin paneline giriş yapabilen bir yöneticiyi temsil eder.
// Site ziyaretçileri kullanıcı değildir, sadece form gönderirler.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  *string   `json:"display_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// LoginRequest, admin girişi için gelen veri.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

// Validate, LoginRequest'in geçerli olup olmadığını kontrol eder.
func (r *LoginRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	return validateStruct(r)
}

// RefreshRequest, access token yenileme isteği.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Validate, RefreshRequest'in geçerli olup olmadığını kontrol eder.
func (r *RefreshRequest) Validate() error {
	return validateStruct(r)
}

// CreateAdminRequest, ilk admin hesabı (bootstrap) için kullanılır.
type CreateAdminRequest struct {
	Email       string `validate:"required,email,max=254"`
	Password    string `validate:"required,min=8,max=128"`
	DisplayName string `validate:"max=64"`
}

// Validate, CreateAdminRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateAdminRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	return validateStruct(r)
}

// AuthTokens, başarılı login/refresh sonrası dönen token çifti.
type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    int64  `json:"expires_at"` // access token bitişi, unix saniye
	User         User   `json:"user"`
}

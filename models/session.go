package models

import "time"

// Session, bir admin oturumunun refresh token kaydıdır.
// Logout bu satırı siler, süresi dolanlar zamanlanmış görevle temizlenir.
type Session struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RefreshToken string    `json:"-"`
	ExpiresAt    time.Time `json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// CurrentSession, "şu an kim giriş yapmış" sorgusunun cevabıdır.
type CurrentSession struct {
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expires_at"`
}

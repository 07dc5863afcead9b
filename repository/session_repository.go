package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// SessionRepository, refresh token oturumları için veritabanı işlemleri.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByRefreshToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByID(ctx context.Context, id string) error
	// DeleteExpired, süresi dolmuş oturumları siler ve silinen satır sayısını döner.
	DeleteExpired(ctx context.Context) (int64, error)
}

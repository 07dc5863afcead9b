package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// MessageRepository, iletişim mesajları için veritabanı işlemleri.
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	GetByID(ctx context.Context, id string) (*models.Message, error)
	// List, mesajları yeniden eskiye döner. ReadFilterUnread sadece okunmamışları getirir.
	List(ctx context.Context, filter models.ReadFilter) ([]*models.Message, error)
	SetRead(ctx context.Context, id string, isRead bool) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

// FranchiseRepository, franchise başvuruları için veritabanı işlemleri.
type FranchiseRepository interface {
	Create(ctx context.Context, app *models.FranchiseApplication) error
	GetByID(ctx context.Context, id string) (*models.FranchiseApplication, error)
	List(ctx context.Context, filter models.ReadFilter) ([]*models.FranchiseApplication, error)
	SetRead(ctx context.Context, id string, isRead bool) error
	Delete(ctx context.Context, id string) error
	CountUnread(ctx context.Context) (int, error)
}

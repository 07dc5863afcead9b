// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz, buradaki interface'ler üzerinden çalışır.
// Her interface'in SQLite implementasyonu sqlite_*.go dosyalarındadır ve
// constructor'lar interface döner.
package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// UserRepository, admin kullanıcıları için veritabanı işlemleri.
// Her method context.Context alır — istek iptal edilirse sorgu da durur.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int, error)
}

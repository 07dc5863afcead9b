package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// AboutRepository, tek satırlık hakkımızda içeriği.
type AboutRepository interface {
	Get(ctx context.Context) (*models.AboutPage, error)
	Upsert(ctx context.Context, page *models.AboutPage) error
}

// SettingsRepository, site_settings key/value tablosu.
type SettingsRepository interface {
	GetAll(ctx context.Context) ([]models.SiteSetting, error)
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	// UpsertMany, verilen tüm anahtarları tek transaction'da yazar.
	UpsertMany(ctx context.Context, values map[string]string) error
}

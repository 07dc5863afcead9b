package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// UnlimitedMenuRepository, sınırsız kahvaltı menüleri için veritabanı işlemleri.
type UnlimitedMenuRepository interface {
	Create(ctx context.Context, menu *models.UnlimitedMenu) error
	GetByID(ctx context.Context, id string) (*models.UnlimitedMenu, error)
	List(ctx context.Context, activeOnly bool) ([]*models.UnlimitedMenu, error)
	Update(ctx context.Context, menu *models.UnlimitedMenu) error
	Delete(ctx context.Context, id string) error
}

// MenuItemRepository, sınırsız menü öğeleri için veritabanı işlemleri.
// Position her menü içinde ayrı bir koleksiyondur.
type MenuItemRepository interface {
	Create(ctx context.Context, item *models.MenuItem) error
	GetByID(ctx context.Context, id string) (*models.MenuItem, error)
	ListByMenu(ctx context.Context, menuID string) ([]*models.MenuItem, error)
	// ListFeatured, aktif menülerdeki öne çıkan öğeleri döner.
	ListFeatured(ctx context.Context) ([]*models.MenuItem, error)
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id string) error
	GetMaxPosition(ctx context.Context, menuID string) (int, error)
	UpdatePosition(ctx context.Context, menuID, id string, position int) error
	UpdatePositions(ctx context.Context, menuID string, items []models.PositionUpdate) error
	// ListCategories, kullanılan kategorileri alfabetik döner.
	ListCategories(ctx context.Context) ([]string, error)
	// Search, isim/kategori/açıklama üzerinde LIKE araması (Meilisearch yoksa).
	Search(ctx context.Context, query string, limit int) ([]models.MenuSearchHit, error)
	// ListSearchDocuments, arama index'ine yazılacak tüm öğeleri döner.
	ListSearchDocuments(ctx context.Context) ([]models.MenuSearchHit, error)
}

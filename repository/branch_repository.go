package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// BranchRepository, şubeler için veritabanı işlemleri.
type BranchRepository interface {
	Create(ctx context.Context, branch *models.Branch) error
	GetByID(ctx context.Context, id string) (*models.Branch, error)
	GetBySlug(ctx context.Context, slug string) (*models.Branch, error)
	List(ctx context.Context, filter models.ActiveFilter) ([]*models.Branch, error)
	Update(ctx context.Context, branch *models.Branch) error
	Delete(ctx context.Context, id string) error
	// SlugExists, slug'ın excludeID dışında bir şubede kullanılıp kullanılmadığını döner.
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	GetMaxPosition(ctx context.Context) (int, error)
	UpdatePositions(ctx context.Context, items []models.PositionUpdate) error
}

// BranchGalleryRepository, şube galerisi görselleri için veritabanı işlemleri.
type BranchGalleryRepository interface {
	Create(ctx context.Context, img *models.BranchGalleryImage) error
	GetByID(ctx context.Context, id string) (*models.BranchGalleryImage, error)
	ListByBranch(ctx context.Context, branchID string) ([]*models.BranchGalleryImage, error)
	Delete(ctx context.Context, id string) error
	GetMaxPosition(ctx context.Context, branchID string) (int, error)
	UpdatePositions(ctx context.Context, branchID string, items []models.PositionUpdate) error
}

// BranchMenuRepository, şubeye özel menü öğeleri için veritabanı işlemleri.
type BranchMenuRepository interface {
	Create(ctx context.Context, item *models.BranchMenuItem) error
	GetByID(ctx context.Context, id string) (*models.BranchMenuItem, error)
	ListByBranch(ctx context.Context, branchID string) ([]*models.BranchMenuItem, error)
	Update(ctx context.Context, item *models.BranchMenuItem) error
	Delete(ctx context.Context, id string) error
	GetMaxPosition(ctx context.Context, branchID string) (int, error)
	UpdatePositions(ctx context.Context, branchID string, items []models.PositionUpdate) error
}

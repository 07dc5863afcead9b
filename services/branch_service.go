package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/slug"
	"github.com/akinalp/pisi/repository"
)

// BranchService, şubeler, şube galerileri ve şube menüleri için iş mantığı.
type BranchService interface {
	List(ctx context.Context, filter models.ActiveFilter) ([]*models.Branch, error)
	Get(ctx context.Context, id string) (*models.Branch, error)
	// GetDetail, admin paneli için şube + galeri + menü (aktiflik filtresi yok).
	GetDetail(ctx context.Context, id string) (*models.BranchDetail, error)
	// GetPublicDetail, slug ile aktif bir şubenin sayfasını döner.
	GetPublicDetail(ctx context.Context, slug string) (*models.BranchDetail, error)
	Create(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error)
	Update(ctx context.Context, id string, req *models.UpdateBranchRequest) (*models.Branch, error)
	Delete(ctx context.Context, id string) error
	ToggleActive(ctx context.Context, id string) (*models.Branch, error)
	Reorder(ctx context.Context, req *models.ReorderRequest) ([]*models.Branch, error)

	AddGalleryImage(ctx context.Context, branchID string, data []byte) (*models.BranchGalleryImage, error)
	DeleteGalleryImage(ctx context.Context, branchID, imageID string) error
	ReorderGallery(ctx context.Context, branchID string, req *models.ReorderRequest) ([]*models.BranchGalleryImage, error)

	CreateMenuItem(ctx context.Context, branchID string, req *models.CreateBranchMenuItemRequest) (*models.BranchMenuItem, error)
	UpdateMenuItem(ctx context.Context, branchID, itemID string, req *models.UpdateBranchMenuItemRequest) (*models.BranchMenuItem, error)
	DeleteMenuItem(ctx context.Context, branchID, itemID string) error
	ReorderMenu(ctx context.Context, branchID string, req *models.ReorderRequest) ([]*models.BranchMenuItem, error)
}

type branchService struct {
	branchRepo  repository.BranchRepository
	galleryRepo repository.BranchGalleryRepository
	menuRepo    repository.BranchMenuRepository
	uploads     UploadService
}

// NewBranchService, constructor.
func NewBranchService(
	branchRepo repository.BranchRepository,
	galleryRepo repository.BranchGalleryRepository,
	menuRepo repository.BranchMenuRepository,
	uploads UploadService,
) BranchService {
	return &branchService{
		branchRepo:  branchRepo,
		galleryRepo: galleryRepo,
		menuRepo:    menuRepo,
		uploads:     uploads,
	}
}

func (s *branchService) List(ctx context.Context, filter models.ActiveFilter) ([]*models.Branch, error) {
	return s.branchRepo.List(ctx, filter)
}

func (s *branchService) Get(ctx context.Context, id string) (*models.Branch, error) {
	return s.branchRepo.GetByID(ctx, id)
}

func (s *branchService) GetDetail(ctx context.Context, id string) (*models.BranchDetail, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, branch)
}

func (s *branchService) GetPublicDetail(ctx context.Context, slug string) (*models.BranchDetail, error) {
	branch, err := s.branchRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !branch.IsActive {
		return nil, pkg.ErrNotFound
	}
	return s.detail(ctx, branch)
}

func (s *branchService) detail(ctx context.Context, branch *models.Branch) (*models.BranchDetail, error) {
	gallery, err := s.galleryRepo.ListByBranch(ctx, branch.ID)
	if err != nil {
		return nil, err
	}
	menu, err := s.menuRepo.ListByBranch(ctx, branch.ID)
	if err != nil {
		return nil, err
	}
	return &models.BranchDetail{Branch: *branch, Gallery: gallery, MenuItems: menu}, nil
}

// uniqueSlug, isimden slug üretir. Çakışma varsa "-2", "-3" ... eklenir.
// excludeID, güncellenen şubenin kendi slug'ını çakışma saymamak içindir.
func (s *branchService) uniqueSlug(ctx context.Context, name, excludeID string) (string, error) {
	return slug.Unique(slug.Make(name), func(candidate string) (bool, error) {
		return s.branchRepo.SlugExists(ctx, candidate, excludeID)
	})
}

func (s *branchService) Create(ctx context.Context, req *models.CreateBranchRequest) (*models.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	branchSlug, err := s.uniqueSlug(ctx, req.Name, "")
	if err != nil {
		return nil, err
	}

	maxPos, err := s.branchRepo.GetMaxPosition(ctx)
	if err != nil {
		return nil, err
	}
	pos := maxPos + 1

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	branch := &models.Branch{
		Name:         req.Name,
		Slug:         branchSlug,
		City:         req.City,
		District:     req.District,
		Address:      req.Address,
		Phone:        req.Phone,
		MapsURL:      req.MapsURL,
		WorkingHours: req.WorkingHours,
		ImageURL:     req.ImageURL,
		IsActive:     isActive,
		Position:     &pos,
	}
	if err := s.branchRepo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *branchService) Update(ctx context.Context, id string, req *models.UpdateBranchRequest) (*models.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != branch.Name {
		branchSlug, err := s.uniqueSlug(ctx, *req.Name, id)
		if err != nil {
			return nil, err
		}
		branch.Name = *req.Name
		branch.Slug = branchSlug
	}
	if req.City != nil {
		branch.City = *req.City
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.District != nil {
		branch.District = emptyToNil(req.District)
	}
	if req.Phone != nil {
		branch.Phone = emptyToNil(req.Phone)
	}
	if req.MapsURL != nil {
		branch.MapsURL = emptyToNil(req.MapsURL)
	}
	if req.WorkingHours != nil {
		branch.WorkingHours = emptyToNil(req.WorkingHours)
	}
	if req.ImageURL != nil {
		branch.ImageURL = emptyToNil(req.ImageURL)
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}

	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

// Delete, şubeyi siler. Galeri ve menü satırları FK cascade ile silinir,
// galeri nesneleri bucket'tan best-effort kaldırılır.
func (s *branchService) Delete(ctx context.Context, id string) error {
	if _, err := s.branchRepo.GetByID(ctx, id); err != nil {
		return err
	}

	images, err := s.galleryRepo.ListByBranch(ctx, id)
	if err != nil {
		return err
	}

	if err := s.branchRepo.Delete(ctx, id); err != nil {
		return err
	}

	for _, img := range images {
		s.uploads.Remove(ctx, img.StorageKey)
	}
	return nil
}

func (s *branchService) ToggleActive(ctx context.Context, id string) (*models.Branch, error) {
	branch, err := s.branchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	branch.IsActive = !branch.IsActive
	if err := s.branchRepo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return branch, nil
}

func (s *branchService) Reorder(ctx context.Context, req *models.ReorderRequest) ([]*models.Branch, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.branchRepo.UpdatePositions(ctx, req.Items); err != nil {
		return nil, err
	}
	return s.branchRepo.List(ctx, models.ActiveFilterAll)
}

// ─── Branch gallery ───

func (s *branchService) AddGalleryImage(ctx context.Context, branchID string, data []byte) (*models.BranchGalleryImage, error) {
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		return nil, err
	}

	stored, err := s.uploads.Store(ctx, "branches/"+branchID, data)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.galleryRepo.GetMaxPosition(ctx, branchID)
	if err != nil {
		s.uploads.Remove(ctx, stored.Key)
		return nil, err
	}
	pos := maxPos + 1

	img := &models.BranchGalleryImage{
		BranchID:   branchID,
		ImageURL:   stored.URL,
		StorageKey: stored.Key,
		Position:   &pos,
	}
	if err := s.galleryRepo.Create(ctx, img); err != nil {
		s.uploads.Remove(ctx, stored.Key)
		return nil, err
	}
	return img, nil
}

func (s *branchService) DeleteGalleryImage(ctx context.Context, branchID, imageID string) error {
	img, err := s.galleryRepo.GetByID(ctx, imageID)
	if err != nil {
		return err
	}
	if img.BranchID != branchID {
		return pkg.ErrNotFound
	}

	if err := s.galleryRepo.Delete(ctx, imageID); err != nil {
		return err
	}
	s.uploads.Remove(ctx, img.StorageKey)
	return nil
}

func (s *branchService) ReorderGallery(ctx context.Context, branchID string, req *models.ReorderRequest) ([]*models.BranchGalleryImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.galleryRepo.UpdatePositions(ctx, branchID, req.Items); err != nil {
		return nil, err
	}
	return s.galleryRepo.ListByBranch(ctx, branchID)
}

// ─── Branch menu ───

func (s *branchService) CreateMenuItem(ctx context.Context, branchID string, req *models.CreateBranchMenuItemRequest) (*models.BranchMenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.branchRepo.GetByID(ctx, branchID); err != nil {
		return nil, err
	}

	maxPos, err := s.menuRepo.GetMaxPosition(ctx, branchID)
	if err != nil {
		return nil, err
	}
	pos := maxPos + 1

	item := &models.BranchMenuItem{
		BranchID:    branchID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Position:    &pos,
	}
	if err := s.menuRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *branchService) menuItemOf(ctx context.Context, branchID, itemID string) (*models.BranchMenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.BranchID != branchID {
		return nil, fmt.Errorf("%w: menu item does not belong to branch", pkg.ErrNotFound)
	}
	return item, nil
}

func (s *branchService) UpdateMenuItem(ctx context.Context, branchID, itemID string, req *models.UpdateBranchMenuItemRequest) (*models.BranchMenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.menuItemOf(ctx, branchID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = emptyToNil(req.Description)
	}
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.Category != nil {
		item.Category = emptyToNil(req.Category)
	}
	if req.ImageURL != nil {
		item.ImageURL = emptyToNil(req.ImageURL)
	}

	if err := s.menuRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *branchService) DeleteMenuItem(ctx context.Context, branchID, itemID string) error {
	if _, err := s.menuItemOf(ctx, branchID, itemID); err != nil {
		return err
	}
	return s.menuRepo.Delete(ctx, itemID)
}

func (s *branchService) ReorderMenu(ctx context.Context, branchID string, req *models.ReorderRequest) ([]*models.BranchMenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.menuRepo.UpdatePositions(ctx, branchID, req.Items); err != nil {
		return nil, err
	}
	return s.menuRepo.ListByBranch(ctx, branchID)
}

// emptyToNil, "" değerini alanı temizleme isteği olarak yorumlar.
func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

// isNotFound, repository'nin bulunamadı hatası için kısayol.
func isNotFound(err error) bool {
	return errors.Is(err, pkg.ErrNotFound)
}

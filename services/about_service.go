package services

import (
	"context"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/repository"
)

// AboutService, "Hakkımızda" sayfasının iş mantığı.
type AboutService interface {
	Get(ctx context.Context) (*models.AboutPage, error)
	Update(ctx context.Context, req *models.UpdateAboutRequest) (*models.AboutPage, error)
	// UploadImage, görseli bucket'a yazar ve sayfanın image_url'ini günceller.
	UploadImage(ctx context.Context, data []byte) (*models.AboutPage, error)
}

type aboutService struct {
	aboutRepo repository.AboutRepository
	uploads   UploadService
}

// NewAboutService, constructor.
func NewAboutService(aboutRepo repository.AboutRepository, uploads UploadService) AboutService {
	return &aboutService{aboutRepo: aboutRepo, uploads: uploads}
}

// Get, sayfayı döner. Henüz kaydedilmemişse boş bir sayfa döner.
func (s *aboutService) Get(ctx context.Context) (*models.AboutPage, error) {
	page, err := s.aboutRepo.Get(ctx)
	if isNotFound(err) {
		return &models.AboutPage{}, nil
	}
	return page, err
}

func (s *aboutService) Update(ctx context.Context, req *models.UpdateAboutRequest) (*models.AboutPage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	page, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		page.Title = *req.Title
	}
	if req.Content != nil {
		page.Content = *req.Content
	}
	if req.Subtitle != nil {
		page.Subtitle = emptyToNil(req.Subtitle)
	}
	if req.Mission != nil {
		page.Mission = emptyToNil(req.Mission)
	}
	if req.Vision != nil {
		page.Vision = emptyToNil(req.Vision)
	}
	if req.ImageURL != nil {
		page.ImageURL = emptyToNil(req.ImageURL)
	}

	if err := s.aboutRepo.Upsert(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *aboutService) UploadImage(ctx context.Context, data []byte) (*models.AboutPage, error) {
	stored, err := s.uploads.Store(ctx, "about", data)
	if err != nil {
		return nil, err
	}

	page, err := s.Get(ctx)
	if err != nil {
		s.uploads.Remove(ctx, stored.Key)
		return nil, err
	}
	page.ImageURL = &stored.URL

	if err := s.aboutRepo.Upsert(ctx, page); err != nil {
		s.uploads.Remove(ctx, stored.Key)
		return nil, err
	}
	return page, nil
}

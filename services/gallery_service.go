package services

import (
	"context"
	"log"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
)

// GalleryService, galeri görsellerinin iş mantığı.
//
// Hero kuralları:
//   - En fazla bir görsel hero_main olabilir. Bir görsel main yapılınca diğerleri düşer.
//   - hero_main olmayan en fazla MaxHeroSection görsel hero_section olabilir.
//   - hero_main olan görselin hero_section'ı değiştirilemez.
type GalleryService interface {
	List(ctx context.Context) ([]*models.GalleryItem, error)
	Get(ctx context.Context, id string) (*models.GalleryItem, error)
	// Create, görseli işleyip bucket'a yazar ve listenin sonuna ekler.
	Create(ctx context.Context, req *models.CreateGalleryItemRequest, data []byte) (*models.GalleryItem, error)
	Update(ctx context.Context, id string, req *models.UpdateGalleryItemRequest) (*models.GalleryItem, error)
	Delete(ctx context.Context, id string) error
	// Reorder, istemcinin gönderdiği tüm sırayı tek transaction'da yazar.
	Reorder(ctx context.Context, req *models.ReorderRequest) ([]*models.GalleryItem, error)
	ToggleHeroMain(ctx context.Context, id string) (*models.GalleryItem, error)
	ToggleHeroSection(ctx context.Context, id string) (*models.GalleryItem, error)
	Hero(ctx context.Context) (*models.HeroShowcase, error)
	Categories() []string
}

type galleryService struct {
	galleryRepo repository.GalleryRepository
	uploads     UploadService
	drafts      DraftSync
	categories  []string
}

// NewGalleryService, constructor. categories yükleme formunda önerilen kategorilerdir.
func NewGalleryService(
	galleryRepo repository.GalleryRepository,
	uploads UploadService,
	drafts DraftSync,
	categories []string,
) GalleryService {
	if len(categories) == 0 {
		categories = models.GalleryCategories
	}
	return &galleryService{
		galleryRepo: galleryRepo,
		uploads:     uploads,
		drafts:      drafts,
		categories:  categories,
	}
}

func (s *galleryService) List(ctx context.Context) ([]*models.GalleryItem, error) {
	return s.galleryRepo.List(ctx)
}

func (s *galleryService) Get(ctx context.Context, id string) (*models.GalleryItem, error) {
	return s.galleryRepo.GetByID(ctx, id)
}

func (s *galleryService) Categories() []string {
	return s.categories
}

func (s *galleryService) Create(ctx context.Context, req *models.CreateGalleryItemRequest, data []byte) (*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	img, err := s.uploads.Store(ctx, "gallery", data)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.galleryRepo.GetMaxPosition(ctx)
	if err != nil {
		s.uploads.Remove(ctx, img.Key)
		return nil, err
	}
	pos := maxPos + 1

	item := &models.GalleryItem{
		ImageURL:   img.URL,
		StorageKey: img.Key,
		Title:      req.Title,
		Category:   req.Category,
		Position:   &pos,
	}
	if err := s.galleryRepo.Create(ctx, item); err != nil {
		s.uploads.Remove(ctx, img.Key)
		return nil, err
	}

	s.drafts.ItemAdded(CollectionGallery, item)
	return item, nil
}

func (s *galleryService) Update(ctx context.Context, id string, req *models.UpdateGalleryItemRequest) (*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if *req.Title == "" {
			item.Title = nil
		} else {
			item.Title = req.Title
		}
	}
	if req.Category != nil {
		item.Category = *req.Category
	}

	if err := s.galleryRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *galleryService) Delete(ctx context.Context, id string) error {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.drafts.ItemRemoved(CollectionGallery, id)
	s.uploads.Remove(ctx, item.StorageKey)
	return nil
}

func (s *galleryService) Reorder(ctx context.Context, req *models.ReorderRequest) ([]*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.galleryRepo.UpdatePositions(ctx, req.Items); err != nil {
		return nil, err
	}
	return s.galleryRepo.List(ctx)
}

// ToggleHeroMain, görselin hero_main değerini tersine çevirir.
//
// İki ayrı yazma eşzamanlı gönderilir: diğer tüm görsellerin hero_main'i
// false yapılır ve bu görselin değeri çevrilir. Transaction kullanılmaz.
func (s *galleryService) ToggleHeroMain(ctx context.Context, id string) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	next := !item.HeroMain

	var g errgroup.Group
	g.Go(func() error { return s.galleryRepo.ClearHeroMainExcept(ctx, id) })
	g.Go(func() error { return s.galleryRepo.SetHeroMain(ctx, id, next) })
	if err := g.Wait(); err != nil {
		log.Printf("[gallery] hero main toggle failed for %s: %v", id, err)
		return nil, err
	}

	updated, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.drafts.ApplyHero(updated)
	return updated, nil
}

// ToggleHeroSection, görselin hero_section değerini tersine çevirir.
// Açarken kota doluysa yazma yapılmadan gallery.heroSectionLimit döner.
func (s *galleryService) ToggleHeroSection(ctx context.Context, id string) (*models.GalleryItem, error) {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item.HeroMain {
		return nil, pkg.NewUserError(pkg.ErrBadRequest, "gallery.heroSectionOnMain", nil)
	}

	if item.HeroSection {
		if err := s.galleryRepo.SetHeroSection(ctx, id, false); err != nil {
			return nil, err
		}
	} else {
		count, err := s.galleryRepo.CountHeroSection(ctx, id)
		if err != nil {
			return nil, err
		}
		if count >= models.MaxHeroSection {
			return nil, errHeroSectionLimit()
		}

		// Kontrol ile yazma arasında başka bir istek kotayı doldurmuş olabilir,
		// EnableHeroSection koşulu tek ifadede tekrar kontrol eder.
		ok, err := s.galleryRepo.EnableHeroSection(ctx, id, models.MaxHeroSection)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errHeroSectionLimit()
		}
	}

	updated, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.drafts.ApplyHero(updated)
	return updated, nil
}

func errHeroSectionLimit() error {
	return pkg.NewUserError(pkg.ErrBadRequest, "gallery.heroSectionLimit", map[string]string{
		"max": strconv.Itoa(models.MaxHeroSection),
	})
}

// Hero, ana sayfanın hero bölümünü görüntüleme sırasıyla döner.
func (s *galleryService) Hero(ctx context.Context) (*models.HeroShowcase, error) {
	items, err := s.galleryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	hero := &models.HeroShowcase{Sections: []*models.GalleryItem{}}
	for _, it := range items {
		switch it.HeroState() {
		case models.HeroMain:
			if hero.Main == nil {
				hero.Main = it
			}
		case models.HeroSmall:
			hero.Sections = append(hero.Sections, it)
		}
	}
	return hero, nil
}

package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/akinalp/pisi/models"
)

// HomeService, public ana sayfanın verisini tek istekte toplar.
type HomeService interface {
	Get(ctx context.Context) (*models.HomePage, error)
}

type homeService struct {
	gallery  GalleryService
	menus    MenuService
	branches BranchService
	settings SettingsService
}

// NewHomeService, constructor.
func NewHomeService(gallery GalleryService, menus MenuService, branches BranchService, settings SettingsService) HomeService {
	return &homeService{gallery: gallery, menus: menus, branches: branches, settings: settings}
}

// Get, hero, öne çıkan menü öğeleri, aktif şubeler ve ayarları paralel okur.
func (s *homeService) Get(ctx context.Context) (*models.HomePage, error) {
	page := &models.HomePage{}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		hero, err := s.gallery.Hero(ctx)
		if err != nil {
			return err
		}
		page.Hero = *hero
		return nil
	})
	g.Go(func() error {
		featured, err := s.menus.Featured(ctx)
		page.Featured = featured
		return err
	})
	g.Go(func() error {
		branches, err := s.branches.List(ctx, models.ActiveFilterActive)
		page.Branches = branches
		return err
	})
	g.Go(func() error {
		settings, err := s.settings.Public(ctx)
		page.Settings = settings
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if page.Featured == nil {
		page.Featured = []*models.MenuItem{}
	}
	if page.Branches == nil {
		page.Branches = []*models.Branch{}
	}
	return page, nil
}

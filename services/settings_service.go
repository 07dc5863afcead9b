package services

import (
	"context"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
)

// SettingsService, site ayarlarının (puan, yorum sayısı, çalışma saatleri...) iş mantığı.
type SettingsService interface {
	GetAll(ctx context.Context) (map[string]string, error)
	Get(ctx context.Context, key string) (*models.SiteSetting, error)
	Update(ctx context.Context, req *models.UpdateSettingsRequest) (map[string]string, error)
	// Public, sadece bilinen anahtarları döner. Eski sürümlerden kalan anahtarlar dışarı verilmez.
	Public(ctx context.Context) (map[string]string, error)
}

type settingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService, constructor.
func NewSettingsService(settingsRepo repository.SettingsRepository) SettingsService {
	return &settingsService{settingsRepo: settingsRepo}
}

func (s *settingsService) GetAll(ctx context.Context) (map[string]string, error) {
	settings, err := s.settingsRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(settings))
	for _, st := range settings {
		values[st.Key] = st.Value
	}
	return values, nil
}

func (s *settingsService) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	if !models.IsKnownSetting(key) {
		return nil, pkg.NewUserError(pkg.ErrNotFound, "settings.unknownKey", map[string]string{"key": key})
	}
	return s.settingsRepo.Get(ctx, key)
}

func (s *settingsService) Update(ctx context.Context, req *models.UpdateSettingsRequest) (map[string]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.UpsertMany(ctx, req.Values); err != nil {
		return nil, err
	}
	return s.GetAll(ctx)
}

func (s *settingsService) Public(ctx context.Context) (map[string]string, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for key := range all {
		if !models.IsKnownSetting(key) {
			delete(all, key)
		}
	}
	return all, nil
}

package repository

import (
	"context"

	"github.com/akinalp/pisi/models"
)

// GalleryRepository, galeri görselleri için veritabanı işlemleri.
type GalleryRepository interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id string) (*models.GalleryItem, error)
	// List, görselleri görüntüleme sırasında döner (position, NULL'lar sonda).
	List(ctx context.Context) ([]*models.GalleryItem, error)
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id string) error
	GetMaxPosition(ctx context.Context) (int, error)

	// UpdatePosition, tek bir görselin position'ını yazar. Sıralama kaydı
	// her satır için ayrı ve eşzamanlı çağrılır.
	UpdatePosition(ctx context.Context, id string, position int) error
	// UpdatePositions, tüm sırayı tek transaction'da yazar.
	UpdatePositions(ctx context.Context, items []models.PositionUpdate) error

	SetHeroMain(ctx context.Context, id string, value bool) error
	// ClearHeroMainExcept, id dışındaki tüm görsellerin hero_main'ini false yapar.
	// Main'den düşen görselin hero_section'ı da sıfırlanır.
	ClearHeroMainExcept(ctx context.Context, id string) error
	// CountHeroSection, hero_section = true AND hero_main = false olan görsel sayısı.
	// excludeID verilirse o görsel sayılmaz.
	CountHeroSection(ctx context.Context, excludeID string) (int, error)
	SetHeroSection(ctx context.Context, id string, value bool) error
	// EnableHeroSection, kota dolmamışsa ve görsel hero_main değilse hero_section'ı açar.
	// Kontrol ve yazma tek SQL ifadesidir. Koşul sağlanmazsa false döner.
	EnableHeroSection(ctx context.Context, id string, max int) (bool, error)
}

package models

import (
	"strings"
	"time"
)

// HeroState, bir galeri görselinin ana sayfadaki hero durumudur.
type HeroState string

const (
	HeroNone  HeroState = "none"  // hero'da gösterilmez
	HeroSmall HeroState = "small" // küçük hero görsellerinden biri
	HeroMain  HeroState = "main"  // tek büyük hero görseli
)

// MaxHeroSection, hero_main olmayan ve hero_section işaretli en fazla görsel sayısı.
const MaxHeroSection = 4

// GalleryItem, galeri tablosundaki bir görseli temsil eder.
//
// Position nil olabilir — nil position'lı görseller sıralamada en sona düşer.
// HeroSection ve HeroMain position'dan bağımsızdır.
type GalleryItem struct {
	ID          string    `json:"id"`
	ImageURL    string    `json:"image_url"`
	StorageKey  string    `json:"-"`
	Title       *string   `json:"title"`
	Category    string    `json:"category"`
	Position    *int      `json:"position"`
	HeroSection bool      `json:"hero_section"`
	HeroMain    bool      `json:"hero_main"`
	CreatedAt   time.Time `json:"created_at"`
}

func (g *GalleryItem) ItemID() string           { return g.ID }
func (g *GalleryItem) ItemPosition() *int       { return g.Position }
func (g *GalleryItem) ItemCreatedAt() time.Time { return g.CreatedAt }

// HeroState, görselin hero durumunu döner.
// MAIN iken hero_section değeri yok sayılır.
func (g *GalleryItem) HeroState() HeroState {
	switch {
	case g.HeroMain:
		return HeroMain
	case g.HeroSection:
		return HeroSmall
	default:
		return HeroNone
	}
}

// CountsAgainstHeroCap, görselin 4'lük küçük hero kotasından yer kaplayıp kaplamadığını döner.
func (g *GalleryItem) CountsAgainstHeroCap() bool {
	return g.HeroSection && !g.HeroMain
}

// HeroShowcase, public ana sayfanın hero bölümü.
type HeroShowcase struct {
	Main     *GalleryItem   `json:"main"`
	Sections []*GalleryItem `json:"sections"`
}

// GalleryCategories, yükleme formunda önerilen kategoriler.
var GalleryCategories = []string{"Kahvaltı", "Mekan", "Lezzetler", "Etkinlik"}

// CreateGalleryItemRequest, yeni görsel kaydı oluşturma isteği.
// ImageURL ve StorageKey upload sonrası service tarafından doldurulur.
type CreateGalleryItemRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=120"`
	Category string  `json:"category" validate:"required,max=60"`
}

// Validate, CreateGalleryItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateGalleryItemRequest) Validate() error {
	r.Title = trimPtr(r.Title)
	r.Category = strings.TrimSpace(r.Category)
	return validateStruct(r)
}

// UpdateGalleryItemRequest, görsel başlığı/kategorisi güncelleme isteği.
// Pointer field'lar: nil = değiştirme.
type UpdateGalleryItemRequest struct {
	Title    *string `json:"title" validate:"omitempty,max=120"`
	Category *string `json:"category" validate:"omitempty,min=1,max=60"`
}

// Validate, UpdateGalleryItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateGalleryItemRequest) Validate() error {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if r.Category != nil {
		c := strings.TrimSpace(*r.Category)
		r.Category = &c
	}
	return validateStruct(r)
}

package models

import (
	"strings"
	"time"
)

// Branch, bir şubeyi temsil eder. Slug public URL'de kullanılır (/subeler/{slug}).
type Branch struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	City         string    `json:"city"`
	District     *string   `json:"district"`
	Address      string    `json:"address"`
	Phone        *string   `json:"phone"`
	MapsURL      *string   `json:"maps_url"`
	WorkingHours *string   `json:"working_hours"`
	ImageURL     *string   `json:"image_url"`
	IsActive     bool      `json:"is_active"`
	Position     *int      `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (b *Branch) ItemID() string           { return b.ID }
func (b *Branch) ItemPosition() *int       { return b.Position }
func (b *Branch) ItemCreatedAt() time.Time { return b.CreatedAt }

// BranchDetail, public şube sayfası: şube + galerisi + menüsü.
type BranchDetail struct {
	Branch
	Gallery   []*BranchGalleryImage `json:"gallery"`
	MenuItems []*BranchMenuItem     `json:"menu_items"`
}

// BranchGalleryImage, bir şubeye ait galeri görseli.
type BranchGalleryImage struct {
	ID         string    `json:"id"`
	BranchID   string    `json:"branch_id"`
	ImageURL   string    `json:"image_url"`
	StorageKey string    `json:"-"`
	Position   *int      `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

func (g *BranchGalleryImage) ItemID() string           { return g.ID }
func (g *BranchGalleryImage) ItemPosition() *int       { return g.Position }
func (g *BranchGalleryImage) ItemCreatedAt() time.Time { return g.CreatedAt }

// BranchMenuItem, şubeye özel menü öğesi (fiyatlı).
type BranchMenuItem struct {
	ID          string    `json:"id"`
	BranchID    string    `json:"branch_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Category    *string   `json:"category"`
	ImageURL    *string   `json:"image_url"`
	Position    *int      `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *BranchMenuItem) ItemID() string           { return m.ID }
func (m *BranchMenuItem) ItemPosition() *int       { return m.Position }
func (m *BranchMenuItem) ItemCreatedAt() time.Time { return m.CreatedAt }

// ActiveFilter, şube listesinin filtresi (tümü / aktif / pasif).
type ActiveFilter string

const (
	ActiveFilterAll      ActiveFilter = "all"
	ActiveFilterActive   ActiveFilter = "active"
	ActiveFilterInactive ActiveFilter = "inactive"
)

// ParseActiveFilter, query param'ı filtreye çevirir. Bilinmeyen değer "all" sayılır.
func ParseActiveFilter(s string) ActiveFilter {
	switch ActiveFilter(s) {
	case ActiveFilterActive, ActiveFilterInactive:
		return ActiveFilter(s)
	default:
		return ActiveFilterAll
	}
}

// CreateBranchRequest, yeni şube oluşturma isteği. Slug isimden üretilir.
type CreateBranchRequest struct {
	Name         string  `json:"name" validate:"required,max=120"`
	City         string  `json:"city" validate:"required,max=60"`
	District     *string `json:"district" validate:"omitempty,max=60"`
	Address      string  `json:"address" validate:"required,max=500"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	MapsURL      *string `json:"maps_url" validate:"omitempty,url"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=120"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=500"`
	IsActive     *bool   `json:"is_active"`
}

// Validate, CreateBranchRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateBranchRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.City = strings.TrimSpace(r.City)
	r.Address = strings.TrimSpace(r.Address)
	r.District = trimPtr(r.District)
	r.Phone = trimPtr(r.Phone)
	r.MapsURL = trimPtr(r.MapsURL)
	r.WorkingHours = trimPtr(r.WorkingHours)
	r.ImageURL = trimPtr(r.ImageURL)
	return validateStruct(r)
}

// UpdateBranchRequest, şube güncelleme isteği. nil alanlar değişmez.
// İsim değişirse slug yeniden üretilir.
type UpdateBranchRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=120"`
	City         *string `json:"city" validate:"omitempty,min=1,max=60"`
	District     *string `json:"district" validate:"omitempty,max=60"`
	Address      *string `json:"address" validate:"omitempty,min=1,max=500"`
	Phone        *string `json:"phone" validate:"omitempty,max=30"`
	MapsURL      *string `json:"maps_url" validate:"omitempty,url"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=120"`
	ImageURL     *string `json:"image_url" validate:"omitempty,max=500"`
	IsActive     *bool   `json:"is_active"`
}

// Validate, UpdateBranchRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateBranchRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	return validateStruct(r)
}

// CreateBranchMenuItemRequest, şube menüsüne öğe ekleme isteği.
type CreateBranchMenuItemRequest struct {
	Name        string   `json:"name" validate:"required,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=500"`
}

// Validate, CreateBranchMenuItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateBranchMenuItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = trimPtr(r.Description)
	r.Category = trimPtr(r.Category)
	r.ImageURL = trimPtr(r.ImageURL)
	if err := validateStruct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

// UpdateBranchMenuItemRequest, şube menü öğesi güncelleme isteği.
type UpdateBranchMenuItemRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category" validate:"omitempty,max=60"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=500"`
}

// Validate, UpdateBranchMenuItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateBranchMenuItemRequest) Validate() error {
	if err := validateStruct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

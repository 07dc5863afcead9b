package models

import (
	"math"
	"strings"
	"time"

	"github.com/akinalp/pisi/pkg"
)

// UnlimitedMenu, "sınırsız kahvaltı" menüsünü temsil eder.
// Bir menünün fiyatı ve altında sıralı menü öğeleri vardır.
type UnlimitedMenu struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UnlimitedMenuWithItems, public menü sayfası için menü + öğeleri.
type UnlimitedMenuWithItems struct {
	UnlimitedMenu
	Items []*MenuItem `json:"items"`
}

// MenuItem, sınırsız menüdeki bir öğedir (sıralı).
// Featured öğeler arasında bir kısıt yoktur, istenen kadar öğe öne çıkarılabilir.
type MenuItem struct {
	ID          string    `json:"id"`
	MenuID      string    `json:"menu_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"image_url"`
	Category    string    `json:"category"`
	Featured    bool      `json:"featured"`
	Position    *int      `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
}

func (m *MenuItem) ItemID() string           { return m.ID }
func (m *MenuItem) ItemPosition() *int       { return m.Position }
func (m *MenuItem) ItemCreatedAt() time.Time { return m.CreatedAt }

// CreateMenuRequest, yeni sınırsız menü oluşturma isteği.
type CreateMenuRequest struct {
	Title       string   `json:"title" validate:"required,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

// Validate, CreateMenuRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateMenuRequest) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = trimPtr(r.Description)
	if err := validateStruct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

// UpdateMenuRequest, menü güncelleme isteği. nil alanlar değişmez.
type UpdateMenuRequest struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Price       *float64 `json:"price"`
	IsActive    *bool    `json:"is_active"`
}

// Validate, UpdateMenuRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateMenuRequest) Validate() error {
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		r.Title = &t
	}
	if err := validateStruct(r); err != nil {
		return err
	}
	return validatePrice(r.Price)
}

// CreateMenuItemRequest, menüye yeni öğe ekleme isteği.
type CreateMenuItemRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
	Category    string  `json:"category" validate:"required,max=60"`
	Featured    bool    `json:"featured"`
}

// Validate, CreateMenuItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *CreateMenuItemRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = trimPtr(r.Description)
	r.ImageURL = trimPtr(r.ImageURL)
	return validateStruct(r)
}

// UpdateMenuItemRequest, menü öğesi güncelleme isteği. nil alanlar değişmez.
type UpdateMenuItemRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ImageURL    *string `json:"image_url" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=60"`
	Featured    *bool   `json:"featured"`
}

// Validate, UpdateMenuItemRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateMenuItemRequest) Validate() error {
	if r.Name != nil {
		n := strings.TrimSpace(*r.Name)
		r.Name = &n
	}
	if r.Category != nil {
		c := strings.TrimSpace(*r.Category)
		r.Category = &c
	}
	return validateStruct(r)
}

// MenuSearchHit, menü aramasının tek bir sonucu.
type MenuSearchHit struct {
	ID        string `json:"id"`
	MenuID    string `json:"menu_id"`
	MenuTitle string `json:"menu_title"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Featured  bool   `json:"featured"`
}

// validatePrice, fiyat verilmişse sonlu ve negatif olmayan bir sayı olmalı.
func validatePrice(p *float64) error {
	if p == nil {
		return nil
	}
	if math.IsNaN(*p) || math.IsInf(*p, 0) || *p < 0 {
		return pkg.NewUserError(pkg.ErrBadRequest, "menu.invalidPrice", nil)
	}
	return nil
}

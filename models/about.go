package models

import "time"

// AboutPageID, about_page tablosundaki tek satırın id'si.
const AboutPageID = "main"

// AboutPage, "Hakkımızda" sayfasının içeriği. Tabloda tek satır vardır.
type AboutPage struct {
	Title     string    `json:"title" yaml:"title"`
	Subtitle  *string   `json:"subtitle" yaml:"subtitle"`
	Content   string    `json:"content" yaml:"content"`
	Mission   *string   `json:"mission" yaml:"mission"`
	Vision    *string   `json:"vision" yaml:"vision"`
	ImageURL  *string   `json:"image_url" yaml:"image_url"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`
}

// UpdateAboutRequest, hakkımızda içeriğini güncelleme isteği. nil alanlar değişmez.
type UpdateAboutRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=150"`
	Subtitle *string `json:"subtitle" validate:"omitempty,max=250"`
	Content  *string `json:"content" validate:"omitempty,max=20000"`
	Mission  *string `json:"mission" validate:"omitempty,max=5000"`
	Vision   *string `json:"vision" validate:"omitempty,max=5000"`
	ImageURL *string `json:"image_url" validate:"omitempty,max=500"`
}

// Validate, UpdateAboutRequest'in geçerli olup olmadığını kontrol eder.
func (r *UpdateAboutRequest) Validate() error {
	return validateStruct(r)
}

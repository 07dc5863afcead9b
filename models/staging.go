package models

import "time"

// StagedUpload, seçilmiş ama henüz onaylanmamış bir görsel yüklemesidir.
// Dosya staging dizininde bekler, object storage'a onaydan sonra yazılır.
type StagedUpload struct {
	ID          string    `json:"id"`
	UserID      string    `json:"-"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Category    string    `json:"category"`
	Title       *string   `json:"title"`
	PreviewURL  string    `json:"preview_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// ConfirmStagedRequest, onay sırasında kategori/başlık değiştirilebilir.
type ConfirmStagedRequest struct {
	Category *string `json:"category" validate:"omitempty,min=1,max=60"`
	Title    *string `json:"title" validate:"omitempty,max=120"`
}

// Validate, ConfirmStagedRequest'in geçerli olup olmadığını kontrol eder.
func (r *ConfirmStagedRequest) Validate() error {
	r.Title = trimPtr(r.Title)
	return validateStruct(r)
}

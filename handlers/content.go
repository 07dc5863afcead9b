package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// ContentHandler, hakkımızda sayfası, site ayarları ve ana sayfa.
type ContentHandler struct {
	aboutService    services.AboutService
	settingsService services.SettingsService
	homeService     services.HomeService
	uploads         services.UploadService
}

// NewContentHandler, constructor.
func NewContentHandler(
	aboutService services.AboutService,
	settingsService services.SettingsService,
	homeService services.HomeService,
	uploads services.UploadService,
) *ContentHandler {
	return &ContentHandler{
		aboutService:    aboutService,
		settingsService: settingsService,
		homeService:     homeService,
		uploads:         uploads,
	}
}

// Home godoc
// GET /api/public/home
func (h *ContentHandler) Home(w http.ResponseWriter, r *http.Request) {
	page, err := h.homeService.Get(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, page)
}

// GetAbout godoc
// GET /api/about
func (h *ContentHandler) GetAbout(w http.ResponseWriter, r *http.Request) {
	page, err := h.aboutService.Get(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, page)
}

// UpdateAbout godoc
// PATCH /api/admin/about
func (h *ContentHandler) UpdateAbout(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateAboutRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	page, err := h.aboutService.Update(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, page)
}

// UploadAboutImage godoc
// POST /api/admin/about/image
// Content-Type: multipart/form-data — file
func (h *ContentHandler) UploadAboutImage(w http.ResponseWriter, r *http.Request) {
	file, err := readUpload(w, r, h.uploads)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	page, err := h.aboutService.UploadImage(r.Context(), file.Data)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, page)
}

// PublicSettings godoc
// GET /api/settings
func (h *ContentHandler) PublicSettings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settingsService.Public(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, values)
}

// Settings godoc
// GET /api/admin/settings
func (h *ContentHandler) Settings(w http.ResponseWriter, r *http.Request) {
	values, err := h.settingsService.GetAll(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, values)
}

// UpdateSettings godoc
// PATCH /api/admin/settings
// Body: { "values": { "google_rating": "4.8", ... } }
func (h *ContentHandler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	values, err := h.settingsService.Update(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, values)
}

// UploadImage godoc
// POST /api/admin/uploads
// Content-Type: multipart/form-data — file
//
// Şube kapak ve menü öğesi görselleri için genel yükleme. Dönen url
// ilgili kaydın image_url alanına yazılır.
func (h *ContentHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	file, err := readUpload(w, r, h.uploads)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	stored, err := h.uploads.Store(r.Context(), "images", file.Data)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, map[string]any{
		"url":          stored.URL,
		"content_type": stored.ContentType,
		"size":         stored.Size,
	})
}

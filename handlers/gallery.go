package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// GalleryHandler, galeri ve hero endpoint'leri.
type GalleryHandler struct {
	galleryService services.GalleryService
	uploads        services.UploadService
}

// NewGalleryHandler, constructor.
func NewGalleryHandler(galleryService services.GalleryService, uploads services.UploadService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService, uploads: uploads}
}

// List godoc
// GET /api/gallery
// GET /api/admin/gallery
func (h *GalleryHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.galleryService.List(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

// Hero godoc
// GET /api/public/hero
func (h *GalleryHandler) Hero(w http.ResponseWriter, r *http.Request) {
	hero, err := h.galleryService.Hero(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, hero)
}

// Categories godoc
// GET /api/admin/gallery/categories
func (h *GalleryHandler) Categories(w http.ResponseWriter, r *http.Request) {
	pkg.JSON(w, http.StatusOK, h.galleryService.Categories())
}

// Upload godoc
// POST /api/admin/gallery
// Content-Type: multipart/form-data — file, category, title
//
// Staging'i atlayıp görseli doğrudan galeriye ekler.
func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	file, err := readUpload(w, r, h.uploads)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	req := models.CreateGalleryItemRequest{
		Category: r.FormValue("category"),
		Title:    optionalString(r.FormValue("title")),
	}
	item, err := h.galleryService.Create(r.Context(), &req, file.Data)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, item)
}

// Update godoc
// PATCH /api/admin/gallery/{id}
func (h *GalleryHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateGalleryItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.galleryService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

// Delete godoc
// DELETE /api/admin/gallery/{id}
func (h *GalleryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.galleryService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "image deleted"})
}

// Reorder godoc
// PATCH /api/admin/gallery/reorder
// Body: { "items": [{ "id": "...", "position": 0 }, ...] }
func (h *GalleryHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	items, err := h.galleryService.Reorder(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

// ToggleHeroMain godoc
// POST /api/admin/gallery/{id}/hero-main
func (h *GalleryHandler) ToggleHeroMain(w http.ResponseWriter, r *http.Request) {
	item, err := h.galleryService.ToggleHeroMain(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

// ToggleHeroSection godoc
// POST /api/admin/gallery/{id}/hero-section
func (h *GalleryHandler) ToggleHeroSection(w http.ResponseWriter, r *http.Request) {
	item, err := h.galleryService.ToggleHeroSection(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

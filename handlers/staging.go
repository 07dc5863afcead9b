package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// StagingHandler, onay bekleyen galeri yüklemelerinin endpoint'leri.
type StagingHandler struct {
	stagingService services.StagingService
	uploads        services.UploadService
}

// NewStagingHandler, constructor.
func NewStagingHandler(stagingService services.StagingService, uploads services.UploadService) *StagingHandler {
	return &StagingHandler{stagingService: stagingService, uploads: uploads}
}

// Stage godoc
// POST /api/admin/staging
// Content-Type: multipart/form-data — file, category, title
//
// Dosya sadece staging dizinine yazılır, bucket'a yükleme onayda yapılır.
func (h *StagingHandler) Stage(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	file, err := readUpload(w, r, h.uploads)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	req := models.CreateGalleryItemRequest{
		Category: r.FormValue("category"),
		Title:    optionalString(r.FormValue("title")),
	}
	staged, err := h.stagingService.Stage(r.Context(), user.ID, file.Filename, file.Data, &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, staged)
}

// List godoc
// GET /api/admin/staging
func (h *StagingHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	staged, err := h.stagingService.List(user.ID)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, staged)
}

// Preview godoc
// GET /api/admin/staging/{id}/preview
func (h *StagingHandler) Preview(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	data, contentType, err := h.stagingService.Preview(user.ID, r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "private, no-store")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// Confirm godoc
// POST /api/admin/staging/{id}/confirm
// Body (opsiyonel): { "category": "...", "title": "..." }
func (h *StagingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.ConfirmStagedRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.stagingService.Confirm(r.Context(), user.ID, r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, item)
}

// Cancel godoc
// DELETE /api/admin/staging/{id}
func (h *StagingHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	if err := h.stagingService.Cancel(user.ID, r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "upload cancelled"})
}

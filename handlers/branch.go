package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// BranchHandler, şube endpoint'leri (public + admin).
type BranchHandler struct {
	branchService services.BranchService
	uploads       services.UploadService
}

// NewBranchHandler, constructor.
func NewBranchHandler(branchService services.BranchService, uploads services.UploadService) *BranchHandler {
	return &BranchHandler{branchService: branchService, uploads: uploads}
}

// ListPublic godoc
// GET /api/branches
func (h *BranchHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	branches, err := h.branchService.List(r.Context(), models.ActiveFilterActive)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, branches)
}

// GetBySlug godoc
// GET /api/branches/{slug}
func (h *BranchHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	detail, err := h.branchService.GetPublicDetail(r.Context(), r.PathValue("slug"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, detail)
}

// List godoc
// GET /api/admin/branches?filter=all|active|inactive
func (h *BranchHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := models.ParseActiveFilter(r.URL.Query().Get("filter"))
	branches, err := h.branchService.List(r.Context(), filter)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, branches)
}

// Get godoc
// GET /api/admin/branches/{id}
func (h *BranchHandler) Get(w http.ResponseWriter, r *http.Request) {
	detail, err := h.branchService.GetDetail(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, detail)
}

func (h *BranchHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBranchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	branch, err := h.branchService.Create(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, branch)
}

func (h *BranchHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBranchRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	branch, err := h.branchService.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, branch)
}

func (h *BranchHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "branch deleted"})
}

// ToggleActive godoc
// POST /api/admin/branches/{id}/toggle-active
func (h *BranchHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	branch, err := h.branchService.ToggleActive(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, branch)
}

func (h *BranchHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	branches, err := h.branchService.Reorder(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, branches)
}

// ─── Gallery ───

// AddGalleryImage godoc
// POST /api/admin/branches/{id}/gallery
// Content-Type: multipart/form-data — file
func (h *BranchHandler) AddGalleryImage(w http.ResponseWriter, r *http.Request) {
	file, err := readUpload(w, r, h.uploads)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	img, err := h.branchService.AddGalleryImage(r.Context(), r.PathValue("id"), file.Data)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, img)
}

func (h *BranchHandler) DeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.DeleteGalleryImage(r.Context(), r.PathValue("id"), r.PathValue("imageId")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "image deleted"})
}

func (h *BranchHandler) ReorderGallery(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	images, err := h.branchService.ReorderGallery(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, images)
}

// ─── Menu ───

func (h *BranchHandler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBranchMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.branchService.CreateMenuItem(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, item)
}

func (h *BranchHandler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateBranchMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.branchService.UpdateMenuItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

func (h *BranchHandler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := h.branchService.DeleteMenuItem(r.Context(), r.PathValue("id"), r.PathValue("itemId")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

func (h *BranchHandler) ReorderMenu(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := h.branchService.ReorderMenu(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

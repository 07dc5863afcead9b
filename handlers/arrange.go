package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// ArrangeHandler, sürükle-bırak sıralama taslaklarının endpoint'leri.
//
// {collection}: "gallery" ya da "menu:<menuID>".
// Taslaklar admin başınadır, kullanıcı context'ten alınır.
type ArrangeHandler struct {
	arrangeService services.ArrangeService
}

// NewArrangeHandler, constructor.
func NewArrangeHandler(arrangeService services.ArrangeService) *ArrangeHandler {
	return &ArrangeHandler{arrangeService: arrangeService}
}

// Load godoc
// GET /api/admin/arrange/{collection}
func (h *ArrangeHandler) Load(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	snap, err := h.arrangeService.Load(r.Context(), user.ID, r.PathValue("collection"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, snap)
}

// Move godoc
// POST /api/admin/arrange/{collection}/move
// Body: { "source_id": "...", "target_id": "..." }
func (h *ArrangeHandler) Move(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req models.MoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}

	snap, err := h.arrangeService.Move(r.Context(), user.ID, r.PathValue("collection"), req.SourceID, req.TargetID)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, snap)
}

// Commit godoc
// POST /api/admin/arrange/{collection}/commit
func (h *ArrangeHandler) Commit(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	snap, err := h.arrangeService.Commit(r.Context(), user.ID, r.PathValue("collection"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, snap)
}

// Refresh godoc
// POST /api/admin/arrange/{collection}/refresh
func (h *ArrangeHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	snap, err := h.arrangeService.Refresh(r.Context(), user.ID, r.PathValue("collection"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, snap)
}

// Discard godoc
// DELETE /api/admin/arrange/{collection}
func (h *ArrangeHandler) Discard(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r)
	if !ok {
		return
	}
	h.arrangeService.Discard(user.ID, r.PathValue("collection"))
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "draft discarded"})
}

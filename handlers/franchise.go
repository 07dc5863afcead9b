package handlers

import (
	"net/http"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// FranchiseHandler, franchise başvuru formu ve admin listesi.
type FranchiseHandler struct {
	franchiseService services.FranchiseService
}

// NewFranchiseHandler, constructor.
func NewFranchiseHandler(franchiseService services.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

// Create godoc
// POST /api/franchise
func (h *FranchiseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFranchiseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.franchiseService.Create(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, app)
}

func (h *FranchiseHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.franchiseService.List(r.Context(), models.ParseReadFilter(r.URL.Query().Get("filter")))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, apps)
}

func (h *FranchiseHandler) Get(w http.ResponseWriter, r *http.Request) {
	app, err := h.franchiseService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, app)
}

func (h *FranchiseHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	var req models.MarkReadRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	app, err := h.franchiseService.MarkRead(r.Context(), r.PathValue("id"), req.IsRead)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, app)
}

func (h *FranchiseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.franchiseService.Delete(r.Context(), r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "application deleted"})
}

func (h *FranchiseHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := h.franchiseService.UnreadCount(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]int{"count": n})
}

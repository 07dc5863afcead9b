package handlers

import (
	"net/http"
	"strconv"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/services"
)

// MenuHandler, sınırsız kahvaltı menüleri ve öğeleri.
// Public endpoint'ler sadece aktif menüleri gösterir.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler, constructor.
func NewMenuHandler(menuService services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// ListPublic godoc
// GET /api/menus
func (h *MenuHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

// List godoc
// GET /api/admin/menus
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	menus, err := h.menuService.ListMenus(r.Context(), activeOnly)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, menus)
}

// GetPublic godoc
// GET /api/menus/{id}
func (h *MenuHandler) GetPublic(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, true)
}

// Get godoc
// GET /api/admin/menus/{id}
func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.get(w, r, false)
}

func (h *MenuHandler) get(w http.ResponseWriter, r *http.Request, activeOnly bool) {
	menu, err := h.menuService.GetMenu(r.Context(), r.PathValue("id"), activeOnly)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, menu)
}

// ItemsPublic godoc
// GET /api/menus/{id}/items
func (h *MenuHandler) ItemsPublic(w http.ResponseWriter, r *http.Request) {
	items, err := h.menuService.ListItems(r.Context(), r.PathValue("id"), true)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

// Search godoc
// GET /api/menu/search?q=...&limit=20
func (h *MenuHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	hits, err := h.menuService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, hits)
}

// Categories godoc
// GET /api/menu/categories
func (h *MenuHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats, err := h.menuService.Categories(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, cats)
}

func (h *MenuHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	menu, err := h.menuService.CreateMenu(r.Context(), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, menu)
}

func (h *MenuHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMenuRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	menu, err := h.menuService.UpdateMenu(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, menu)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.menuService.DeleteMenu(r.Context(), r.PathValue("id")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "menu deleted"})
}

// ─── Items ───

func (h *MenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.menuService.CreateItem(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusCreated, item)
}

func (h *MenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateMenuItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := h.menuService.UpdateItem(r.Context(), r.PathValue("id"), r.PathValue("itemId"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

func (h *MenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.menuService.DeleteItem(r.Context(), r.PathValue("id"), r.PathValue("itemId")); err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]string{"message": "menu item deleted"})
}

// ToggleFeatured godoc
// POST /api/admin/menus/{id}/items/{itemId}/featured
func (h *MenuHandler) ToggleFeatured(w http.ResponseWriter, r *http.Request) {
	item, err := h.menuService.ToggleFeatured(r.Context(), r.PathValue("id"), r.PathValue("itemId"))
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, item)
}

func (h *MenuHandler) ReorderItems(w http.ResponseWriter, r *http.Request) {
	var req models.ReorderRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	items, err := h.menuService.ReorderItems(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, items)
}

// Reindex godoc
// POST /api/admin/search/reindex
func (h *MenuHandler) Reindex(w http.ResponseWriter, r *http.Request) {
	n, err := h.menuService.Reindex(r.Context())
	if err != nil {
		pkg.ErrorFor(w, r, err)
		return
	}
	pkg.JSON(w, http.StatusOK, map[string]int{"indexed": n})
}

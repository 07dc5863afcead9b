// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları burada tanımlıdır:
//   - auth: admin JWT doğrulaması
//   - form: IP başına form gönderim limiti
package main

import (
	"net/http"
	"strings"

	"github.com/akinalp/pisi/config"
	"github.com/akinalp/pisi/middleware"
	"github.com/akinalp/pisi/services"
	"github.com/akinalp/pisi/static"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
//
// Literal path'ler ("/reorder", "/unread-count") parametrik path'lerle aynı
// seviyede olsa da Go 1.22 router'ı daha spesifik olanı seçer.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	limiters *RateLimiters,
	cfg *config.Config,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService)
	formLimit := middleware.FormRateLimit(limiters.Form)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}
	form := func(handler http.HandlerFunc) http.Handler {
		return formLimit(handler)
	}

	// ╔══════════════════════════════════════════╗
	// ║  PUBLIC                                  ║
	// ╚══════════════════════════════════════════╝

	mux.HandleFunc("GET /api/health", h.Stats.Health)

	mux.HandleFunc("GET /api/public/home", h.Content.Home)
	mux.HandleFunc("GET /api/public/hero", h.Gallery.Hero)
	mux.HandleFunc("GET /api/gallery", h.Gallery.List)

	mux.HandleFunc("GET /api/menus", h.Menu.ListPublic)
	mux.HandleFunc("GET /api/menus/{id}", h.Menu.GetPublic)
	mux.HandleFunc("GET /api/menus/{id}/items", h.Menu.ItemsPublic)
	mux.HandleFunc("GET /api/menu/search", h.Menu.Search)
	mux.HandleFunc("GET /api/menu/categories", h.Menu.Categories)

	mux.HandleFunc("GET /api/branches", h.Branch.ListPublic)
	mux.HandleFunc("GET /api/branches/{slug}", h.Branch.GetBySlug)

	mux.HandleFunc("GET /api/about", h.Content.GetAbout)
	mux.HandleFunc("GET /api/settings", h.Content.PublicSettings)

	mux.Handle("POST /api/contact", form(h.Message.Create))
	mux.Handle("POST /api/franchise", form(h.Franchise.Create))

	// Local driver'da yüklenen görseller. http.FileServer ".." path'lerini reddeder,
	// yarım yazılmış (.part) dosyalar servis edilmez.
	if cfg.Storage.Driver == "local" {
		files := http.FileServer(http.Dir(cfg.Upload.Dir))
		mux.Handle("GET "+uploadsURLPrefix+"/", http.StripPrefix(uploadsURLPrefix+"/",
			http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") || strings.HasSuffix(r.URL.Path, ".part") {
					http.NotFound(w, r)
					return
				}
				w.Header().Set("Cache-Control", "public, max-age=86400")
				files.ServeHTTP(w, r)
			})))
	}

	// ╔══════════════════════════════════════════╗
	// ║  AUTH                                    ║
	// ╚══════════════════════════════════════════╝

	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.HandleFunc("POST /api/auth/refresh", h.Auth.Refresh)
	mux.HandleFunc("POST /api/auth/logout", h.Auth.Logout)
	mux.Handle("GET /api/auth/session", auth(h.Auth.Session))

	// ╔══════════════════════════════════════════╗
	// ║  ADMIN                                   ║
	// ╚══════════════════════════════════════════╝

	mux.Handle("GET /api/admin/stats", auth(h.Stats.Dashboard))

	// Messages
	mux.Handle("GET /api/admin/messages", auth(h.Message.List))
	mux.Handle("GET /api/admin/messages/unread-count", auth(h.Message.UnreadCount))
	mux.Handle("GET /api/admin/messages/{id}", auth(h.Message.Get))
	mux.Handle("PATCH /api/admin/messages/{id}/read", auth(h.Message.MarkRead))
	mux.Handle("DELETE /api/admin/messages/{id}", auth(h.Message.Delete))

	// Franchise applications
	mux.Handle("GET /api/admin/franchise", auth(h.Franchise.List))
	mux.Handle("GET /api/admin/franchise/unread-count", auth(h.Franchise.UnreadCount))
	mux.Handle("GET /api/admin/franchise/{id}", auth(h.Franchise.Get))
	mux.Handle("PATCH /api/admin/franchise/{id}/read", auth(h.Franchise.MarkRead))
	mux.Handle("DELETE /api/admin/franchise/{id}", auth(h.Franchise.Delete))

	// Gallery
	mux.Handle("GET /api/admin/gallery", auth(h.Gallery.List))
	mux.Handle("GET /api/admin/gallery/categories", auth(h.Gallery.Categories))
	mux.Handle("POST /api/admin/gallery", auth(h.Gallery.Upload))
	mux.Handle("PATCH /api/admin/gallery/reorder", auth(h.Gallery.Reorder))
	mux.Handle("PATCH /api/admin/gallery/{id}", auth(h.Gallery.Update))
	mux.Handle("DELETE /api/admin/gallery/{id}", auth(h.Gallery.Delete))
	mux.Handle("POST /api/admin/gallery/{id}/hero-main", auth(h.Gallery.ToggleHeroMain))
	mux.Handle("POST /api/admin/gallery/{id}/hero-section", auth(h.Gallery.ToggleHeroSection))

	// Arrange drafts (gallery | menu:{menuId})
	mux.Handle("GET /api/admin/arrange/{collection}", auth(h.Arrange.Load))
	mux.Handle("DELETE /api/admin/arrange/{collection}", auth(h.Arrange.Discard))
	mux.Handle("POST /api/admin/arrange/{collection}/move", auth(h.Arrange.Move))
	mux.Handle("POST /api/admin/arrange/{collection}/commit", auth(h.Arrange.Commit))
	mux.Handle("POST /api/admin/arrange/{collection}/refresh", auth(h.Arrange.Refresh))

	// Staging
	mux.Handle("POST /api/admin/staging", auth(h.Staging.Stage))
	mux.Handle("GET /api/admin/staging", auth(h.Staging.List))
	mux.Handle("GET /api/admin/staging/{id}/preview", auth(h.Staging.Preview))
	mux.Handle("POST /api/admin/staging/{id}/confirm", auth(h.Staging.Confirm))
	mux.Handle("DELETE /api/admin/staging/{id}", auth(h.Staging.Cancel))

	// Branches
	mux.Handle("GET /api/admin/branches", auth(h.Branch.List))
	mux.Handle("POST /api/admin/branches", auth(h.Branch.Create))
	mux.Handle("PATCH /api/admin/branches/reorder", auth(h.Branch.Reorder))
	mux.Handle("GET /api/admin/branches/{id}", auth(h.Branch.Get))
	mux.Handle("PATCH /api/admin/branches/{id}", auth(h.Branch.Update))
	mux.Handle("DELETE /api/admin/branches/{id}", auth(h.Branch.Delete))
	mux.Handle("POST /api/admin/branches/{id}/toggle-active", auth(h.Branch.ToggleActive))
	mux.Handle("POST /api/admin/branches/{id}/gallery", auth(h.Branch.AddGalleryImage))
	mux.Handle("PATCH /api/admin/branches/{id}/gallery/reorder", auth(h.Branch.ReorderGallery))
	mux.Handle("DELETE /api/admin/branches/{id}/gallery/{imageId}", auth(h.Branch.DeleteGalleryImage))
	mux.Handle("POST /api/admin/branches/{id}/menu", auth(h.Branch.CreateMenuItem))
	mux.Handle("PATCH /api/admin/branches/{id}/menu/reorder", auth(h.Branch.ReorderMenu))
	mux.Handle("PATCH /api/admin/branches/{id}/menu/{itemId}", auth(h.Branch.UpdateMenuItem))
	mux.Handle("DELETE /api/admin/branches/{id}/menu/{itemId}", auth(h.Branch.DeleteMenuItem))

	// Unlimited menus
	mux.Handle("GET /api/admin/menus", auth(h.Menu.List))
	mux.Handle("POST /api/admin/menus", auth(h.Menu.Create))
	mux.Handle("GET /api/admin/menus/{id}", auth(h.Menu.Get))
	mux.Handle("PATCH /api/admin/menus/{id}", auth(h.Menu.Update))
	mux.Handle("DELETE /api/admin/menus/{id}", auth(h.Menu.Delete))
	mux.Handle("POST /api/admin/menus/{id}/items", auth(h.Menu.CreateItem))
	mux.Handle("PATCH /api/admin/menus/{id}/items/reorder", auth(h.Menu.ReorderItems))
	mux.Handle("PATCH /api/admin/menus/{id}/items/{itemId}", auth(h.Menu.UpdateItem))
	mux.Handle("DELETE /api/admin/menus/{id}/items/{itemId}", auth(h.Menu.DeleteItem))
	mux.Handle("POST /api/admin/menus/{id}/items/{itemId}/featured", auth(h.Menu.ToggleFeatured))
	mux.Handle("POST /api/admin/search/reindex", auth(h.Menu.Reindex))

	// About + settings + generic uploads
	mux.Handle("PATCH /api/admin/about", auth(h.Content.UpdateAbout))
	mux.Handle("POST /api/admin/about/image", auth(h.Content.UploadAboutImage))
	mux.Handle("GET /api/admin/settings", auth(h.Content.Settings))
	mux.Handle("PATCH /api/admin/settings", auth(h.Content.UpdateSettings))
	mux.Handle("POST /api/admin/uploads", auth(h.Content.UploadImage))

	// ─── WebSocket ───
	// Tarayıcılar upgrade isteğine header ekleyemediği için token query'den okunur,
	// doğrulama ws handler içinde yapılır.
	mux.HandleFunc("GET /ws", h.WS.HandleConnection)

	// ─── Frontend (SPA) ───
	mux.Handle("GET /", static.Handler(static.Dist()))
}

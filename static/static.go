// Package static, public site ve admin panelinin build çıktısını binary'ye gömer.
//
// Build sırasında web/dist/ içeriği static/dist/ dizinine kopyalanır.
// Development modunda dist/ içi boş olabilir (.gitkeep), bu durumda
// Vite dev server frontend'i servis eder ve Handler 404 döner.
package static

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed all:dist
var frontendFS embed.FS

// Dist, gömülü dist/ dizinini kök olarak döner.
func Dist() fs.FS {
	sub, err := fs.Sub(frontendFS, "dist")
	if err != nil {
		panic(err)
	}
	return sub
}

// Handler, fsys içindeki dosyaları servis eder. Bulunamayan path'ler
// client-side routing için index.html'e düşer (SPA fallback).
// /api/ ve /ws altındaki istekler hiçbir zaman fallback almaz.
func Handler(fsys fs.FS) http.Handler {
	fileServer := http.FileServerFS(fsys)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.URL.Path == "/ws" {
			http.NotFound(w, r)
			return
		}

		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}

		if _, err := fs.Stat(fsys, name); err == nil {
			// Vite hash'li asset'leri değişmez.
			if strings.HasPrefix(name, "assets/") {
				w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
			}
			fileServer.ServeHTTP(w, r)
			return
		} else if !errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		index, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(index)
	})
}

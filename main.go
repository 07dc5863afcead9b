// Package main, Pişi kahvaltı sitesi backend'inin giriş noktasıdır.
//
// Bu dosyanın görevi — Dependency Injection "wire-up":
//  1. Config'i yükle
//  2. i18n çevirilerini yükle
//  3. Database'i başlat, seed içeriğini uygula
//  4. Repository'leri oluştur
//  5. WebSocket Hub'ı başlat
//  6. Service'leri oluştur, ilk admini hazırla
//  7. Zamanlanmış görevleri kur
//  8. Handler'ları ve route'ları bağla
//  9. CORS yapılandır, HTTP Server'ı başlat
//  10. Graceful shutdown
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/akinalp/pisi/config"
	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/jobs"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg/i18n"
	"github.com/akinalp/pisi/ws"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("[main] pisi server starting...")

	// ─── 1. Config ───
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[main] failed to load config: %v", err)
	}
	log.Printf("[main] config loaded (port=%d, storage=%s)", cfg.Server.Port, cfg.Storage.Driver)

	// ─── 2. i18n ───
	if err := i18n.LoadEmbedded(); err != nil {
		log.Fatalf("[main] failed to load i18n translations: %v", err)
	}

	// ─── 3. Database + seed ───
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Fatalf("[main] failed to create database directory: %v", err)
	}
	db, err := database.New(cfg.Database.Path, database.Migrations())
	if err != nil {
		log.Fatalf("[main] failed to initialize database: %v", err)
	}
	defer db.Close()

	seed, err := database.LoadSeed()
	if err != nil {
		log.Fatalf("[main] failed to load seed: %v", err)
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	if err := db.ApplySeed(startupCtx, seed); err != nil {
		log.Fatalf("[main] failed to apply seed: %v", err)
	}

	// ─── 4. Repository Layer ───
	repos := initRepositories(db.Conn)

	// ─── 5. WebSocket Hub ───
	hub := ws.NewHub()
	go hub.Run()

	// ─── 6. Service Layer ───
	svcs, limiters, err := initServices(startupCtx, repos, hub, cfg, seed)
	if err != nil {
		log.Fatalf("[main] failed to initialize services: %v", err)
	}

	if cfg.Admin.Email != "" && cfg.Admin.Password != "" {
		created, err := svcs.Auth.EnsureAdmin(startupCtx, &models.CreateAdminRequest{
			Email:    cfg.Admin.Email,
			Password: cfg.Admin.Password,
		})
		if err != nil {
			log.Fatalf("[main] failed to bootstrap admin: %v", err)
		}
		if created {
			log.Printf("[main] initial admin %s created", cfg.Admin.Email)
		}
	}

	// ─── 7. Jobs ───
	scheduler := jobs.NewScheduler()
	if err := jobs.RegisterMaintenance(scheduler, cfg.Jobs, jobs.Maintenance{
		Auth:    svcs.Auth,
		Staging: svcs.Staging,
		Menu:    svcs.Menu,
	}); err != nil {
		log.Fatalf("[main] failed to register jobs: %v", err)
	}
	scheduler.Start()

	// ─── 8. Handlers + Routes ───
	h := initHandlers(svcs, limiters, db, hub, cfg)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, limiters, cfg)

	// ─── 9. CORS + HTTP Server ───
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           corsHandler.Handler(mux),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       60 * time.Second, // büyük görsel yüklemeleri
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// ─── 10. Graceful Shutdown ───
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("[main] server listening on %s", cfg.Server.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[main] server error: %v", err)
		}
	}()

	<-done
	log.Println("[main] shutting down...")

	// Önce WebSocket bağlantıları kapatılır, sonra HTTP server yeni istek
	// kabul etmeyi bırakıp mevcutların bitmesini bekler.
	hub.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("[main] forced shutdown: %v", err)
	}

	scheduler.Stop(ctx)
	svcs.Arrange.Close()
	limiters.Close()

	log.Println("[main] server stopped gracefully")
}

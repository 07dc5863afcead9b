// Package main — Service katmanı başlatma.
//
// initServices, tüm service implementasyonlarını oluşturur.
// Her service, ihtiyaç duyduğu repository interface'lerini ve diğer
// dependency'leri constructor injection ile alır.
//
// Sıralama kuralları:
// 1. upload → gallery, branch, about ve staging'den ÖNCE
// 2. arrange → gallery ve menu'den ÖNCE (taslak senkronu için DraftSync)
// 3. gallery, menu, branch, settings → home'dan ÖNCE
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/akinalp/pisi/config"
	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/pkg/email"
	"github.com/akinalp/pisi/pkg/ratelimit"
	"github.com/akinalp/pisi/pkg/search"
	"github.com/akinalp/pisi/pkg/storage"
	"github.com/akinalp/pisi/services"
	"github.com/akinalp/pisi/ws"
)

// uploadsURLPrefix, local storage driver'ında dosyaların servis edildiği path.
const uploadsURLPrefix = "/api/uploads"

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth      services.AuthService
	Upload    services.UploadService
	Arrange   services.ArrangeService
	Gallery   services.GalleryService
	Staging   services.StagingService
	Menu      services.MenuService
	Branch    services.BranchService
	Message   services.MessageService
	Franchise services.FranchiseService
	About     services.AboutService
	Settings  services.SettingsService
	Home      services.HomeService
}

// RateLimiters, tüm rate limiter instance'larını tutan container.
type RateLimiters struct {
	Login *ratelimit.Limiter
	Form  *ratelimit.Limiter
}

// Close, limiter'ların temizlik goroutine'lerini durdurur.
func (l *RateLimiters) Close() {
	l.Login.Close()
	l.Form.Close()
}

// initServices, tüm service'leri ve rate limiter'ları oluşturur.
// Sıralama kritiktir — bkz. dosya başı yorum.
func initServices(
	ctx context.Context,
	repos *Repositories,
	hub ws.EventPublisher,
	cfg *config.Config,
	seed *database.Seed,
) (*Services, *RateLimiters, error) {
	bucket, err := initBucket(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	notifier := email.NewNotifier(initEmailSender(cfg), cfg.Email.NotifyTo, cfg.Email.Language)
	index := initSearchIndex(ctx, cfg)

	authService := services.NewAuthService(
		repos.User,
		repos.Session,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	uploadService := services.NewUploadService(bucket, cfg.Upload.MaxSize, cfg.Upload.MaxDimension)

	arrangeService := services.NewArrangeService(
		repos.Gallery, repos.Menu, repos.MenuItem, cfg.Arrange.DraftTTL,
	)

	galleryService := services.NewGalleryService(
		repos.Gallery, uploadService, arrangeService, seed.GalleryCategories,
	)

	stagingService, err := services.NewStagingService(
		cfg.Upload.StagingDir, cfg.Upload.StagingTTL, uploadService, galleryService,
	)
	if err != nil {
		return nil, nil, err
	}

	menuService := services.NewMenuService(
		repos.Menu, repos.MenuItem, index, arrangeService, seed.MenuCategories,
	)
	branchService := services.NewBranchService(
		repos.Branch, repos.BranchGallery, repos.BranchMenu, uploadService,
	)
	settingsService := services.NewSettingsService(repos.Settings)

	svcs := &Services{
		Auth:      authService,
		Upload:    uploadService,
		Arrange:   arrangeService,
		Gallery:   galleryService,
		Staging:   stagingService,
		Menu:      menuService,
		Branch:    branchService,
		Message:   services.NewMessageService(repos.Message, hub, notifier),
		Franchise: services.NewFranchiseService(repos.Franchise, hub, notifier),
		About:     services.NewAboutService(repos.About, uploadService),
		Settings:  settingsService,
		Home:      services.NewHomeService(galleryService, menuService, branchService, settingsService),
	}

	limiters := &RateLimiters{
		// 5 hatalı giriş / 5 dk → 15 dk bekleme
		Login: ratelimit.New(5, 5*time.Minute, 15*time.Minute),
		// iletişim + franchise formları: 5 gönderim / saat → 30 dk bekleme
		Form: ratelimit.New(5, time.Hour, 30*time.Minute),
	}

	return svcs, limiters, nil
}

func initBucket(ctx context.Context, cfg *config.Config) (storage.Bucket, error) {
	switch cfg.Storage.Driver {
	case "s3":
		bucket, err := storage.NewS3Bucket(ctx, storage.S3Config{
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Endpoint:  cfg.Storage.Endpoint,
			PublicURL: cfg.Storage.PublicURL,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to init s3 storage: %w", err)
		}
		log.Printf("[storage] using s3 bucket %s", cfg.Storage.Bucket)
		return bucket, nil
	default:
		bucket, err := storage.NewLocalBucket(cfg.Upload.Dir, uploadsURLPrefix)
		if err != nil {
			return nil, err
		}
		log.Printf("[storage] using local dir %s", cfg.Upload.Dir)
		return bucket, nil
	}
}

func initEmailSender(cfg *config.Config) email.Sender {
	switch cfg.Email.Provider {
	case "resend":
		log.Println("[email] provider: resend")
		return email.NewResendSender(cfg.Email.ResendAPIKey, cfg.Email.From)
	case "smtp":
		log.Printf("[email] provider: smtp (%s:%d)", cfg.Email.SMTPHost, cfg.Email.SMTPPort)
		return email.NewSMTPSender(
			cfg.Email.SMTPHost, cfg.Email.SMTPPort,
			cfg.Email.SMTPUser, cfg.Email.SMTPPass,
			cfg.Email.From,
		)
	default:
		log.Println("[email] notifications disabled")
		return email.NewNopSender()
	}
}

// initSearchIndex, Meilisearch erişilebilirse onu, değilse nop index'i döner.
// Arama bu durumda SQL LIKE ile yapılır.
func initSearchIndex(ctx context.Context, cfg *config.Config) search.MenuIndex {
	if cfg.Search.Host == "" {
		log.Println("[search] MEILI_HOST not set, falling back to SQL search")
		return search.NewNopIndex()
	}

	index := search.NewMeiliIndex(cfg.Search.Host, cfg.Search.APIKey, cfg.Search.Index)
	if err := index.Init(ctx); err != nil {
		log.Printf("[search] meilisearch unavailable, falling back to SQL search: %v", err)
		return search.NewNopIndex()
	}
	log.Printf("[search] using meilisearch index %s", cfg.Search.Index)
	return index
}

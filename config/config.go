// Package config, uygulamanın tüm konfigürasyonunu environment variable'lardan okur.
// Geliştirme ortamında .env dosyası da desteklenir.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config, uygulamanın tüm konfigürasyon değerlerini taşır.
// Her alt bölüm tek bir concern'ü temsil eder.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Upload   UploadConfig
	Storage  StorageConfig
	Email    EmailConfig
	Search   SearchConfig
	Admin    AdminConfig
	Jobs     JobsConfig
	Arrange  ArrangeConfig
}

// ServerConfig, HTTP server ayarları.
type ServerConfig struct {
	Host        string
	Port        int
	CORSOrigins []string // virgülle ayrılmış liste, ör: "https://pisikahvalti.com,http://localhost:5173"
}

// DatabaseConfig, SQLite ayarları.
type DatabaseConfig struct {
	Path string
}

// JWTConfig, admin oturum token ayarları.
type JWTConfig struct {
	Secret             string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
}

// UploadConfig, görsel yükleme ayarları.
type UploadConfig struct {
	Dir          string // local storage dizini
	StagingDir   string // onay bekleyen yüklemeler, public servis edilmez
	MaxSize      int64  // byte
	MaxDimension int    // uzun kenar bu değerden büyükse küçültülür (px), 0 = küçültme yok
	StagingTTL   time.Duration
}

// StorageConfig, object storage seçimi.
// Driver "local" ise dosyalar Upload.Dir altına yazılır ve /api/uploads/ altından servis edilir.
// Driver "s3" ise S3 uyumlu bir bucket kullanılır (AWS, R2, MinIO, Supabase Storage).
type StorageConfig struct {
	Driver    string
	Bucket    string
	Region    string
	Endpoint  string // boşsa AWS varsayılanı
	PublicURL string // boşsa https://{bucket}.s3.amazonaws.com
	AccessKey string
	SecretKey string
}

// EmailConfig, yeni mesaj/başvuru bildirim e-postaları.
// Provider: "resend", "smtp" veya "none".
type EmailConfig struct {
	Provider     string
	From         string
	NotifyTo     string
	Language     string
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
}

// SearchConfig, Meilisearch ayarları. Host boşsa arama SQL üzerinden yapılır.
type SearchConfig struct {
	Host   string
	APIKey string
	Index  string
}

// AdminConfig, ilk admin hesabı. users tablosu boşsa başlangıçta oluşturulur.
type AdminConfig struct {
	Email    string
	Password string
}

// JobsConfig, zamanlanmış görevlerin cron ifadeleri. Boş ifade görevi kapatır.
type JobsConfig struct {
	SessionCleanup string
	StagingCleanup string
	SearchReindex  string
}

// ArrangeConfig, admin sıralama taslaklarının ayarları.
type ArrangeConfig struct {
	DraftTTL time.Duration
}

// Load, environment variable'lardan Config oluşturur.
// .env dosyası yoksa sessizce devam edilir.
func Load() (*Config, error) {
	_ = godotenv.Load()

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	port, err := getEnvInt("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	accessExpiry, err := getEnvDuration("JWT_ACCESS_EXPIRY", 15*time.Minute)
	if err != nil {
		return nil, err
	}
	refreshExpiry, err := getEnvDuration("JWT_REFRESH_EXPIRY", 7*24*time.Hour)
	if err != nil {
		return nil, err
	}
	maxSize, err := strconv.ParseInt(getEnv("UPLOAD_MAX_SIZE", "10485760"), 10, 64) // 10MB
	if err != nil {
		return nil, fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
	}
	maxDim, err := getEnvInt("IMAGE_MAX_DIMENSION", 1920)
	if err != nil {
		return nil, err
	}
	stagingTTL, err := getEnvDuration("STAGING_TTL", 2*time.Hour)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getEnvInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}
	draftTTL, err := getEnvDuration("ARRANGE_DRAFT_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:        getEnv("SERVER_HOST", "0.0.0.0"),
			Port:        port,
			CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		},
		Database: DatabaseConfig{
			Path: getEnv("DATABASE_PATH", "./data/pisi.db"),
		},
		JWT: JWTConfig{
			Secret:             jwtSecret,
			AccessTokenExpiry:  accessExpiry,
			RefreshTokenExpiry: refreshExpiry,
		},
		Upload: UploadConfig{
			Dir:          getEnv("UPLOAD_DIR", "./data/uploads"),
			StagingDir:   getEnv("STAGING_DIR", "./data/staging"),
			MaxSize:      maxSize,
			MaxDimension: maxDim,
			StagingTTL:   stagingTTL,
		},
		Storage: StorageConfig{
			Driver:    getEnv("STORAGE_DRIVER", "local"),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central-1"),
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			PublicURL: getEnv("S3_PUBLIC_URL", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Email: EmailConfig{
			Provider:     getEnv("EMAIL_PROVIDER", "none"),
			From:         getEnv("EMAIL_FROM", "noreply@pisikahvalti.com"),
			NotifyTo:     getEnv("NOTIFY_EMAIL", ""),
			Language:     getEnv("NOTIFY_LANGUAGE", "tr"),
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			SMTPHost:     getEnv("SMTP_HOST", ""),
			SMTPPort:     smtpPort,
			SMTPUser:     getEnv("SMTP_USER", ""),
			SMTPPass:     getEnv("SMTP_PASS", ""),
		},
		Search: SearchConfig{
			Host:   getEnv("MEILI_HOST", ""),
			APIKey: getEnv("MEILI_API_KEY", ""),
			Index:  getEnv("MEILI_INDEX", "menu_items"),
		},
		Admin: AdminConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Jobs: JobsConfig{
			SessionCleanup: getEnv("JOB_SESSION_CLEANUP", "@hourly"),
			StagingCleanup: getEnv("JOB_STAGING_CLEANUP", "*/15 * * * *"),
			SearchReindex:  getEnv("JOB_SEARCH_REINDEX", "0 4 * * *"),
		},
		Arrange: ArrangeConfig{
			DraftTTL: draftTTL,
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required when STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("invalid STORAGE_DRIVER %q (local|s3)", c.Storage.Driver)
	}

	switch c.Email.Provider {
	case "none":
	case "resend":
		if c.Email.ResendAPIKey == "" {
			return fmt.Errorf("RESEND_API_KEY is required when EMAIL_PROVIDER=resend")
		}
	case "smtp":
		if c.Email.SMTPHost == "" {
			return fmt.Errorf("SMTP_HOST is required when EMAIL_PROVIDER=smtp")
		}
	default:
		return fmt.Errorf("invalid EMAIL_PROVIDER %q (resend|smtp|none)", c.Email.Provider)
	}

	return nil
}

// Addr, HTTP server'ın dinleyeceği adresi döner (ör: "0.0.0.0:8080").
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv, environment variable'ı okur, yoksa fallback değeri döner.
func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

// getEnvDuration, "15m", "168h" gibi Go duration formatını okur.
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

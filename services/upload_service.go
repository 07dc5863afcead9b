package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/imageproc"
	"github.com/akinalp/pisi/pkg/storage"
)

// StoredImage, bucket'a yazılmış bir görsel.
type StoredImage struct {
	URL         string
	Key         string
	ContentType string
	Size        int64
}

// UploadService, görsel yükleme iş mantığı: boyut sınırı, format kontrolü,
// küçültme ve bucket'a yazma. Galeri, şube ve hakkımızda yüklemeleri
// bu service'i kullanır.
type UploadService interface {
	// ReadLimited, r'den en fazla maxSize byte okur. Fazlası varsa fileTooLarge döner.
	ReadLimited(r io.Reader) ([]byte, error)
	// Validate, içeriğin desteklenen bir görsel olduğunu kontrol eder.
	Validate(data []byte) (contentType string, err error)
	// Store, görseli işler ve prefix altında bucket'a yazar.
	Store(ctx context.Context, prefix string, data []byte) (*StoredImage, error)
	// Remove, nesneyi bucket'tan siler. Hata sadece loglanır.
	Remove(ctx context.Context, key string)
	MaxSize() int64
	// TooLarge, boyut sınırı aşıldığında dönen kullanıcı hatası.
	TooLarge() error
}

type uploadService struct {
	bucket       storage.Bucket
	maxSize      int64
	maxDimension int
}

// NewUploadService, constructor.
func NewUploadService(bucket storage.Bucket, maxSize int64, maxDimension int) UploadService {
	return &uploadService{
		bucket:       bucket,
		maxSize:      maxSize,
		maxDimension: maxDimension,
	}
}

func (s *uploadService) MaxSize() int64 { return s.maxSize }

func (s *uploadService) TooLarge() error { return s.errTooLarge() }

func (s *uploadService) errTooLarge() error {
	return pkg.NewUserError(pkg.ErrBadRequest, "gallery.fileTooLarge", map[string]string{
		"max": formatBytes(s.maxSize),
	})
}

func errInvalidImage() error {
	return pkg.NewUserError(pkg.ErrBadRequest, "gallery.invalidImage", nil)
}

func (s *uploadService) ReadLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return nil, s.errTooLarge()
	}
	if len(data) == 0 {
		return nil, errInvalidImage()
	}
	return data, nil
}

func (s *uploadService) Validate(data []byte) (string, error) {
	if int64(len(data)) > s.maxSize {
		return "", s.errTooLarge()
	}
	contentType, _, err := imageproc.Sniff(data)
	if err != nil {
		return "", errInvalidImage()
	}
	return contentType, nil
}

func (s *uploadService) Store(ctx context.Context, prefix string, data []byte) (*StoredImage, error) {
	if int64(len(data)) > s.maxSize {
		return nil, s.errTooLarge()
	}

	img, err := imageproc.Process(data, s.maxDimension)
	if err != nil {
		if errors.Is(err, imageproc.ErrUnsupportedFormat) {
			return nil, errInvalidImage()
		}
		return nil, err
	}

	key := storage.NewKey(prefix, img.Ext)
	url, err := s.bucket.Put(ctx, key, img.Data, img.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	if img.Resized {
		log.Printf("[storage] stored %s (resized to %dx%d, %d bytes)", key, img.Width, img.Height, len(img.Data))
	}

	return &StoredImage{
		URL:         url,
		Key:         key,
		ContentType: img.ContentType,
		Size:        int64(len(img.Data)),
	}, nil
}

func (s *uploadService) Remove(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.bucket.Delete(ctx, key); err != nil {
		log.Printf("[storage] failed to delete %s: %v", key, err)
	}
}

// formatBytes, byte sayısını okunabilir hale getirir: 10485760 → "10 MB".
func formatBytes(n int64) string {
	const mb = 1024 * 1024
	if n >= mb && n%mb == 0 {
		return fmt.Sprintf("%d MB", n/mb)
	}
	if n >= mb {
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	}
	return fmt.Sprintf("%d KB", (n+1023)/1024)
}

// Package storage, yüklenen görsellerin saklandığı bucket soyutlamasını sağlar.
//
// İki implementasyon vardır: yerel disk (UPLOAD_DIR, /api/uploads altından
// servis edilir) ve S3 uyumlu object storage (aws-sdk-go-v2).
package storage

import (
	"context"
	"errors"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidKey, key boşsa, mutlak ise ya da ".." içeriyorsa döner.
var ErrInvalidKey = errors.New("invalid storage key")

// Bucket, görsel nesneleri için depolama.
type Bucket interface {
	// Put, nesneyi yazar ve public URL'ini döner.
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	// Delete, nesneyi siler. Olmayan nesne hata değildir.
	Delete(ctx context.Context, key string) error
	// URL, key'in public URL'i.
	URL(key string) string
}

// NewKey, prefix altında rastgele bir nesne key'i üretir: "gallery/<uuid>.jpg".
func NewKey(prefix, ext string) string {
	return path.Join(prefix, uuid.NewString()+ext)
}

func validKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "\\") {
		return false
	}
	for _, part := range strings.Split(key, "/") {
		if part == "" || part == "." || part == ".." {
			return false
		}
	}
	return true
}

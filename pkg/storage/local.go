package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type localBucket struct {
	dir     string
	baseURL string
}

// NewLocalBucket, dir altına yazan bir Bucket oluşturur. URL'ler baseURL
// (ör: "/api/uploads") ile başlar.
func NewLocalBucket(dir, baseURL string) (Bucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &localBucket{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (b *localBucket) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	if !validKey(key) {
		return "", ErrInvalidKey
	}

	full := filepath.Join(b.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create object dir: %w", err)
	}

	// Yarım dosya servis edilmesin diye önce geçici dosyaya yazılır.
	tmp := full + ".part"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("failed to write object: %w", err)
	}

	return b.URL(key), nil
}

func (b *localBucket) Delete(_ context.Context, key string) error {
	if !validKey(key) {
		return ErrInvalidKey
	}
	err := os.Remove(filepath.Join(b.dir, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

func (b *localBucket) URL(key string) string {
	return b.baseURL + "/" + key
}

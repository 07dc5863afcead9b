package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/repository"
	"github.com/akinalp/pisi/ws"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.NewInMemory(database.Migrations())
	if err != nil {
		t.Fatalf("NewInMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func intPtr(n int) *int { return &n }

func newArrange(t *testing.T, db *database.DB, gallery repository.GalleryRepository) ArrangeService {
	t.Helper()
	arrange := NewArrangeService(
		gallery,
		repository.NewSQLiteMenuRepo(db.Conn),
		repository.NewSQLiteMenuItemRepo(db.Conn),
		time.Hour,
	)
	t.Cleanup(arrange.Close)
	return arrange
}

func addGallery(t *testing.T, repo repository.GalleryRepository, title string, position *int) *models.GalleryItem {
	t.Helper()
	item := &models.GalleryItem{ImageURL: "/api/uploads/" + title + ".jpg", Title: &title, Category: "Kahvaltı", Position: position}
	if err := repo.Create(context.Background(), item); err != nil {
		t.Fatalf("Create: %v", err)
	}
	return item
}

// pngBytes, w x h boyutunda düz renkli bir PNG üretir.
func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

// fakeBucket, çağrıları sayan bellek içi bucket.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	puts    int
	deletes int
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) Put(_ context.Context, key string, data []byte, _ string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	b.objects[key] = data
	return b.URL(key), nil
}

func (b *fakeBucket) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deletes++
	delete(b.objects, key)
	return nil
}

func (b *fakeBucket) URL(key string) string { return "https://cdn.test/" + key }

func (b *fakeBucket) calls() (puts, deletes int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.puts, b.deletes
}

// recordingPublisher, yayınlanan tablo değişikliklerini saklar.
type recordingPublisher struct {
	mu      sync.Mutex
	changes []ws.TableChange
}

func (p *recordingPublisher) PublishTableChange(c ws.TableChange) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.changes = append(p.changes, c)
}

func (p *recordingPublisher) events() []ws.TableChange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ws.TableChange(nil), p.changes...)
}

package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// StagingService, seçilmiş ama onaylanmamış galeri yüklemelerini yönetir.
//
// Stage dosyayı sadece staging dizinine yazar, object storage'a dokunmaz.
// Confirm görseli işleyip bucket'a yazar ve galeri kaydını oluşturur.
// Cancel staging dosyasını siler. Süresi dolan kayıtlar PurgeExpired ile temizlenir.
type StagingService interface {
	Stage(ctx context.Context, userID, filename string, data []byte, req *models.CreateGalleryItemRequest) (*models.StagedUpload, error)
	List(userID string) ([]*models.StagedUpload, error)
	Get(userID, id string) (*models.StagedUpload, error)
	// Preview, staged görselin byte'larını ve içerik tipini döner.
	Preview(userID, id string) ([]byte, string, error)
	Confirm(ctx context.Context, userID, id string, req *models.ConfirmStagedRequest) (*models.GalleryItem, error)
	Cancel(userID, id string) error
	PurgeExpired() (int, error)
}

type stagingService struct {
	dir     string
	ttl     time.Duration
	uploads UploadService
	gallery GalleryService
	now     func() time.Time

	mu         sync.Mutex
	confirming map[string]bool
}

// NewStagingService, constructor. dir yoksa oluşturulur.
func NewStagingService(dir string, ttl time.Duration, uploads UploadService, gallery GalleryService) (StagingService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	return &stagingService{
		dir:        dir,
		ttl:        ttl,
		uploads:    uploads,
		gallery:    gallery,
		now:        time.Now,
		confirming: make(map[string]bool),
	}, nil
}

func errStagedNotFound() error {
	return pkg.NewUserError(pkg.ErrNotFound, "staging.notFound", nil)
}

func (s *stagingService) dataPath(id string) string { return filepath.Join(s.dir, id+".bin") }
func (s *stagingService) metaPath(id string) string { return filepath.Join(s.dir, id+".json") }

func (s *stagingService) Stage(ctx context.Context, userID, filename string, data []byte, req *models.CreateGalleryItemRequest) (*models.StagedUpload, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contentType, err := s.uploads.Validate(data)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	staged := &models.StagedUpload{
		ID:          id,
		UserID:      userID,
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		Category:    req.Category,
		Title:       req.Title,
		PreviewURL:  "/api/admin/staging/" + id + "/preview",
		CreatedAt:   s.now().UTC(),
	}

	if err := os.WriteFile(s.dataPath(id), data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write staged file: %w", err)
	}
	if err := s.writeMeta(staged); err != nil {
		os.Remove(s.dataPath(id))
		return nil, err
	}

	return staged, nil
}

// stagedMeta, diske yazılan metadata. UserID JSON'da gizli olduğu için ayrı tutulur.
type stagedMeta struct {
	models.StagedUpload
	Owner string `json:"owner"`
}

func (s *stagingService) writeMeta(staged *models.StagedUpload) error {
	raw, err := json.Marshal(stagedMeta{StagedUpload: *staged, Owner: staged.UserID})
	if err != nil {
		return fmt.Errorf("failed to encode staged metadata: %w", err)
	}
	if err := os.WriteFile(s.metaPath(staged.ID), raw, 0o600); err != nil {
		return fmt.Errorf("failed to write staged metadata: %w", err)
	}
	return nil
}

func (s *stagingService) readMeta(id string) (*models.StagedUpload, error) {
	raw, err := os.ReadFile(s.metaPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errStagedNotFound()
		}
		return nil, fmt.Errorf("failed to read staged metadata: %w", err)
	}

	var meta stagedMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode staged metadata: %w", err)
	}
	staged := meta.StagedUpload
	staged.UserID = meta.Owner
	return &staged, nil
}

func (s *stagingService) List(userID string) ([]*models.StagedUpload, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list staging dir: %w", err)
	}

	out := []*models.StagedUpload{}
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".json")
		if !ok {
			continue
		}
		staged, err := s.readMeta(id)
		if err != nil {
			continue
		}
		if staged.UserID == userID {
			out = append(out, staged)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Get, staged kaydı döner. Başka bir admin'in kaydı bulunamadı sayılır.
func (s *stagingService) Get(userID, id string) (*models.StagedUpload, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errStagedNotFound()
	}
	staged, err := s.readMeta(id)
	if err != nil {
		return nil, err
	}
	if staged.UserID != userID {
		return nil, errStagedNotFound()
	}
	return staged, nil
}

func (s *stagingService) Preview(userID, id string) ([]byte, string, error) {
	staged, err := s.Get(userID, id)
	if err != nil {
		return nil, "", err
	}
	data, err := os.ReadFile(s.dataPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", errStagedNotFound()
		}
		return nil, "", fmt.Errorf("failed to read staged file: %w", err)
	}
	return data, staged.ContentType, nil
}

func (s *stagingService) Confirm(ctx context.Context, userID, id string, req *models.ConfirmStagedRequest) (*models.GalleryItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	staged, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	if !s.beginConfirm(id) {
		return nil, errStagedNotFound()
	}
	defer s.endConfirm(id)

	data, err := os.ReadFile(s.dataPath(id))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errStagedNotFound()
		}
		return nil, fmt.Errorf("failed to read staged file: %w", err)
	}

	create := &models.CreateGalleryItemRequest{Category: staged.Category, Title: staged.Title}
	if req.Category != nil {
		create.Category = *req.Category
	}
	if req.Title != nil {
		create.Title = req.Title
	}

	item, err := s.gallery.Create(ctx, create, data)
	if err != nil {
		return nil, err
	}

	s.remove(id)
	return item, nil
}

func (s *stagingService) beginConfirm(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.confirming[id] {
		return false
	}
	s.confirming[id] = true
	return true
}

func (s *stagingService) endConfirm(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.confirming, id)
}

// Cancel, staged dosyayı siler. Object storage'a hiçbir çağrı yapılmaz.
func (s *stagingService) Cancel(userID, id string) error {
	if _, err := s.Get(userID, id); err != nil {
		return err
	}
	s.remove(id)
	return nil
}

func (s *stagingService) remove(id string) {
	for _, p := range []string{s.dataPath(id), s.metaPath(id)} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Printf("[staging] failed to remove %s: %v", p, err)
		}
	}
}

// PurgeExpired, ttl'den eski staged kayıtları siler ve silinen sayısını döner.
func (s *stagingService) PurgeExpired() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("failed to list staging dir: %w", err)
	}

	cutoff := s.now().Add(-s.ttl)
	purged := 0
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), ".bin")
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		s.mu.Lock()
		busy := s.confirming[id]
		s.mu.Unlock()
		if busy {
			continue
		}
		s.remove(id)
		purged++
	}
	return purged, nil
}

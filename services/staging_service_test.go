package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
)

type stagingFixture struct {
	svc     StagingService
	gallery GalleryService
	bucket  *fakeBucket
	dir     string
}

func newStagingFixture(t *testing.T) *stagingFixture {
	t.Helper()
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	bucket := newFakeBucket()
	uploads := NewUploadService(bucket, 5<<20, 200)
	gallery := NewGalleryService(repo, uploads, newArrange(t, db, repo), nil)

	dir := t.TempDir()
	svc, err := NewStagingService(dir, time.Hour, uploads, gallery)
	if err != nil {
		t.Fatalf("NewStagingService: %v", err)
	}
	return &stagingFixture{svc: svc, gallery: gallery, bucket: bucket, dir: dir}
}

func (f *stagingFixture) stage(t *testing.T, userID string) *models.StagedUpload {
	t.Helper()
	title := "Serpme"
	staged, err := f.svc.Stage(context.Background(), userID, "../../kahvalti.png", pngBytes(t, 40, 40),
		&models.CreateGalleryItemRequest{Category: "Kahvaltı", Title: &title})
	if err != nil {
		t.Fatalf("Stage: %v", err)
	}
	return staged
}

func TestStagingCancelMakesNoStorageCall(t *testing.T) {
	f := newStagingFixture(t)
	staged := f.stage(t, "u1")

	if staged.Filename != "kahvalti.png" {
		t.Fatalf("filename = %q", staged.Filename)
	}
	if staged.PreviewURL != "/api/admin/staging/"+staged.ID+"/preview" {
		t.Fatalf("preview url = %q", staged.PreviewURL)
	}

	if err := f.svc.Cancel("u1", staged.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if puts, deletes := f.bucket.calls(); puts != 0 || deletes != 0 {
		t.Fatalf("bucket calls puts=%d deletes=%d, want none", puts, deletes)
	}

	entries, _ := os.ReadDir(f.dir)
	if len(entries) != 0 {
		t.Fatalf("staging dir not empty: %d entries", len(entries))
	}
	if _, err := f.svc.Get("u1", staged.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Get after cancel err = %v", err)
	}
}

func TestStagingConfirmCreatesGalleryItem(t *testing.T) {
	f := newStagingFixture(t)
	ctx := context.Background()
	staged := f.stage(t, "u1")

	data, contentType, err := f.svc.Preview("u1", staged.ID)
	if err != nil || len(data) == 0 || contentType != "image/png" {
		t.Fatalf("Preview = %d bytes, %q, %v", len(data), contentType, err)
	}

	category := "Mekan"
	item, err := f.svc.Confirm(ctx, "u1", staged.ID, &models.ConfirmStagedRequest{Category: &category})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if item.Category != "Mekan" || item.Title == nil || *item.Title != "Serpme" {
		t.Fatalf("item = %+v", item)
	}
	if puts, _ := f.bucket.calls(); puts != 1 {
		t.Fatalf("puts = %d, want 1", puts)
	}

	list, _ := f.gallery.List(ctx)
	if len(list) != 1 {
		t.Fatalf("gallery len = %d", len(list))
	}

	if _, err := f.svc.Confirm(ctx, "u1", staged.ID, &models.ConfirmStagedRequest{}); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("second confirm err = %v", err)
	}
}

func TestStagingIsPerUser(t *testing.T) {
	f := newStagingFixture(t)
	staged := f.stage(t, "u1")

	if _, _, err := f.svc.Preview("u2", staged.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("foreign preview err = %v", err)
	}
	if err := f.svc.Cancel("u2", staged.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("foreign cancel err = %v", err)
	}
	list, err := f.svc.List("u1")
	if err != nil || len(list) != 1 {
		t.Fatalf("List(u1) = %d, %v", len(list), err)
	}
	if list, _ := f.svc.List("u2"); len(list) != 0 {
		t.Fatalf("List(u2) = %d", len(list))
	}
}

func TestStagingRejectsBadInput(t *testing.T) {
	f := newStagingFixture(t)
	ctx := context.Background()

	_, err := f.svc.Stage(ctx, "u1", "x.txt", []byte("hello"), &models.CreateGalleryItemRequest{Category: "Mekan"})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("non-image err = %v", err)
	}
	_, err = f.svc.Stage(ctx, "u1", "x.png", pngBytes(t, 4, 4), &models.CreateGalleryItemRequest{})
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("missing category err = %v", err)
	}
	if _, err := f.svc.Get("u1", "../../etc/passwd"); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("path id err = %v", err)
	}
}

func TestStagingPurgeExpired(t *testing.T) {
	f := newStagingFixture(t)
	staged := f.stage(t, "u1")
	fresh := f.stage(t, "u1")

	old := time.Now().Add(-2 * time.Hour)
	if err := os.Chtimes(f.dir+"/"+staged.ID+".bin", old, old); err != nil {
		t.Fatal(err)
	}

	n, err := f.svc.PurgeExpired()
	if err != nil || n != 1 {
		t.Fatalf("PurgeExpired = %d, %v", n, err)
	}
	if _, err := f.svc.Get("u1", staged.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatal("expired entry still present")
	}
	if _, err := f.svc.Get("u1", fresh.ID); err != nil {
		t.Fatalf("fresh entry purged: %v", err)
	}
}

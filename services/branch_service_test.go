package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/repository"
)

func newBranchFixture(t *testing.T) (BranchService, *fakeBucket) {
	t.Helper()
	db := newTestDB(t)
	bucket := newFakeBucket()
	svc := NewBranchService(
		repository.NewSQLiteBranchRepo(db.Conn),
		repository.NewSQLiteBranchGalleryRepo(db.Conn),
		repository.NewSQLiteBranchMenuRepo(db.Conn),
		NewUploadService(bucket, 5<<20, 200),
	)
	return svc, bucket
}

func createBranch(t *testing.T, svc BranchService, name string) *models.Branch {
	t.Helper()
	b, err := svc.Create(context.Background(), &models.CreateBranchRequest{
		Name:    name,
		City:    "İstanbul",
		Address: "Moda Cd. 1",
	})
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return b
}

func TestBranchSlugUniqueness(t *testing.T) {
	svc, _ := newBranchFixture(t)
	ctx := context.Background()

	first := createBranch(t, svc, "Kadıköy Şubesi")
	second := createBranch(t, svc, "Kadıköy  Şubesi!")
	third := createBranch(t, svc, "KADIKÖY ŞUBESİ")

	if first.Slug != "kadikoy-subesi" || second.Slug != "kadikoy-subesi-2" || third.Slug != "kadikoy-subesi-3" {
		t.Fatalf("slugs = %q %q %q", first.Slug, second.Slug, third.Slug)
	}

	// Aynı isimle güncelleme kendi slug'ını korur.
	name := "Kadıköy Şubesi"
	updated, err := svc.Update(ctx, first.ID, &models.UpdateBranchRequest{Name: &name})
	if err != nil || updated.Slug != "kadikoy-subesi" {
		t.Fatalf("Update = %+v, %v", updated, err)
	}

	name = "Moda"
	updated, err = svc.Update(ctx, second.ID, &models.UpdateBranchRequest{Name: &name})
	if err != nil || updated.Slug != "moda" {
		t.Fatalf("rename slug = %q, %v", updated.Slug, err)
	}
}

func TestBranchPublicDetailHidesInactive(t *testing.T) {
	svc, _ := newBranchFixture(t)
	ctx := context.Background()

	b := createBranch(t, svc, "Beşiktaş")
	if _, err := svc.GetPublicDetail(ctx, b.Slug); err != nil {
		t.Fatalf("active detail: %v", err)
	}

	toggled, err := svc.ToggleActive(ctx, b.ID)
	if err != nil || toggled.IsActive {
		t.Fatalf("ToggleActive = %+v, %v", toggled, err)
	}
	if _, err := svc.GetPublicDetail(ctx, b.Slug); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("inactive detail err = %v", err)
	}
	if _, err := svc.GetDetail(ctx, b.ID); err != nil {
		t.Fatalf("admin detail: %v", err)
	}

	active, _ := svc.List(ctx, models.ActiveFilterActive)
	if len(active) != 0 {
		t.Fatalf("active list = %d", len(active))
	}
}

func TestBranchGalleryAndMenu(t *testing.T) {
	svc, bucket := newBranchFixture(t)
	ctx := context.Background()

	b := createBranch(t, svc, "Ataşehir")
	other := createBranch(t, svc, "Üsküdar")

	img1, err := svc.AddGalleryImage(ctx, b.ID, pngBytes(t, 20, 20))
	if err != nil {
		t.Fatalf("AddGalleryImage: %v", err)
	}
	img2, err := svc.AddGalleryImage(ctx, b.ID, pngBytes(t, 20, 20))
	if err != nil {
		t.Fatal(err)
	}
	if *img1.Position != 0 || *img2.Position != 1 {
		t.Fatalf("positions = %d, %d", *img1.Position, *img2.Position)
	}

	reordered, err := svc.ReorderGallery(ctx, b.ID, &models.ReorderRequest{Items: []models.PositionUpdate{
		{ID: img1.ID, Position: 1}, {ID: img2.ID, Position: 0},
	}})
	if err != nil || reordered[0].ID != img2.ID {
		t.Fatalf("ReorderGallery = %v", err)
	}

	if err := svc.DeleteGalleryImage(ctx, other.ID, img1.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("delete via wrong branch err = %v", err)
	}

	price := 250.0
	item, err := svc.CreateMenuItem(ctx, b.ID, &models.CreateBranchMenuItemRequest{Name: "Menemen", Price: &price})
	if err != nil {
		t.Fatalf("CreateMenuItem: %v", err)
	}
	negative := -1.0
	if _, err := svc.UpdateMenuItem(ctx, b.ID, item.ID, &models.UpdateBranchMenuItemRequest{Price: &negative}); !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("negative price err = %v", err)
	}

	// Şube silinince galeri nesneleri bucket'tan kalkar.
	if err := svc.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, deletes := bucket.calls(); deletes != 2 {
		t.Fatalf("deletes = %d, want 2", deletes)
	}
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/search"
	"github.com/akinalp/pisi/repository"
)

func TestSettingsUpdateNormalizesAndRejects(t *testing.T) {
	db := newTestDB(t)
	svc := NewSettingsService(repository.NewSQLiteSettingsRepo(db.Conn))
	ctx := context.Background()

	values, err := svc.Update(ctx, &models.UpdateSettingsRequest{Values: map[string]string{
		models.SettingGoogleRating: " 4,8 ",
		models.SettingReviewCount:  "1200",
	}})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if values[models.SettingGoogleRating] != "4.8" || values[models.SettingReviewCount] != "1200" {
		t.Fatalf("values = %v", values)
	}

	tests := []struct {
		name   string
		values map[string]string
		key    string
	}{
		{"unknown key", map[string]string{"theme": "dark"}, "settings.unknownKey"},
		{"rating above 5", map[string]string{models.SettingGoogleRating: "5.1"}, "settings.invalidRating"},
		{"negative count", map[string]string{models.SettingReviewCount: "-3"}, "settings.invalidCount"},
		{"empty", map[string]string{}, "form.requiredField"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Update(ctx, &models.UpdateSettingsRequest{Values: tt.values})
			var uerr *pkg.UserError
			if !errors.As(err, &uerr) || uerr.Key != tt.key {
				t.Fatalf("err = %v, want %s", err, tt.key)
			}
		})
	}

	got, _ := svc.Get(ctx, models.SettingGoogleRating)
	if got.Value != "4.8" {
		t.Fatalf("rejected update changed stored value: %q", got.Value)
	}
}

func TestSettingsPublicDropsUnknownKeys(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteSettingsRepo(db.Conn)
	svc := NewSettingsService(repo)
	ctx := context.Background()

	if err := repo.UpsertMany(ctx, map[string]string{"legacy_banner": "x", models.SettingPhone: "0212"}); err != nil {
		t.Fatal(err)
	}
	public, err := svc.Public(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := public["legacy_banner"]; ok {
		t.Fatal("unknown key leaked to public settings")
	}
	if public[models.SettingPhone] != "0212" {
		t.Fatalf("public = %v", public)
	}
}

func TestHomeAggregatesSections(t *testing.T) {
	db := newTestDB(t)
	galleryRepo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, galleryRepo)
	uploads := NewUploadService(newFakeBucket(), 5<<20, 200)

	gallery := NewGalleryService(galleryRepo, uploads, arrange, nil)
	menus := NewMenuService(repository.NewSQLiteMenuRepo(db.Conn), repository.NewSQLiteMenuItemRepo(db.Conn),
		search.NewNopIndex(), arrange, nil)
	branches := NewBranchService(repository.NewSQLiteBranchRepo(db.Conn), repository.NewSQLiteBranchGalleryRepo(db.Conn),
		repository.NewSQLiteBranchMenuRepo(db.Conn), uploads)
	settings := NewSettingsService(repository.NewSQLiteSettingsRepo(db.Conn))
	home := NewHomeService(gallery, menus, branches, settings)
	ctx := context.Background()

	a := addGallery(t, galleryRepo, "a", intPtr(0))
	if _, err := gallery.ToggleHeroMain(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := branches.Create(ctx, &models.CreateBranchRequest{Name: "Moda", City: "İstanbul", Address: "Moda"}); err != nil {
		t.Fatal(err)
	}

	page, err := home.Get(ctx)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.Hero.Main == nil || page.Hero.Main.ID != a.ID {
		t.Fatal("hero main missing")
	}
	if len(page.Branches) != 1 || page.Featured == nil {
		t.Fatalf("branches = %d featured nil = %v", len(page.Branches), page.Featured == nil)
	}
}

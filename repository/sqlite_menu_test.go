package repository

import (
	"context"
	"testing"

	"github.com/akinalp/pisi/models"
)

func TestMenuItemSearchAndFeatured(t *testing.T) {
	db := newTestDB(t)
	menus := NewSQLiteMenuRepo(db.Conn)
	items := NewSQLiteMenuItemRepo(db.Conn)
	ctx := context.Background()

	active := &models.UnlimitedMenu{Title: "Serpme", IsActive: true}
	passive := &models.UnlimitedMenu{Title: "Eski", IsActive: false}
	for _, m := range []*models.UnlimitedMenu{active, passive} {
		if err := menus.Create(ctx, m); err != nil {
			t.Fatal(err)
		}
	}

	mustCreate := func(menuID, name, category string, featured bool) {
		t.Helper()
		if err := items.Create(ctx, &models.MenuItem{MenuID: menuID, Name: name, Category: category, Featured: featured}); err != nil {
			t.Fatal(err)
		}
	}
	mustCreate(active.ID, "Sade Pişi", "Pişiler", true)
	mustCreate(active.ID, "Menemen", "Sıcaklar", false)
	mustCreate(passive.ID, "Peynirli Pişi", "Pişiler", true)

	hits, err := items.Search(ctx, "pişi", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Name != "Sade Pişi" || hits[0].MenuTitle != "Serpme" {
		t.Errorf("hits = %+v", hits)
	}

	featured, err := items.ListFeatured(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(featured) != 1 || featured[0].Name != "Sade Pişi" {
		t.Errorf("featured = %+v, want only active menu items", featured)
	}

	if _, err := items.Search(ctx, "100%_", 10); err != nil {
		t.Errorf("LIKE special chars: %v", err)
	}
}

func TestMenuItemPositionsScopedToMenu(t *testing.T) {
	db := newTestDB(t)
	menus := NewSQLiteMenuRepo(db.Conn)
	items := NewSQLiteMenuItemRepo(db.Conn)
	ctx := context.Background()

	m1 := &models.UnlimitedMenu{Title: "A", IsActive: true}
	m2 := &models.UnlimitedMenu{Title: "B", IsActive: true}
	_ = menus.Create(ctx, m1)
	_ = menus.Create(ctx, m2)

	other := &models.MenuItem{MenuID: m2.ID, Name: "x", Category: "c", Position: intPtr(7)}
	if err := items.Create(ctx, other); err != nil {
		t.Fatal(err)
	}

	if max, _ := items.GetMaxPosition(ctx, m1.ID); max != -1 {
		t.Errorf("max for empty menu = %d, want -1", max)
	}
	if err := items.UpdatePosition(ctx, m1.ID, other.ID, 0); err == nil {
		t.Error("updating an item of another menu must fail")
	}
}

package services

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/search"
	"github.com/akinalp/pisi/repository"
)

// memoryIndex, dökümanları map'te tutan bir search.MenuIndex.
type memoryIndex struct {
	docs map[string]search.Document
}

func (m *memoryIndex) Enabled() bool              { return true }
func (m *memoryIndex) Init(context.Context) error { return nil }
func (m *memoryIndex) Remove(_ context.Context, id string) error {
	delete(m.docs, id)
	return nil
}

func (m *memoryIndex) Upsert(_ context.Context, docs []search.Document) error {
	for _, d := range docs {
		m.docs[d.ID] = d
	}
	return nil
}

func (m *memoryIndex) Replace(ctx context.Context, docs []search.Document) error {
	m.docs = make(map[string]search.Document)
	return m.Upsert(ctx, docs)
}

func (m *memoryIndex) Search(_ context.Context, query string, limit int) ([]search.Document, error) {
	var out []search.Document
	for _, d := range m.docs {
		if d.Name == query && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

func newMenuFixture(t *testing.T, index search.MenuIndex) (MenuService, ArrangeService) {
	t.Helper()
	db := newTestDB(t)
	arrange := newArrange(t, db, repository.NewSQLiteGalleryRepo(db.Conn))
	svc := NewMenuService(
		repository.NewSQLiteMenuRepo(db.Conn),
		repository.NewSQLiteMenuItemRepo(db.Conn),
		index,
		arrange,
		[]string{"Kahvaltılıklar", "İçecekler"},
	)
	return svc, arrange
}

func TestMenuItemsAppendAndSyncDrafts(t *testing.T) {
	svc, arrange := newMenuFixture(t, search.NewNopIndex())
	ctx := context.Background()

	menu, err := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Serpme Kahvaltı"})
	if err != nil {
		t.Fatalf("CreateMenu: %v", err)
	}
	if !menu.IsActive {
		t.Fatal("menus default to active")
	}

	first, err := svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Simit", Category: "Kahvaltılıklar"})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	collection := MenuCollection(menu.ID)
	if _, err := arrange.Load(ctx, "u1", collection); err != nil {
		t.Fatal(err)
	}

	second, err := svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Bal", Category: "Kahvaltılıklar"})
	if err != nil {
		t.Fatal(err)
	}
	if *first.Position != 0 || *second.Position != 1 {
		t.Fatalf("positions = %d, %d", *first.Position, *second.Position)
	}

	snap, _ := arrange.Load(ctx, "u1", collection)
	if got := snapshotIDs(snap); !slices.Equal(got, []string{first.ID, second.ID}) {
		t.Fatalf("draft = %v", got)
	}

	if err := svc.DeleteItem(ctx, menu.ID, first.ID); err != nil {
		t.Fatal(err)
	}
	snap, _ = arrange.Load(ctx, "u1", collection)
	if got := snapshotIDs(snap); !slices.Equal(got, []string{second.ID}) {
		t.Fatalf("draft after delete = %v", got)
	}
}

func TestMenuToggleFeaturedAndPublicVisibility(t *testing.T) {
	svc, _ := newMenuFixture(t, search.NewNopIndex())
	ctx := context.Background()

	inactive := false
	menu, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Kış Menüsü", IsActive: &inactive})
	item, _ := svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Sahlep", Category: "İçecekler"})

	toggled, err := svc.ToggleFeatured(ctx, menu.ID, item.ID)
	if err != nil || !toggled.Featured {
		t.Fatalf("ToggleFeatured = %+v, %v", toggled, err)
	}

	// Pasif menünün öğeleri öne çıkanlarda görünmez.
	if featured, _ := svc.Featured(ctx); len(featured) != 0 {
		t.Fatalf("featured = %d", len(featured))
	}
	if _, err := svc.GetMenu(ctx, menu.ID, true); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("public GetMenu err = %v", err)
	}
	if _, err := svc.GetMenu(ctx, menu.ID, false); err != nil {
		t.Fatalf("admin GetMenu: %v", err)
	}

	other, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Diğer"})
	if _, err := svc.ToggleFeatured(ctx, other.ID, item.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("item via wrong menu err = %v", err)
	}
}

func TestMenuCategoriesMergeSeedAndUsed(t *testing.T) {
	svc, _ := newMenuFixture(t, search.NewNopIndex())
	ctx := context.Background()

	menu, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Serpme"})
	svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Sucuklu Yumurta", Category: "Sıcaklar"})
	svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Zeytin", Category: "Kahvaltılıklar"})

	cats, err := svc.Categories(ctx)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Kahvaltılıklar", "İçecekler", "Sıcaklar"} {
		if !slices.Contains(cats, want) {
			t.Errorf("categories %v missing %q", cats, want)
		}
	}
	if len(cats) != 3 {
		t.Fatalf("categories = %v, want 3 unique", cats)
	}
}

func TestMenuSearchUsesIndexWhenEnabled(t *testing.T) {
	index := &memoryIndex{docs: map[string]search.Document{}}
	svc, _ := newMenuFixture(t, index)
	ctx := context.Background()

	menu, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Serpme"})
	item, _ := svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Menemen", Category: "Sıcaklar"})

	doc, ok := index.docs[item.ID]
	if !ok || doc.MenuTitle != "Serpme" {
		t.Fatalf("indexed doc = %+v, %v", doc, ok)
	}

	hits, err := svc.Search(ctx, "Menemen", 0)
	if err != nil || len(hits) != 1 || hits[0].ID != item.ID {
		t.Fatalf("Search = %+v, %v", hits, err)
	}

	title := "Köy Kahvaltısı"
	if _, err := svc.UpdateMenu(ctx, menu.ID, &models.UpdateMenuRequest{Title: &title}); err != nil {
		t.Fatal(err)
	}
	if index.docs[item.ID].MenuTitle != title {
		t.Fatal("menu rename not reflected in index")
	}

	if err := svc.DeleteItem(ctx, menu.ID, item.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := index.docs[item.ID]; ok {
		t.Fatal("deleted item still indexed")
	}
}

func TestMenuSearchFallsBackToSQL(t *testing.T) {
	svc, _ := newMenuFixture(t, search.NewNopIndex())
	ctx := context.Background()

	menu, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Serpme"})
	svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Kaşarlı Pişi", Category: "Sıcaklar"})

	hits, err := svc.Search(ctx, "Pişi", 10)
	if err != nil || len(hits) != 1 {
		t.Fatalf("Search = %+v, %v", hits, err)
	}
	if hits, _ := svc.Search(ctx, "   ", 10); len(hits) != 0 {
		t.Fatal("blank query returned hits")
	}
	if n, err := svc.Reindex(ctx); err != nil || n != 0 {
		t.Fatalf("Reindex without index = %d, %v", n, err)
	}
}

func TestMenuReindexReplacesDocuments(t *testing.T) {
	index := &memoryIndex{docs: map[string]search.Document{"stale": {ID: "stale"}}}
	svc, _ := newMenuFixture(t, index)
	ctx := context.Background()

	menu, _ := svc.CreateMenu(ctx, &models.CreateMenuRequest{Title: "Serpme"})
	svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Bal", Category: "Kahvaltılıklar"})
	svc.CreateItem(ctx, menu.ID, &models.CreateMenuItemRequest{Name: "Kaymak", Category: "Kahvaltılıklar"})

	n, err := svc.Reindex(ctx)
	if err != nil || n != 2 {
		t.Fatalf("Reindex = %d, %v", n, err)
	}
	if _, ok := index.docs["stale"]; ok || len(index.docs) != 2 {
		t.Fatalf("index docs = %d", len(index.docs))
	}
}

package services

import (
	"context"
	"errors"
	"slices"
	"sync/atomic"
	"testing"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/ordering"
	"github.com/akinalp/pisi/repository"
)

// failingGalleryRepo, UpdatePosition çağrılarını sayar ve fail doluysa hata döner.
type failingGalleryRepo struct {
	repository.GalleryRepository
	fail  error
	calls atomic.Int32
}

func (r *failingGalleryRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	r.calls.Add(1)
	if r.fail != nil {
		return r.fail
	}
	return r.GalleryRepository.UpdatePosition(ctx, id, position)
}

func snapshotIDs(s *ArrangeSnapshot) []string {
	return ordering.IDs(s.Items)
}

func TestArrangeMoveAndCommit(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	a := addGallery(t, repo, "A", intPtr(0))
	b := addGallery(t, repo, "B", intPtr(1))

	snap, err := arrange.Load(ctx, "u1", CollectionGallery)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := snapshotIDs(snap); !slices.Equal(got, []string{a.ID, b.ID}) {
		t.Fatalf("initial order = %v", got)
	}

	snap, err = arrange.Move(ctx, "u1", CollectionGallery, b.ID, a.ID)
	if err != nil {
		t.Fatalf("Move: %v", err)
	}
	if !snap.Dirty {
		t.Fatal("expected dirty after move")
	}

	// Taslak kaydedilmeden veritabanı değişmemeli.
	list, _ := repo.List(ctx)
	if list[0].ID != a.ID {
		t.Fatal("move must not write to the database")
	}

	snap, err = arrange.Commit(ctx, "u1", CollectionGallery)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.Dirty || snap.Saving {
		t.Fatalf("after commit dirty=%v saving=%v", snap.Dirty, snap.Saving)
	}

	list, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if list[0].ID != b.ID || list[1].ID != a.ID {
		t.Fatalf("persisted order = [%s %s], want [B A]", *list[0].Title, *list[1].Title)
	}
	if *list[0].Position != 0 || *list[1].Position != 1 {
		t.Fatalf("positions = %d, %d", *list[0].Position, *list[1].Position)
	}
	for i, it := range snap.Items {
		if p := it.ItemPosition(); p == nil || *p != i {
			t.Fatalf("draft item %d position = %v", i, p)
		}
	}
}

func TestArrangeCommitFailureKeepsDirty(t *testing.T) {
	db := newTestDB(t)
	base := repository.NewSQLiteGalleryRepo(db.Conn)
	repo := &failingGalleryRepo{GalleryRepository: base, fail: errors.New("disk full")}
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	a := addGallery(t, base, "A", intPtr(0))
	b := addGallery(t, base, "B", intPtr(1))

	if _, err := arrange.Move(ctx, "u1", CollectionGallery, b.ID, a.ID); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := arrange.Commit(ctx, "u1", CollectionGallery); err == nil {
		t.Fatal("expected commit error")
	}

	snap, err := arrange.Load(ctx, "u1", CollectionGallery)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !snap.Dirty || snap.Saving {
		t.Fatalf("dirty=%v saving=%v, want dirty and not saving", snap.Dirty, snap.Saving)
	}
	if got := snapshotIDs(snap); !slices.Equal(got, []string{b.ID, a.ID}) {
		t.Fatalf("draft order lost: %v", got)
	}

	// Hata giderilince aynı taslak kaydedilebilir.
	repo.fail = nil
	if snap, err = arrange.Commit(ctx, "u1", CollectionGallery); err != nil || snap.Dirty {
		t.Fatalf("retry commit: dirty=%v err=%v", snap != nil && snap.Dirty, err)
	}
}

func TestArrangeCommitCleanIsNoop(t *testing.T) {
	db := newTestDB(t)
	base := repository.NewSQLiteGalleryRepo(db.Conn)
	repo := &failingGalleryRepo{GalleryRepository: base}
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	addGallery(t, base, "A", intPtr(0))
	addGallery(t, base, "B", intPtr(1))

	snap, err := arrange.Commit(ctx, "u1", CollectionGallery)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if snap.Dirty {
		t.Fatal("clean draft reported dirty")
	}
	if n := repo.calls.Load(); n != 0 {
		t.Fatalf("UpdatePosition called %d times on clean commit", n)
	}
}

func TestArrangeDraftsArePerUser(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	a := addGallery(t, repo, "A", intPtr(0))
	b := addGallery(t, repo, "B", intPtr(1))

	if _, err := arrange.Move(ctx, "u1", CollectionGallery, b.ID, a.ID); err != nil {
		t.Fatalf("Move: %v", err)
	}
	other, err := arrange.Load(ctx, "u2", CollectionGallery)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if other.Dirty || snapshotIDs(other)[0] != a.ID {
		t.Fatal("another admin's draft leaked")
	}
}

func TestArrangeRefreshDiscardsDraft(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	a := addGallery(t, repo, "A", intPtr(0))
	b := addGallery(t, repo, "B", intPtr(1))

	if _, err := arrange.Move(ctx, "u1", CollectionGallery, b.ID, a.ID); err != nil {
		t.Fatalf("Move: %v", err)
	}
	snap, err := arrange.Refresh(ctx, "u1", CollectionGallery)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if snap.Dirty || !slices.Equal(snapshotIDs(snap), []string{a.ID, b.ID}) {
		t.Fatalf("refresh kept draft: %v dirty=%v", snapshotIDs(snap), snap.Dirty)
	}
}

func TestArrangeSyncsAddedAndRemovedItems(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	a := addGallery(t, repo, "A", intPtr(0))
	b := addGallery(t, repo, "B", intPtr(1))
	if _, err := arrange.Move(ctx, "u1", CollectionGallery, b.ID, a.ID); err != nil {
		t.Fatalf("Move: %v", err)
	}

	c := addGallery(t, repo, "C", intPtr(2))
	arrange.ItemAdded(CollectionGallery, c)
	if err := repo.Delete(ctx, a.ID); err != nil {
		t.Fatal(err)
	}
	arrange.ItemRemoved(CollectionGallery, a.ID)

	snap, _ := arrange.Load(ctx, "u1", CollectionGallery)
	if got := snapshotIDs(snap); !slices.Equal(got, []string{b.ID, c.ID}) {
		t.Fatalf("draft = %v, want [B C]", got)
	}

	// Silinen öğe commit'i bozmamalı.
	if _, err := arrange.Commit(ctx, "u1", CollectionGallery); err != nil {
		t.Fatalf("Commit: %v", err)
	}
}

func TestArrangeUnknownCollectionAndItem(t *testing.T) {
	db := newTestDB(t)
	repo := repository.NewSQLiteGalleryRepo(db.Conn)
	arrange := newArrange(t, db, repo)
	ctx := context.Background()

	for _, c := range []string{"branches", "menu:", "menu:missing"} {
		_, err := arrange.Load(ctx, "u1", c)
		var uerr *pkg.UserError
		if !errors.As(err, &uerr) || uerr.Key != "arrange.unknownCollection" {
			t.Errorf("Load(%q) err = %v", c, err)
		}
	}

	a := addGallery(t, repo, "A", intPtr(0))
	_, err := arrange.Move(ctx, "u1", CollectionGallery, a.ID, "nope")
	if !errors.Is(err, pkg.ErrBadRequest) {
		t.Fatalf("Move unknown target err = %v", err)
	}
}

func TestArrangeMenuCollection(t *testing.T) {
	db := newTestDB(t)
	arrange := newArrange(t, db, repository.NewSQLiteGalleryRepo(db.Conn))
	menuRepo := repository.NewSQLiteMenuRepo(db.Conn)
	itemRepo := repository.NewSQLiteMenuItemRepo(db.Conn)
	ctx := context.Background()

	menu := &models.UnlimitedMenu{Title: "Serpme", IsActive: true}
	if err := menuRepo.Create(ctx, menu); err != nil {
		t.Fatal(err)
	}
	var ids []string
	for i, name := range []string{"Simit", "Peynir", "Bal"} {
		it := &models.MenuItem{MenuID: menu.ID, Name: name, Category: "Kahvaltı", Position: intPtr(i)}
		if err := itemRepo.Create(ctx, it); err != nil {
			t.Fatal(err)
		}
		ids = append(ids, it.ID)
	}

	collection := MenuCollection(menu.ID)
	if _, err := arrange.Move(ctx, "u1", collection, ids[2], ids[0]); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if _, err := arrange.Commit(ctx, "u1", collection); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	items, err := itemRepo.ListByMenu(ctx, menu.ID)
	if err != nil {
		t.Fatal(err)
	}
	got := ordering.IDs(items)
	if want := []string{ids[2], ids[0], ids[1]}; !slices.Equal(got, want) {
		t.Fatalf("menu order = %v, want %v", got, want)
	}
}

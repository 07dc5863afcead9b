package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/cache"
	"github.com/akinalp/pisi/pkg/ordering"
	"github.com/akinalp/pisi/repository"
)

// Sıralanabilir koleksiyon türleri.
const (
	CollectionGallery    = "gallery"
	collectionMenuPrefix = "menu:"
)

// MenuCollection, bir menünün öğe koleksiyonunun adını döner: "menu:<menuID>".
func MenuCollection(menuID string) string {
	return collectionMenuPrefix + menuID
}

// ArrangeSnapshot, bir sıralama taslağının istemciye dönen hali.
type ArrangeSnapshot struct {
	Collection string          `json:"collection"`
	Items      []ordering.Item `json:"items"`
	Dirty      bool            `json:"dirty"`
	Saving     bool            `json:"saving"`
}

// ArrangeService, admin başına sıralama taslaklarını yönetir.
//
// Taslak (draft), bir admin'in bir koleksiyon üzerinde yaptığı henüz
// kaydedilmemiş sıralamadır. Move sadece taslağı değiştirir, Commit her
// öğenin yeni position'ını eşzamanlı olarak yazar. Refresh taslağı atıp
// veritabanından yeniden okur.
type ArrangeService interface {
	Load(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error)
	Refresh(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error)
	Move(ctx context.Context, userID, collection, sourceID, targetID string) (*ArrangeSnapshot, error)
	Commit(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error)
	Discard(userID, collection string)
	Close()
	DraftSync
}

// DraftSync, diğer service'lerin açık taslakları güncel tutmak için kullandığı interface.
type DraftSync interface {
	// ApplyHero, bir görselin hero değişikliğini açık galeri taslaklarına yansıtır.
	ApplyHero(item *models.GalleryItem)
	// ItemAdded, yeni öğeyi koleksiyonun açık taslaklarının sonuna ekler.
	ItemAdded(collection string, item ordering.Item)
	// ItemRemoved, silinen öğeyi koleksiyonun açık taslaklarından çıkarır.
	ItemRemoved(collection, id string)
}

// arrangeSource, bir koleksiyonun okunduğu ve position'larının yazıldığı yer.
type arrangeSource interface {
	load(ctx context.Context) ([]ordering.Item, error)
	updatePosition(ctx context.Context, id string, position int) error
}

type draft struct {
	collection string
	source     arrangeSource
	board      *ordering.Board[ordering.Item]
}

type arrangeService struct {
	galleryRepo  repository.GalleryRepository
	menuRepo     repository.UnlimitedMenuRepository
	menuItemRepo repository.MenuItemRepository
	drafts       *cache.TTLCache[string, *draft]
}

// NewArrangeService, constructor. draftTTL boyunca dokunulmayan taslaklar silinir.
func NewArrangeService(
	galleryRepo repository.GalleryRepository,
	menuRepo repository.UnlimitedMenuRepository,
	menuItemRepo repository.MenuItemRepository,
	draftTTL time.Duration,
) ArrangeService {
	cleanup := draftTTL / 4
	if cleanup < time.Second {
		cleanup = time.Second
	}
	return &arrangeService{
		galleryRepo:  galleryRepo,
		menuRepo:     menuRepo,
		menuItemRepo: menuItemRepo,
		drafts:       cache.New[string, *draft](draftTTL, cleanup),
	}
}

func draftKey(userID, collection string) string {
	return userID + "|" + collection
}

func errUnknownCollection() error {
	return pkg.NewUserError(pkg.ErrBadRequest, "arrange.unknownCollection", nil)
}

func (s *arrangeService) resolve(ctx context.Context, collection string) (arrangeSource, error) {
	if collection == CollectionGallery {
		return &gallerySource{repo: s.galleryRepo}, nil
	}

	menuID, ok := strings.CutPrefix(collection, collectionMenuPrefix)
	if !ok || menuID == "" {
		return nil, errUnknownCollection()
	}
	if _, err := s.menuRepo.GetByID(ctx, menuID); err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, errUnknownCollection()
		}
		return nil, err
	}
	return &menuSource{repo: s.menuItemRepo, menuID: menuID}, nil
}

func (s *arrangeService) newDraft(ctx context.Context, collection string) (*draft, error) {
	source, err := s.resolve(ctx, collection)
	if err != nil {
		return nil, err
	}
	items, err := source.load(ctx)
	if err != nil {
		return nil, err
	}
	return &draft{
		collection: collection,
		source:     source,
		board:      ordering.NewBoard(items),
	}, nil
}

// getOrLoad, mevcut taslağı döner, yoksa veritabanından temiz bir taslak oluşturur.
func (s *arrangeService) getOrLoad(ctx context.Context, userID, collection string) (*draft, error) {
	key := draftKey(userID, collection)
	if d, ok := s.drafts.Get(key); ok {
		s.drafts.Touch(key)
		return d, nil
	}

	fresh, err := s.newDraft(ctx, collection)
	if err != nil {
		return nil, err
	}
	// Aynı anda başka bir istek taslağı oluşturduysa onunki kullanılır.
	d, _ := s.drafts.GetOrCreate(key, func() *draft { return fresh })
	return d, nil
}

func (s *arrangeService) Load(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error) {
	d, err := s.getOrLoad(ctx, userID, collection)
	if err != nil {
		return nil, err
	}
	return d.snapshot(), nil
}

func (s *arrangeService) Refresh(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error) {
	key := draftKey(userID, collection)
	if old, ok := s.drafts.Get(key); ok && old.board.Snapshot().Saving {
		return nil, pkg.NewUserError(pkg.ErrConflict, "arrange.commitInFlight", nil)
	}

	fresh, err := s.newDraft(ctx, collection)
	if err != nil {
		return nil, err
	}
	s.drafts.Set(key, fresh)
	return fresh.snapshot(), nil
}

func (s *arrangeService) Move(ctx context.Context, userID, collection, sourceID, targetID string) (*ArrangeSnapshot, error) {
	d, err := s.getOrLoad(ctx, userID, collection)
	if err != nil {
		return nil, err
	}

	if err := d.board.Reorder(sourceID, targetID); err != nil {
		if errors.Is(err, ordering.ErrUnknownItem) {
			return nil, pkg.NewUserError(pkg.ErrBadRequest, "arrange.unknownItem", nil)
		}
		return nil, err
	}
	return d.snapshot(), nil
}

// Commit, taslak sırayı kalıcı yazar. Her öğe için ayrı bir UpdatePosition
// eşzamanlı gönderilir, hepsi başarılıysa commit başarılıdır. Biri bile
// başarısız olursa hata döner, taslak ve dirty korunur. Yazılmış satırlar
// geri alınmaz.
func (s *arrangeService) Commit(ctx context.Context, userID, collection string) (*ArrangeSnapshot, error) {
	d, err := s.getOrLoad(ctx, userID, collection)
	if err != nil {
		return nil, err
	}

	placements, ok, err := d.board.BeginCommit()
	if err != nil {
		if errors.Is(err, ordering.ErrCommitInFlight) {
			return nil, pkg.NewUserError(pkg.ErrConflict, "arrange.commitInFlight", nil)
		}
		return nil, err
	}
	if !ok {
		return d.snapshot(), nil
	}

	var g errgroup.Group
	for _, p := range placements {
		g.Go(func() error {
			if err := d.source.updatePosition(ctx, p.ID, p.Position); err != nil {
				return fmt.Errorf("failed to save position of %s: %w", p.ID, err)
			}
			return nil
		})
	}
	commitErr := g.Wait()

	d.board.FinishCommit(placements, commitErr)
	if commitErr != nil {
		log.Printf("[arrange] commit failed for %s (user %s): %v", collection, userID, commitErr)
		return nil, commitErr
	}

	for _, p := range placements {
		d.board.Update(p.ID, func(it ordering.Item) ordering.Item {
			return withPosition(it, p.Position)
		})
	}
	log.Printf("[arrange] committed %d positions for %s (user %s)", len(placements), collection, userID)
	return d.snapshot(), nil
}

func (s *arrangeService) Discard(userID, collection string) {
	s.drafts.Delete(draftKey(userID, collection))
}

func (s *arrangeService) Close() {
	s.drafts.Close()
}

// forEachDraft, koleksiyonun tüm açık taslakları için fn'i çağırır.
func (s *arrangeService) forEachDraft(collection string, fn func(d *draft)) {
	var matched []*draft
	s.drafts.Range(func(_ string, d *draft) bool {
		if d.collection == collection {
			matched = append(matched, d)
		}
		return true
	})
	for _, d := range matched {
		fn(d)
	}
}

func (s *arrangeService) ApplyHero(item *models.GalleryItem) {
	s.forEachDraft(CollectionGallery, func(d *draft) {
		d.board.UpdateAll(func(it ordering.Item) ordering.Item {
			g, ok := it.(*models.GalleryItem)
			if !ok {
				return it
			}
			switch {
			case g.ID == item.ID:
				c := *g
				c.HeroMain, c.HeroSection = item.HeroMain, item.HeroSection
				return &c
			case item.HeroMain && g.HeroMain:
				c := *g
				c.HeroMain, c.HeroSection = false, false
				return &c
			}
			return it
		})
	})
}

func (s *arrangeService) ItemAdded(collection string, item ordering.Item) {
	s.forEachDraft(collection, func(d *draft) {
		d.board.Append(item)
	})
}

func (s *arrangeService) ItemRemoved(collection, id string) {
	s.forEachDraft(collection, func(d *draft) {
		d.board.Remove(id)
	})
}

func (d *draft) snapshot() *ArrangeSnapshot {
	snap := d.board.Snapshot()
	return &ArrangeSnapshot{
		Collection: d.collection,
		Items:      snap.Items,
		Dirty:      snap.Dirty,
		Saving:     snap.Saving,
	}
}

// withPosition, öğenin position'ı güncellenmiş bir kopyasını döner.
func withPosition(it ordering.Item, position int) ordering.Item {
	switch v := it.(type) {
	case *models.GalleryItem:
		c := *v
		c.Position = &position
		return &c
	case *models.MenuItem:
		c := *v
		c.Position = &position
		return &c
	}
	return it
}

type gallerySource struct {
	repo repository.GalleryRepository
}

func (s *gallerySource) load(ctx context.Context) ([]ordering.Item, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toItems(items), nil
}

func (s *gallerySource) updatePosition(ctx context.Context, id string, position int) error {
	return s.repo.UpdatePosition(ctx, id, position)
}

type menuSource struct {
	repo   repository.MenuItemRepository
	menuID string
}

func (s *menuSource) load(ctx context.Context) ([]ordering.Item, error) {
	items, err := s.repo.ListByMenu(ctx, s.menuID)
	if err != nil {
		return nil, err
	}
	return toItems(items), nil
}

func (s *menuSource) updatePosition(ctx context.Context, id string, position int) error {
	return s.repo.UpdatePosition(ctx, s.menuID, id, position)
}

func toItems[T ordering.Item](list []T) []ordering.Item {
	out := make([]ordering.Item, len(list))
	for i, v := range list {
		out[i] = v
	}
	return out
}

package services

import (
	"context"
	"log"
	"sort"
	"strings"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
	"github.com/akinalp/pisi/pkg/search"
	"github.com/akinalp/pisi/repository"
)

// Arama sonuç sınırları.
const (
	defaultSearchLimit = 20
	maxSearchLimit     = 50
)

// MenuService, sınırsız kahvaltı menüleri ve öğeleri için iş mantığı.
//
// Menü öğesi her yazıldığında arama index'i best-effort güncellenir;
// index hatası isteği başarısız yapmaz, gece yapılan Reindex tutarlılığı
// geri getirir.
type MenuService interface {
	ListMenus(ctx context.Context, activeOnly bool) ([]*models.UnlimitedMenuWithItems, error)
	GetMenu(ctx context.Context, id string, activeOnly bool) (*models.UnlimitedMenuWithItems, error)
	CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.UnlimitedMenu, error)
	UpdateMenu(ctx context.Context, id string, req *models.UpdateMenuRequest) (*models.UnlimitedMenu, error)
	DeleteMenu(ctx context.Context, id string) error

	ListItems(ctx context.Context, menuID string, activeOnly bool) ([]*models.MenuItem, error)
	CreateItem(ctx context.Context, menuID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, menuID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, menuID, itemID string) error
	ToggleFeatured(ctx context.Context, menuID, itemID string) (*models.MenuItem, error)
	ReorderItems(ctx context.Context, menuID string, req *models.ReorderRequest) ([]*models.MenuItem, error)
	Featured(ctx context.Context) ([]*models.MenuItem, error)

	// Categories, seed'deki öneriler ile kullanımdaki kategorilerin birleşimi.
	Categories(ctx context.Context) ([]string, error)
	Search(ctx context.Context, query string, limit int) ([]models.MenuSearchHit, error)
	// Reindex, arama index'ini veritabanından baştan kurar. Döküman sayısını döner.
	Reindex(ctx context.Context) (int, error)
}

type menuService struct {
	menuRepo   repository.UnlimitedMenuRepository
	itemRepo   repository.MenuItemRepository
	index      search.MenuIndex
	drafts     DraftSync
	categories []string
}

// NewMenuService, constructor. categories seed dosyasındaki önerilen kategorilerdir.
func NewMenuService(
	menuRepo repository.UnlimitedMenuRepository,
	itemRepo repository.MenuItemRepository,
	index search.MenuIndex,
	drafts DraftSync,
	categories []string,
) MenuService {
	return &menuService{
		menuRepo:   menuRepo,
		itemRepo:   itemRepo,
		index:      index,
		drafts:     drafts,
		categories: categories,
	}
}

// ─── Menus ───

func (s *menuService) ListMenus(ctx context.Context, activeOnly bool) ([]*models.UnlimitedMenuWithItems, error) {
	menus, err := s.menuRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	out := make([]*models.UnlimitedMenuWithItems, 0, len(menus))
	for _, m := range menus {
		items, err := s.itemRepo.ListByMenu(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, &models.UnlimitedMenuWithItems{UnlimitedMenu: *m, Items: items})
	}
	return out, nil
}

// getMenu, menüyü döner. activeOnly iken pasif menü bulunamadı sayılır.
func (s *menuService) getMenu(ctx context.Context, id string, activeOnly bool) (*models.UnlimitedMenu, error) {
	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if activeOnly && !menu.IsActive {
		return nil, pkg.ErrNotFound
	}
	return menu, nil
}

func (s *menuService) GetMenu(ctx context.Context, id string, activeOnly bool) (*models.UnlimitedMenuWithItems, error) {
	menu, err := s.getMenu(ctx, id, activeOnly)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.ListByMenu(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.UnlimitedMenuWithItems{UnlimitedMenu: *menu, Items: items}, nil
}

func (s *menuService) CreateMenu(ctx context.Context, req *models.CreateMenuRequest) (*models.UnlimitedMenu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	menu := &models.UnlimitedMenu{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		IsActive:    isActive,
	}
	if err := s.menuRepo.Create(ctx, menu); err != nil {
		return nil, err
	}
	return menu, nil
}

func (s *menuService) UpdateMenu(ctx context.Context, id string, req *models.UpdateMenuRequest) (*models.UnlimitedMenu, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	menu, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	titleChanged := req.Title != nil && *req.Title != menu.Title
	if req.Title != nil {
		menu.Title = *req.Title
	}
	if req.Description != nil {
		menu.Description = emptyToNil(req.Description)
	}
	if req.Price != nil {
		menu.Price = req.Price
	}
	if req.IsActive != nil {
		menu.IsActive = *req.IsActive
	}

	if err := s.menuRepo.Update(ctx, menu); err != nil {
		return nil, err
	}

	// Index dökümanları menü başlığını taşır.
	if titleChanged {
		items, err := s.itemRepo.ListByMenu(ctx, id)
		if err != nil {
			log.Printf("[search] failed to list items of menu %s: %v", id, err)
		} else {
			s.indexItems(ctx, menu, items...)
		}
	}
	return menu, nil
}

// DeleteMenu, menüyü siler. Öğeler FK cascade ile silinir.
func (s *menuService) DeleteMenu(ctx context.Context, id string) error {
	if _, err := s.menuRepo.GetByID(ctx, id); err != nil {
		return err
	}
	items, err := s.itemRepo.ListByMenu(ctx, id)
	if err != nil {
		return err
	}

	if err := s.menuRepo.Delete(ctx, id); err != nil {
		return err
	}

	collection := MenuCollection(id)
	for _, it := range items {
		s.drafts.ItemRemoved(collection, it.ID)
		s.unindexItem(ctx, it.ID)
	}
	return nil
}

// ─── Items ───

func (s *menuService) ListItems(ctx context.Context, menuID string, activeOnly bool) ([]*models.MenuItem, error) {
	if _, err := s.getMenu(ctx, menuID, activeOnly); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByMenu(ctx, menuID)
}

func (s *menuService) itemOf(ctx context.Context, menuID, itemID string) (*models.MenuItem, error) {
	item, err := s.itemRepo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.MenuID != menuID {
		return nil, pkg.ErrNotFound
	}
	return item, nil
}

func (s *menuService) CreateItem(ctx context.Context, menuID string, req *models.CreateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	menu, err := s.menuRepo.GetByID(ctx, menuID)
	if err != nil {
		return nil, err
	}

	maxPos, err := s.itemRepo.GetMaxPosition(ctx, menuID)
	if err != nil {
		return nil, err
	}
	pos := maxPos + 1

	item := &models.MenuItem{
		MenuID:      menuID,
		Name:        req.Name,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Category:    req.Category,
		Featured:    req.Featured,
		Position:    &pos,
	}
	if err := s.itemRepo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.drafts.ItemAdded(MenuCollection(menuID), item)
	s.indexItems(ctx, menu, item)
	return item, nil
}

func (s *menuService) UpdateItem(ctx context.Context, menuID, itemID string, req *models.UpdateMenuItemRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item, err := s.itemOf(ctx, menuID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = emptyToNil(req.Description)
	}
	if req.ImageURL != nil {
		item.ImageURL = emptyToNil(req.ImageURL)
	}
	if req.Featured != nil {
		item.Featured = *req.Featured
	}

	return s.saveItem(ctx, item)
}

func (s *menuService) ToggleFeatured(ctx context.Context, menuID, itemID string) (*models.MenuItem, error) {
	item, err := s.itemOf(ctx, menuID, itemID)
	if err != nil {
		return nil, err
	}
	item.Featured = !item.Featured
	return s.saveItem(ctx, item)
}

func (s *menuService) saveItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	menu, err := s.menuRepo.GetByID(ctx, item.MenuID)
	if err != nil {
		log.Printf("[search] failed to load menu %s for indexing: %v", item.MenuID, err)
		return item, nil
	}
	s.indexItems(ctx, menu, item)
	return item, nil
}

func (s *menuService) DeleteItem(ctx context.Context, menuID, itemID string) error {
	if _, err := s.itemOf(ctx, menuID, itemID); err != nil {
		return err
	}
	if err := s.itemRepo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.drafts.ItemRemoved(MenuCollection(menuID), itemID)
	s.unindexItem(ctx, itemID)
	return nil
}

func (s *menuService) ReorderItems(ctx context.Context, menuID string, req *models.ReorderRequest) ([]*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.itemRepo.UpdatePositions(ctx, menuID, req.Items); err != nil {
		return nil, err
	}
	return s.itemRepo.ListByMenu(ctx, menuID)
}

func (s *menuService) Featured(ctx context.Context) ([]*models.MenuItem, error) {
	return s.itemRepo.ListFeatured(ctx)
}

// ─── Categories & search ───

func (s *menuService) Categories(ctx context.Context) ([]string, error) {
	used, err := s.itemRepo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(s.categories)+len(used))
	out := make([]string, 0, len(s.categories)+len(used))
	for _, c := range append(append([]string{}, s.categories...), used...) {
		key := strings.ToLower(c)
		if c == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// Search, Meilisearch yapılandırılmışsa index'te, değilse SQL LIKE ile arar.
// Index hata verirse SQL aramasına düşülür.
func (s *menuService) Search(ctx context.Context, query string, limit int) ([]models.MenuSearchHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.MenuSearchHit{}, nil
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	if s.index.Enabled() {
		docs, err := s.index.Search(ctx, query, limit)
		if err == nil {
			hits := make([]models.MenuSearchHit, 0, len(docs))
			for _, d := range docs {
				hits = append(hits, models.MenuSearchHit(d))
			}
			return hits, nil
		}
		log.Printf("[search] index query failed, falling back to sql: %v", err)
	}

	return s.itemRepo.Search(ctx, query, limit)
}

func (s *menuService) Reindex(ctx context.Context) (int, error) {
	if !s.index.Enabled() {
		return 0, nil
	}

	hits, err := s.itemRepo.ListSearchDocuments(ctx)
	if err != nil {
		return 0, err
	}
	docs := make([]search.Document, 0, len(hits))
	for _, h := range hits {
		docs = append(docs, search.Document(h))
	}

	if err := s.index.Replace(ctx, docs); err != nil {
		return 0, err
	}
	log.Printf("[search] reindexed %d menu items", len(docs))
	return len(docs), nil
}

func (s *menuService) indexItems(ctx context.Context, menu *models.UnlimitedMenu, items ...*models.MenuItem) {
	if !s.index.Enabled() || len(items) == 0 {
		return
	}
	docs := make([]search.Document, 0, len(items))
	for _, it := range items {
		docs = append(docs, search.Document{
			ID:        it.ID,
			MenuID:    it.MenuID,
			MenuTitle: menu.Title,
			Name:      it.Name,
			Category:  it.Category,
			Featured:  it.Featured,
		})
	}
	if err := s.index.Upsert(ctx, docs); err != nil {
		log.Printf("[search] failed to index %d items of menu %s: %v", len(docs), menu.ID, err)
	}
}

func (s *menuService) unindexItem(ctx context.Context, id string) {
	if !s.index.Enabled() {
		return
	}
	if err := s.index.Remove(ctx, id); err != nil {
		log.Printf("[search] failed to remove item %s from index: %v", id, err)
	}
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// ─── Unlimited menu ───

const menuColumns = `id, title, description, price, is_active, created_at, updated_at`

type sqliteMenuRepo struct {
	db *sql.DB
}

// NewSQLiteMenuRepo, constructor — interface döner.
func NewSQLiteMenuRepo(db *sql.DB) UnlimitedMenuRepository {
	return &sqliteMenuRepo{db: db}
}

func scanMenu(s rowScanner) (*models.UnlimitedMenu, error) {
	m := &models.UnlimitedMenu{}
	err := s.Scan(&m.ID, &m.Title, &m.Description, &m.Price, &m.IsActive, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

func (r *sqliteMenuRepo) Create(ctx context.Context, menu *models.UnlimitedMenu) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO unlimited_menu (id, title, description, price, is_active)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`,
		menu.Title, menu.Description, menu.Price, menu.IsActive,
	).Scan(&menu.ID, &menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu: %w", err)
	}
	return nil
}

func (r *sqliteMenuRepo) GetByID(ctx context.Context, id string) (*models.UnlimitedMenu, error) {
	m, err := scanMenu(r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM unlimited_menu WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return m, nil
}

func (r *sqliteMenuRepo) List(ctx context.Context, activeOnly bool) ([]*models.UnlimitedMenu, error) {
	query := `SELECT ` + menuColumns + ` FROM unlimited_menu`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	menus := []*models.UnlimitedMenu{}
	for rows.Next() {
		m, err := scanMenu(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (r *sqliteMenuRepo) Update(ctx context.Context, menu *models.UnlimitedMenu) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE unlimited_menu
		SET title = ?, description = ?, price = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		menu.Title, menu.Description, menu.Price, menu.IsActive, menu.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu: %w", err)
	}
	return affectedOrNotFound(result, "menu")
}

func (r *sqliteMenuRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM unlimited_menu WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu: %w", err)
	}
	return affectedOrNotFound(result, "menu")
}

// ─── Menu items ───

const menuItemColumns = `id, menu_id, name, description, image_url, category, featured, position, created_at`

type sqliteMenuItemRepo struct {
	db *sql.DB
}

// NewSQLiteMenuItemRepo, constructor — interface döner.
func NewSQLiteMenuItemRepo(db *sql.DB) MenuItemRepository {
	return &sqliteMenuItemRepo{db: db}
}

func scanMenuItem(s rowScanner) (*models.MenuItem, error) {
	m := &models.MenuItem{}
	err := s.Scan(&m.ID, &m.MenuID, &m.Name, &m.Description, &m.ImageURL,
		&m.Category, &m.Featured, &m.Position, &m.CreatedAt)
	return m, err
}

func (r *sqliteMenuItemRepo) queryItems(ctx context.Context, query string, args ...any) ([]*models.MenuItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	defer rows.Close()

	items := []*models.MenuItem{}
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *sqliteMenuItemRepo) Create(ctx context.Context, item *models.MenuItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO unlimited_menu_items (id, menu_id, name, description, image_url, category, featured, position)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		item.MenuID, item.Name, item.Description, item.ImageURL, item.Category, item.Featured, item.Position,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create menu item: %w", err)
	}
	return nil
}

func (r *sqliteMenuItemRepo) GetByID(ctx context.Context, id string) (*models.MenuItem, error) {
	m, err := scanMenuItem(r.db.QueryRowContext(ctx,
		`SELECT `+menuItemColumns+` FROM unlimited_menu_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return m, nil
}

func (r *sqliteMenuItemRepo) ListByMenu(ctx context.Context, menuID string) ([]*models.MenuItem, error) {
	return r.queryItems(ctx,
		`SELECT `+menuItemColumns+` FROM unlimited_menu_items WHERE menu_id = ? ORDER BY `+orderByPosition, menuID)
}

func (r *sqliteMenuItemRepo) ListFeatured(ctx context.Context) ([]*models.MenuItem, error) {
	return r.queryItems(ctx, `
		SELECT i.id, i.menu_id, i.name, i.description, i.image_url, i.category, i.featured, i.position, i.created_at
		FROM unlimited_menu_items i
		JOIN unlimited_menu m ON m.id = i.menu_id
		WHERE i.featured = 1 AND m.is_active = 1
		ORDER BY i.position IS NULL, i.position ASC, i.created_at DESC`)
}

func (r *sqliteMenuItemRepo) Update(ctx context.Context, item *models.MenuItem) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE unlimited_menu_items
		SET name = ?, description = ?, image_url = ?, category = ?, featured = ?
		WHERE id = ?`,
		item.Name, item.Description, item.ImageURL, item.Category, item.Featured, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	return affectedOrNotFound(result, "menu item")
}

func (r *sqliteMenuItemRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM unlimited_menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return affectedOrNotFound(result, "menu item")
}

func (r *sqliteMenuItemRepo) GetMaxPosition(ctx context.Context, menuID string) (int, error) {
	return maxPosition(ctx, r.db, "unlimited_menu_items", positionScope{column: "menu_id", value: menuID})
}

func (r *sqliteMenuItemRepo) UpdatePosition(ctx context.Context, menuID, id string, position int) error {
	return updatePosition(ctx, r.db, "unlimited_menu_items", positionScope{column: "menu_id", value: menuID}, id, position)
}

func (r *sqliteMenuItemRepo) UpdatePositions(ctx context.Context, menuID string, items []models.PositionUpdate) error {
	return updatePositions(ctx, r.db, "unlimited_menu_items", positionScope{column: "menu_id", value: menuID}, items)
}

func (r *sqliteMenuItemRepo) ListCategories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM unlimited_menu_items WHERE category != '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

const searchHitQuery = `
	SELECT i.id, i.menu_id, m.title, i.name, i.category, i.featured
	FROM unlimited_menu_items i
	JOIN unlimited_menu m ON m.id = i.menu_id
	WHERE m.is_active = 1`

func (r *sqliteMenuItemRepo) querySearchHits(ctx context.Context, query string, args ...any) ([]models.MenuSearchHit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search menu items: %w", err)
	}
	defer rows.Close()

	hits := []models.MenuSearchHit{}
	for rows.Next() {
		var h models.MenuSearchHit
		if err := rows.Scan(&h.ID, &h.MenuID, &h.MenuTitle, &h.Name, &h.Category, &h.Featured); err != nil {
			return nil, fmt.Errorf("failed to scan search hit: %w", err)
		}
		hits = append(hits, h)
	}
	return hits, rows.Err()
}

func (r *sqliteMenuItemRepo) Search(ctx context.Context, query string, limit int) ([]models.MenuSearchHit, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	return r.querySearchHits(ctx, searchHitQuery+`
		AND (lower(i.name) LIKE ? ESCAPE '\' OR lower(i.category) LIKE ? ESCAPE '\' OR lower(COALESCE(i.description, '')) LIKE ? ESCAPE '\')
		ORDER BY i.featured DESC, i.name ASC
		LIMIT ?`, pattern, pattern, pattern, limit)
}

func (r *sqliteMenuItemRepo) ListSearchDocuments(ctx context.Context) ([]models.MenuSearchHit, error) {
	return r.querySearchHits(ctx, searchHitQuery+` ORDER BY i.id`)
}

// escapeLike, LIKE pattern'ındaki özel karakterleri kaçışlar.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// ─── Branches ───

const branchColumns = `id, name, slug, city, district, address, phone, maps_url, working_hours,
	image_url, is_active, position, created_at, updated_at`

type sqliteBranchRepo struct {
	db *sql.DB
}

// NewSQLiteBranchRepo, constructor — interface döner.
func NewSQLiteBranchRepo(db *sql.DB) BranchRepository {
	return &sqliteBranchRepo{db: db}
}

func scanBranch(s rowScanner) (*models.Branch, error) {
	b := &models.Branch{}
	err := s.Scan(&b.ID, &b.Name, &b.Slug, &b.City, &b.District, &b.Address, &b.Phone,
		&b.MapsURL, &b.WorkingHours, &b.ImageURL, &b.IsActive, &b.Position, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *sqliteBranchRepo) getOne(ctx context.Context, where string, arg any) (*models.Branch, error) {
	b, err := scanBranch(r.db.QueryRowContext(ctx, `SELECT `+branchColumns+` FROM branches WHERE `+where, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch: %w", err)
	}
	return b, nil
}

func (r *sqliteBranchRepo) Create(ctx context.Context, branch *models.Branch) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO branches (id, name, slug, city, district, address, phone, maps_url, working_hours, image_url, is_active, position)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at, updated_at`,
		branch.Name, branch.Slug, branch.City, branch.District, branch.Address, branch.Phone,
		branch.MapsURL, branch.WorkingHours, branch.ImageURL, branch.IsActive, branch.Position,
	).Scan(&branch.ID, &branch.CreatedAt, &branch.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch: %w", err)
	}
	return nil
}

func (r *sqliteBranchRepo) GetByID(ctx context.Context, id string) (*models.Branch, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *sqliteBranchRepo) GetBySlug(ctx context.Context, slug string) (*models.Branch, error) {
	return r.getOne(ctx, `slug = ?`, slug)
}

func (r *sqliteBranchRepo) List(ctx context.Context, filter models.ActiveFilter) ([]*models.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches`
	switch filter {
	case models.ActiveFilterActive:
		query += ` WHERE is_active = 1`
	case models.ActiveFilterInactive:
		query += ` WHERE is_active = 0`
	}
	query += ` ORDER BY ` + orderByPosition

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	defer rows.Close()

	branches := []*models.Branch{}
	for rows.Next() {
		b, err := scanBranch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch: %w", err)
		}
		branches = append(branches, b)
	}
	return branches, rows.Err()
}

func (r *sqliteBranchRepo) Update(ctx context.Context, branch *models.Branch) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE branches
		SET name = ?, slug = ?, city = ?, district = ?, address = ?, phone = ?, maps_url = ?,
		    working_hours = ?, image_url = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		branch.Name, branch.Slug, branch.City, branch.District, branch.Address, branch.Phone,
		branch.MapsURL, branch.WorkingHours, branch.ImageURL, branch.IsActive, branch.ID)
	if err != nil {
		return fmt.Errorf("failed to update branch: %w", err)
	}
	return affectedOrNotFound(result, "branch")
}

func (r *sqliteBranchRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch: %w", err)
	}
	return affectedOrNotFound(result, "branch")
}

func (r *sqliteBranchRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM branches WHERE slug = ? AND id != ?`, slug, excludeID).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("failed to check branch slug: %w", err)
	}
	return n > 0, nil
}

func (r *sqliteBranchRepo) GetMaxPosition(ctx context.Context) (int, error) {
	return maxPosition(ctx, r.db, "branches", positionScope{})
}

func (r *sqliteBranchRepo) UpdatePositions(ctx context.Context, items []models.PositionUpdate) error {
	return updatePositions(ctx, r.db, "branches", positionScope{}, items)
}

// ─── Branch gallery ───

const branchGalleryColumns = `id, branch_id, image_url, storage_key, position, created_at`

type sqliteBranchGalleryRepo struct {
	db *sql.DB
}

// NewSQLiteBranchGalleryRepo, constructor — interface döner.
func NewSQLiteBranchGalleryRepo(db *sql.DB) BranchGalleryRepository {
	return &sqliteBranchGalleryRepo{db: db}
}

func scanBranchImage(s rowScanner) (*models.BranchGalleryImage, error) {
	g := &models.BranchGalleryImage{}
	err := s.Scan(&g.ID, &g.BranchID, &g.ImageURL, &g.StorageKey, &g.Position, &g.CreatedAt)
	return g, err
}

func (r *sqliteBranchGalleryRepo) Create(ctx context.Context, img *models.BranchGalleryImage) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO branch_gallery (id, branch_id, image_url, storage_key, position)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?)
		RETURNING id, created_at`,
		img.BranchID, img.ImageURL, img.StorageKey, img.Position,
	).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch image: %w", err)
	}
	return nil
}

func (r *sqliteBranchGalleryRepo) GetByID(ctx context.Context, id string) (*models.BranchGalleryImage, error) {
	g, err := scanBranchImage(r.db.QueryRowContext(ctx,
		`SELECT `+branchGalleryColumns+` FROM branch_gallery WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch image: %w", err)
	}
	return g, nil
}

func (r *sqliteBranchGalleryRepo) ListByBranch(ctx context.Context, branchID string) ([]*models.BranchGalleryImage, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+branchGalleryColumns+` FROM branch_gallery WHERE branch_id = ? ORDER BY `+orderByPosition, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch images: %w", err)
	}
	defer rows.Close()

	images := []*models.BranchGalleryImage{}
	for rows.Next() {
		g, err := scanBranchImage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch image: %w", err)
		}
		images = append(images, g)
	}
	return images, rows.Err()
}

func (r *sqliteBranchGalleryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branch_gallery WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch image: %w", err)
	}
	return affectedOrNotFound(result, "branch image")
}

func (r *sqliteBranchGalleryRepo) GetMaxPosition(ctx context.Context, branchID string) (int, error) {
	return maxPosition(ctx, r.db, "branch_gallery", positionScope{column: "branch_id", value: branchID})
}

func (r *sqliteBranchGalleryRepo) UpdatePositions(ctx context.Context, branchID string, items []models.PositionUpdate) error {
	return updatePositions(ctx, r.db, "branch_gallery", positionScope{column: "branch_id", value: branchID}, items)
}

// ─── Branch menu items ───

const branchMenuColumns = `id, branch_id, name, description, price, category, image_url, position, created_at`

type sqliteBranchMenuRepo struct {
	db *sql.DB
}

// NewSQLiteBranchMenuRepo, constructor — interface döner.
func NewSQLiteBranchMenuRepo(db *sql.DB) BranchMenuRepository {
	return &sqliteBranchMenuRepo{db: db}
}

func scanBranchMenuItem(s rowScanner) (*models.BranchMenuItem, error) {
	m := &models.BranchMenuItem{}
	err := s.Scan(&m.ID, &m.BranchID, &m.Name, &m.Description, &m.Price, &m.Category,
		&m.ImageURL, &m.Position, &m.CreatedAt)
	return m, err
}

func (r *sqliteBranchMenuRepo) Create(ctx context.Context, item *models.BranchMenuItem) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO branch_menu_items (id, branch_id, name, description, price, category, image_url, position)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`,
		item.BranchID, item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.Position,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create branch menu item: %w", err)
	}
	return nil
}

func (r *sqliteBranchMenuRepo) GetByID(ctx context.Context, id string) (*models.BranchMenuItem, error) {
	m, err := scanBranchMenuItem(r.db.QueryRowContext(ctx,
		`SELECT `+branchMenuColumns+` FROM branch_menu_items WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get branch menu item: %w", err)
	}
	return m, nil
}

func (r *sqliteBranchMenuRepo) ListByBranch(ctx context.Context, branchID string) ([]*models.BranchMenuItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+branchMenuColumns+` FROM branch_menu_items WHERE branch_id = ? ORDER BY `+orderByPosition, branchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list branch menu items: %w", err)
	}
	defer rows.Close()

	items := []*models.BranchMenuItem{}
	for rows.Next() {
		m, err := scanBranchMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branch menu item: %w", err)
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

func (r *sqliteBranchMenuRepo) Update(ctx context.Context, item *models.BranchMenuItem) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE branch_menu_items
		SET name = ?, description = ?, price = ?, category = ?, image_url = ?
		WHERE id = ?`,
		item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update branch menu item: %w", err)
	}
	return affectedOrNotFound(result, "branch menu item")
}

func (r *sqliteBranchMenuRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM branch_menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete branch menu item: %w", err)
	}
	return affectedOrNotFound(result, "branch menu item")
}

func (r *sqliteBranchMenuRepo) GetMaxPosition(ctx context.Context, branchID string) (int, error) {
	return maxPosition(ctx, r.db, "branch_menu_items", positionScope{column: "branch_id", value: branchID})
}

func (r *sqliteBranchMenuRepo) UpdatePositions(ctx context.Context, branchID string, items []models.PositionUpdate) error {
	return updatePositions(ctx, r.db, "branch_menu_items", positionScope{column: "branch_id", value: branchID}, items)
}

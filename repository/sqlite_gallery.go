package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

const galleryColumns = `id, image_url, storage_key, title, category, position, hero_section, hero_main, created_at`

type sqliteGalleryRepo struct {
	db *sql.DB
}

// NewSQLiteGalleryRepo, constructor — interface döner.
func NewSQLiteGalleryRepo(db *sql.DB) GalleryRepository {
	return &sqliteGalleryRepo{db: db}
}

func scanGalleryItem(s rowScanner) (*models.GalleryItem, error) {
	g := &models.GalleryItem{}
	err := s.Scan(&g.ID, &g.ImageURL, &g.StorageKey, &g.Title, &g.Category,
		&g.Position, &g.HeroSection, &g.HeroMain, &g.CreatedAt)
	return g, err
}

func (r *sqliteGalleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	query := `
		INSERT INTO gallery (id, image_url, storage_key, title, category, position, hero_section, hero_main)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.ImageURL, item.StorageKey, item.Title, item.Category,
		item.Position, item.HeroSection, item.HeroMain,
	).Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create gallery item: %w", err)
	}
	return nil
}

func (r *sqliteGalleryRepo) GetByID(ctx context.Context, id string) (*models.GalleryItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM gallery WHERE id = ?`, id)
	g, err := scanGalleryItem(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}
	return g, nil
}

func (r *sqliteGalleryRepo) List(ctx context.Context) ([]*models.GalleryItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+galleryColumns+` FROM gallery ORDER BY `+orderByPosition)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery: %w", err)
	}
	defer rows.Close()

	items := []*models.GalleryItem{}
	for rows.Next() {
		g, err := scanGalleryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan gallery item: %w", err)
		}
		items = append(items, g)
	}
	return items, rows.Err()
}

func (r *sqliteGalleryRepo) Update(ctx context.Context, item *models.GalleryItem) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE gallery SET title = ?, category = ? WHERE id = ?`,
		item.Title, item.Category, item.ID)
	if err != nil {
		return fmt.Errorf("failed to update gallery item: %w", err)
	}
	return affectedOrNotFound(result, "gallery item")
}

func (r *sqliteGalleryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}
	return affectedOrNotFound(result, "gallery item")
}

func (r *sqliteGalleryRepo) GetMaxPosition(ctx context.Context) (int, error) {
	return maxPosition(ctx, r.db, "gallery", positionScope{})
}

func (r *sqliteGalleryRepo) UpdatePosition(ctx context.Context, id string, position int) error {
	return updatePosition(ctx, r.db, "gallery", positionScope{}, id, position)
}

func (r *sqliteGalleryRepo) UpdatePositions(ctx context.Context, items []models.PositionUpdate) error {
	return updatePositions(ctx, r.db, "gallery", positionScope{}, items)
}

// SetHeroMain, hero_section'ı her iki yönde sıfırlar: main'e çıkan ya da
// main'den inen görsel NONE durumundan başlar, kota dışından SMALL'a dönemez.
func (r *sqliteGalleryRepo) SetHeroMain(ctx context.Context, id string, value bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE gallery SET hero_main = ?, hero_section = 0 WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to set hero_main: %w", err)
	}
	return affectedOrNotFound(result, "gallery item")
}

func (r *sqliteGalleryRepo) ClearHeroMainExcept(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE gallery
		SET hero_main = 0,
		    hero_section = CASE WHEN hero_main = 1 THEN 0 ELSE hero_section END
		WHERE id != ?`, id); err != nil {
		return fmt.Errorf("failed to reset hero_main: %w", err)
	}
	return nil
}

func (r *sqliteGalleryRepo) CountHeroSection(ctx context.Context, excludeID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM gallery WHERE hero_section = 1 AND hero_main = 0 AND id != ?`,
		excludeID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count hero_section items: %w", err)
	}
	return count, nil
}

func (r *sqliteGalleryRepo) SetHeroSection(ctx context.Context, id string, value bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE gallery SET hero_section = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("failed to set hero_section: %w", err)
	}
	return affectedOrNotFound(result, "gallery item")
}

func (r *sqliteGalleryRepo) EnableHeroSection(ctx context.Context, id string, max int) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE gallery SET hero_section = 1
		WHERE id = ? AND hero_main = 0
		  AND (SELECT COUNT(*) FROM gallery WHERE hero_section = 1 AND hero_main = 0 AND id != ?) < ?`,
		id, id, max)
	if err != nil {
		return false, fmt.Errorf("failed to enable hero_section: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected > 0, nil
}

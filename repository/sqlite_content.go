package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// ─── About page ───

type sqliteAboutRepo struct {
	db *sql.DB
}

// NewSQLiteAboutRepo, constructor — interface döner.
func NewSQLiteAboutRepo(db *sql.DB) AboutRepository {
	return &sqliteAboutRepo{db: db}
}

func (r *sqliteAboutRepo) Get(ctx context.Context) (*models.AboutPage, error) {
	p := &models.AboutPage{}
	err := r.db.QueryRowContext(ctx, `
		SELECT title, subtitle, content, mission, vision, image_url, updated_at
		FROM about_page WHERE id = ?`, models.AboutPageID,
	).Scan(&p.Title, &p.Subtitle, &p.Content, &p.Mission, &p.Vision, &p.ImageURL, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get about page: %w", err)
	}
	return p, nil
}

func (r *sqliteAboutRepo) Upsert(ctx context.Context, page *models.AboutPage) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO about_page (id, title, subtitle, content, mission, vision, image_url, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title, subtitle = excluded.subtitle, content = excluded.content,
			mission = excluded.mission, vision = excluded.vision, image_url = excluded.image_url,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at`,
		models.AboutPageID, page.Title, page.Subtitle, page.Content, page.Mission, page.Vision, page.ImageURL,
	).Scan(&page.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save about page: %w", err)
	}
	return nil
}

// ─── Site settings ───

type sqliteSettingsRepo struct {
	db *sql.DB
}

// NewSQLiteSettingsRepo, constructor — interface döner.
func NewSQLiteSettingsRepo(db *sql.DB) SettingsRepository {
	return &sqliteSettingsRepo{db: db}
}

func (r *sqliteSettingsRepo) GetAll(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM site_settings ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	defer rows.Close()

	var settings []models.SiteSetting
	for rows.Next() {
		var s models.SiteSetting
		if err := rows.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan setting: %w", err)
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

func (r *sqliteSettingsRepo) Get(ctx context.Context, key string) (*models.SiteSetting, error) {
	s := &models.SiteSetting{}
	err := r.db.QueryRowContext(ctx,
		`SELECT key, value, updated_at FROM site_settings WHERE key = ?`, key,
	).Scan(&s.Key, &s.Value, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return s, nil
}

func (r *sqliteSettingsRepo) UpsertMany(ctx context.Context, values map[string]string) error {
	return database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO site_settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`)
		if err != nil {
			return fmt.Errorf("failed to prepare statement: %w", err)
		}
		defer stmt.Close()

		for key, value := range values {
			if _, err := stmt.ExecContext(ctx, key, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}

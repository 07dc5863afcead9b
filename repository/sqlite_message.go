package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// readFilterClause, okundu filtresini WHERE ifadesine çevirir.
func readFilterClause(filter models.ReadFilter) string {
	if filter == models.ReadFilterUnread {
		return ` WHERE is_read = 0`
	}
	return ``
}

// ─── Messages ───

const messageColumns = `id, name, email, phone, subject, message, is_read, created_at`

type sqliteMessageRepo struct {
	db *sql.DB
}

// NewSQLiteMessageRepo, constructor — interface döner.
func NewSQLiteMessageRepo(db *sql.DB) MessageRepository {
	return &sqliteMessageRepo{db: db}
}

func scanMessage(s rowScanner) (*models.Message, error) {
	m := &models.Message{}
	err := s.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject, &m.Message, &m.IsRead, &m.CreatedAt)
	return m, err
}

func (r *sqliteMessageRepo) Create(ctx context.Context, msg *models.Message) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO messages (id, name, email, phone, subject, message)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?)
		RETURNING id, is_read, created_at`,
		msg.Name, msg.Email, msg.Phone, msg.Subject, msg.Message,
	).Scan(&msg.ID, &msg.IsRead, &msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

func (r *sqliteMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

func (r *sqliteMessageRepo) List(ctx context.Context, filter models.ReadFilter) ([]*models.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+` FROM messages`+readFilterClause(filter)+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *sqliteMessageRepo) SetRead(ctx context.Context, id string, isRead bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = ? WHERE id = ?`, isRead, id)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	return affectedOrNotFound(result, "message")
}

func (r *sqliteMessageRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return affectedOrNotFound(result, "message")
}

func (r *sqliteMessageRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages WHERE is_read = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return n, nil
}

// ─── Franchise applications ───

const franchiseColumns = `id, full_name, email, phone, city, budget, has_experience, message, is_read, created_at`

type sqliteFranchiseRepo struct {
	db *sql.DB
}

// NewSQLiteFranchiseRepo, constructor — interface döner.
func NewSQLiteFranchiseRepo(db *sql.DB) FranchiseRepository {
	return &sqliteFranchiseRepo{db: db}
}

func scanFranchise(s rowScanner) (*models.FranchiseApplication, error) {
	a := &models.FranchiseApplication{}
	err := s.Scan(&a.ID, &a.FullName, &a.Email, &a.Phone, &a.City, &a.Budget,
		&a.HasExperience, &a.Message, &a.IsRead, &a.CreatedAt)
	return a, err
}

func (r *sqliteFranchiseRepo) Create(ctx context.Context, app *models.FranchiseApplication) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO franchise_applications (id, full_name, email, phone, city, budget, has_experience, message)
		VALUES (lower(hex(randomblob(8))), ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, is_read, created_at`,
		app.FullName, app.Email, app.Phone, app.City, app.Budget, app.HasExperience, app.Message,
	).Scan(&app.ID, &app.IsRead, &app.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create franchise application: %w", err)
	}
	return nil
}

func (r *sqliteFranchiseRepo) GetByID(ctx context.Context, id string) (*models.FranchiseApplication, error) {
	a, err := scanFranchise(r.db.QueryRowContext(ctx,
		`SELECT `+franchiseColumns+` FROM franchise_applications WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get franchise application: %w", err)
	}
	return a, nil
}

func (r *sqliteFranchiseRepo) List(ctx context.Context, filter models.ReadFilter) ([]*models.FranchiseApplication, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+franchiseColumns+` FROM franchise_applications`+readFilterClause(filter)+` ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list franchise applications: %w", err)
	}
	defer rows.Close()

	apps := []*models.FranchiseApplication{}
	for rows.Next() {
		a, err := scanFranchise(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan franchise application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, rows.Err()
}

func (r *sqliteFranchiseRepo) SetRead(ctx context.Context, id string, isRead bool) error {
	result, err := r.db.ExecContext(ctx, `UPDATE franchise_applications SET is_read = ? WHERE id = ?`, isRead, id)
	if err != nil {
		return fmt.Errorf("failed to update franchise application: %w", err)
	}
	return affectedOrNotFound(result, "franchise application")
}

func (r *sqliteFranchiseRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM franchise_applications WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete franchise application: %w", err)
	}
	return affectedOrNotFound(result, "franchise application")
}

func (r *sqliteFranchiseRepo) CountUnread(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM franchise_applications WHERE is_read = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count unread franchise applications: %w", err)
	}
	return n, nil
}

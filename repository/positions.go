package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akinalp/pisi/database"
	"github.com/akinalp/pisi/models"
	"github.com/akinalp/pisi/pkg"
)

// orderByPosition, sıralanabilir tabloların ortak ORDER BY ifadesi:
// position'ı dolu olanlar artan sırada, NULL olanlar sonda (yeni olan önce).
const orderByPosition = `position IS NULL, position ASC, created_at DESC, id ASC`

// positionScope, position güncellemesini bir üst kayda (ör: branch_id) sınırlar.
// column boşsa tüm tablo tek koleksiyondur.
type positionScope struct {
	column string
	value  string
}

func (s positionScope) where() (string, []any) {
	if s.column == "" {
		return "", nil
	}
	return " AND " + s.column + " = ?", []any{s.value}
}

// updatePosition, tek bir satırın position değerini yazar.
// Satır yoksa (ya da scope dışındaysa) ErrNotFound döner.
func updatePosition(ctx context.Context, q database.TxQuerier, table string, scope positionScope, id string, position int) error {
	where, args := scope.where()
	result, err := q.ExecContext(ctx,
		`UPDATE `+table+` SET position = ? WHERE id = ?`+where,
		append([]any{position, id}, args...)...)
	if err != nil {
		return fmt.Errorf("failed to update position for %s %s: %w", table, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for %s %s: %w", table, id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s %s", pkg.ErrNotFound, table, id)
	}
	return nil
}

// updatePositions, birden fazla satırın position değerini tek transaction'da yazar.
// Herhangi bir satır bulunamazsa hiçbir değişiklik kalıcı olmaz.
func updatePositions(ctx context.Context, db *sql.DB, table string, scope positionScope, items []models.PositionUpdate) error {
	return database.WithTx(ctx, db, func(tx *sql.Tx) error {
		for _, item := range items {
			if err := updatePosition(ctx, tx, table, scope, item.ID, item.Position); err != nil {
				return err
			}
		}
		return nil
	})
}

// maxPosition, koleksiyondaki en yüksek position'ı döner, hiç yoksa -1.
// Yeni kayıt position = max + 1 ile eklenir.
func maxPosition(ctx context.Context, q database.TxQuerier, table string, scope positionScope) (int, error) {
	where, args := scope.where()
	var maxPos int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), -1) FROM `+table+` WHERE 1 = 1`+where, args...).Scan(&maxPos)
	if err != nil {
		return 0, fmt.Errorf("failed to get max position for %s: %w", table, err)
	}
	return maxPos, nil
}

// rowScanner, *sql.Row ve *sql.Rows'un ortak Scan metodu.
type rowScanner interface {
	Scan(dest ...any) error
}

// affectedOrNotFound, UPDATE/DELETE sonucunda satır etkilenmediyse ErrNotFound döner.
func affectedOrNotFound(result sql.Result, what string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", pkg.ErrNotFound, what)
	}
	return nil
}

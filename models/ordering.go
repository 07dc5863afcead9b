package models

import (
	"fmt"

	"github.com/akinalp/pisi/pkg"
)

// PositionUpdate, tek bir kaydın yeni sıra numarası.
type PositionUpdate struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// ReorderRequest, bir koleksiyonun tüm sırasını tek seferde gönderen istek.
// Admin paneli kendi sırasını tutuyorsa bu endpoint'i kullanır.
type ReorderRequest struct {
	Items []PositionUpdate `json:"items"`
}

// Validate, ReorderRequest'in geçerli olup olmadığını kontrol eder.
// Aynı id iki kere gelemez, position negatif olamaz.
func (r *ReorderRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("%w: items cannot be empty", pkg.ErrBadRequest)
	}

	seen := make(map[string]bool, len(r.Items))
	for _, item := range r.Items {
		if item.ID == "" {
			return fmt.Errorf("%w: item id is required", pkg.ErrBadRequest)
		}
		if item.Position < 0 {
			return fmt.Errorf("%w: position must be non-negative", pkg.ErrBadRequest)
		}
		if seen[item.ID] {
			return fmt.Errorf("%w: duplicate item id: %s", pkg.ErrBadRequest, item.ID)
		}
		seen[item.ID] = true
	}

	return nil
}

// MoveRequest, taslak sırada bir öğeyi başka bir öğenin yerine taşıma isteği.
type MoveRequest struct {
	SourceID string `json:"source_id" validate:"required"`
	TargetID string `json:"target_id" validate:"required"`
}

// Validate, MoveRequest'in geçerli olup olmadığını kontrol eder.
func (r *MoveRequest) Validate() error {
	return validateStruct(r)
}

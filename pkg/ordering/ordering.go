// Package ordering, position alanı ile sıralanan koleksiyonlar (galeri görselleri,
// menü öğeleri) için saf sıralama fonksiyonlarını içerir.
//
// Fonksiyonlar girdi slice'ını değiştirmez, her zaman yeni bir slice döner.
// Sürükle-bırak gibi UI hareketleri bu pakete (from, to) index çiftine ya da
// (sourceID, targetID) çiftine çevrilerek gelir.
//
// Paket hiçbir proje içi pakete bağımlı değildir (leaf dependency).
package ordering

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

var (
	// ErrUnknownItem, verilen id koleksiyonda yoksa döner.
	ErrUnknownItem = errors.New("ordering: unknown item")

	// ErrIndexOutOfRange, Move'a geçersiz index verilirse döner.
	ErrIndexOutOfRange = errors.New("ordering: index out of range")
)

// Item, sıralanabilir bir kayıttır.
// Position nil olabilir — nil position'lı kayıtlar her zaman sona gider.
type Item interface {
	ItemID() string
	ItemPosition() *int
	ItemCreatedAt() time.Time
}

// Placement, bir kaydın kalıcı olarak yazılacak yeni position değeridir.
type Placement struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// Move, from index'indeki elemanı çıkarıp to index'ine yerleştirir.
// Diğer elemanların birbirine göre sırası değişmez. from == to ise kopya döner.
//
//	Move([A B C D], 3, 1) → [A D B C]
//	Move([A B C D], 0, 2) → [B C A D]
func Move[T any](list []T, from, to int) ([]T, error) {
	n := len(list)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("%w: from=%d to=%d len=%d", ErrIndexOutOfRange, from, to, n)
	}

	out := slices.Clone(list)
	if from == to {
		return out, nil
	}

	moved := out[from]
	if from < to {
		copy(out[from:to], out[from+1:to+1])
	} else {
		copy(out[to+1:from+1], out[to:from])
	}
	out[to] = moved

	return out, nil
}

// Reorder, sourceID'li elemanı targetID'li elemanın bulunduğu index'e taşır.
// Yukarı taşınan eleman hedefin önüne, aşağı taşınan eleman hedefin arkasına düşer.
// sourceID == targetID ise işlem no-op'tur (kopya döner).
func Reorder[T Item](list []T, sourceID, targetID string) ([]T, error) {
	from := IndexOf(list, sourceID)
	if from < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, sourceID)
	}
	to := IndexOf(list, targetID)
	if to < 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownItem, targetID)
	}

	return Move(list, from, to)
}

// IndexOf, id'nin koleksiyondaki index'ini döner, yoksa -1.
func IndexOf[T Item](list []T, id string) int {
	return slices.IndexFunc(list, func(it T) bool { return it.ItemID() == id })
}

// IDs, koleksiyonun id'lerini sırasıyla döner.
func IDs[T Item](list []T) []string {
	ids := make([]string, len(list))
	for i, it := range list {
		ids[i] = it.ItemID()
	}
	return ids
}

// Placements, koleksiyonun mevcut sırasını 0..N-1 position değerlerine çevirir.
func Placements[T Item](list []T) []Placement {
	out := make([]Placement, len(list))
	for i, it := range list {
		out[i] = Placement{ID: it.ItemID(), Position: i}
	}
	return out
}

// Compare, iki kaydın görüntüleme sırasını belirler:
//  1. position'ı dolu olanlar artan position'a göre
//  2. position'ı nil olanlar hepsinden sonra
//  3. eşitlikte created_at azalan (yeni olan önce), sonra id
func Compare(a, b Item) int {
	pa, pb := a.ItemPosition(), b.ItemPosition()
	switch {
	case pa != nil && pb != nil:
		if *pa != *pb {
			if *pa < *pb {
				return -1
			}
			return 1
		}
	case pa != nil:
		return -1
	case pb != nil:
		return 1
	}

	if c := b.ItemCreatedAt().Compare(a.ItemCreatedAt()); c != 0 {
		return c
	}
	return strings.Compare(a.ItemID(), b.ItemID())
}

// Sort, koleksiyonu görüntüleme sırasına göre sıralanmış bir kopya olarak döner.
func Sort[T Item](list []T) []T {
	out := slices.Clone(list)
	slices.SortStableFunc(out, func(a, b T) int { return Compare(a, b) })
	return out
}

// NextPosition, koleksiyona eklenecek yeni kaydın position değerini döner (max+1).
// Hiç position'lı kayıt yoksa 0 döner.
func NextPosition[T Item](list []T) int {
	next := 0
	for _, it := range list {
		if p := it.ItemPosition(); p != nil && *p >= next {
			next = *p + 1
		}
	}
	return next
}

package ordering

import (
	"errors"
	"slices"
	"sync"
)

// ErrCommitInFlight, aynı board için bir kaydetme işlemi sürerken ikinci bir
// kaydetme başlatılmaya çalışılırsa döner.
var ErrCommitInFlight = errors.New("ordering: commit already in flight")

// Board, bir koleksiyonun henüz kalıcı yazılmamış sırasını tutar.
//
// Durum:
//   - items: ekranda görünen (taslak) sıra
//   - saved: en son başarıyla kaydedilmiş sıra (id listesi)
//   - dirty: son kayıttan sonra sıra değişti mi
//   - saving: kaydetme işlemi sürüyor mu
//
// dirty sadece Reorder ile true olur ve sadece başarılı bir commit ile temizlenir.
// Başarısız commit taslak sırayı korur, geri alma yapılmaz.
//
// Board goroutine-safe'dir.
type Board[T Item] struct {
	mu     sync.Mutex
	items  []T
	saved  []string
	dirty  bool
	saving bool
}

// NewBoard, koleksiyonu görüntüleme sırasına göre dizip temiz bir board oluşturur.
func NewBoard[T Item](items []T) *Board[T] {
	sorted := Sort(items)
	return &Board[T]{items: sorted, saved: IDs(sorted)}
}

// Snapshot, board'un o anki durumunun kopyasıdır.
type Snapshot[T Item] struct {
	Items  []T  `json:"items"`
	Dirty  bool `json:"dirty"`
	Saving bool `json:"saving"`
}

// Snapshot, board'un o anki durumunu döner.
func (b *Board[T]) Snapshot() Snapshot[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot[T]{Items: slices.Clone(b.items), Dirty: b.dirty, Saving: b.saving}
}

// Dirty, kaydedilmemiş değişiklik olup olmadığını döner.
func (b *Board[T]) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// Reorder, taslak sırada sourceID'yi targetID'nin yerine taşır.
// Kalıcı hiçbir şey yazmaz. Yeni sıra kayıtlı sıradan farklıysa dirty işaretlenir.
func (b *Board[T]) Reorder(sourceID, targetID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	next, err := Reorder(b.items, sourceID, targetID)
	if err != nil {
		return err
	}
	// Kayıtlı sıraya geri dönmek dirty'yi temizlemez, bunu sadece commit yapar.
	if !slices.Equal(IDs(next), b.saved) {
		b.dirty = true
	}
	b.items = next
	return nil
}

// Update, id'li kaydı fn'in döndüğü değerle değiştirir.
// fn kaydı yerinde değiştirmemeli, yeni bir değer dönmelidir.
// Kayıt yoksa false döner.
func (b *Board[T]) Update(id string, fn func(T) T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := IndexOf(b.items, id)
	if idx < 0 {
		return false
	}
	b.items[idx] = fn(b.items[idx])
	return true
}

// UpdateAll, tüm kayıtlara fn'i uygular.
func (b *Board[T]) UpdateAll(fn func(T) T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := range b.items {
		b.items[i] = fn(b.items[i])
	}
}

// Remove, id'li kaydı taslaktan ve kayıtlı sıradan çıkarır.
// Silme işlemi kalan position'ları sıkıştırmaz, dirty durumu değişmez.
func (b *Board[T]) Remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if idx := IndexOf(b.items, id); idx >= 0 {
		b.items = slices.Delete(slices.Clone(b.items), idx, idx+1)
	}
	if idx := slices.Index(b.saved, id); idx >= 0 {
		b.saved = slices.Delete(slices.Clone(b.saved), idx, idx+1)
	}
}

// Append, yeni eklenen bir kaydı taslağın ve kayıtlı sıranın sonuna ekler.
func (b *Board[T]) Append(item T) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.items = append(slices.Clone(b.items), item)
	b.saved = append(slices.Clone(b.saved), item.ItemID())
}

// BeginCommit, kaydedilecek position'ları döner ve board'u saving durumuna alır.
//
//   - dirty değilse (nil, false, nil) döner — yapılacak iş yok.
//   - başka bir commit sürüyorsa ErrCommitInFlight döner.
//
// ok == true döndüyse caller sonucu mutlaka FinishCommit ile bildirmelidir.
func (b *Board[T]) BeginCommit() (placements []Placement, ok bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.saving {
		return nil, false, ErrCommitInFlight
	}
	if !b.dirty {
		return nil, false, nil
	}

	b.saving = true
	return Placements(b.items), true, nil
}

// FinishCommit, BeginCommit ile başlatılan kaydetmenin sonucunu işler.
//
// commitErr nil ise kaydedilen sıra "saved" olur. Commit sürerken taslak
// yeniden sıralandıysa board dirty kalır. commitErr nil değilse dirty
// korunur ve taslak sıra olduğu gibi bırakılır.
func (b *Board[T]) FinishCommit(placements []Placement, commitErr error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.saving = false
	if commitErr != nil {
		return
	}

	committed := make([]string, len(placements))
	for i, p := range placements {
		committed[i] = p.ID
	}
	b.saved = committed
	b.dirty = !slices.Equal(IDs(b.items), committed)
}

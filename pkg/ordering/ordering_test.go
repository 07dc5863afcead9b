package ordering

import (
	"errors"
	"math/rand"
	"slices"
	"testing"
	"time"
)

type item struct {
	id        string
	position  *int
	createdAt time.Time
}

func (i item) ItemID() string           { return i.id }
func (i item) ItemPosition() *int       { return i.position }
func (i item) ItemCreatedAt() time.Time { return i.createdAt }

func pos(n int) *int { return &n }

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func items(ids ...string) []item {
	out := make([]item, len(ids))
	for i, id := range ids {
		out[i] = item{id: id, position: pos(i), createdAt: base.Add(time.Duration(i) * time.Minute)}
	}
	return out
}

func TestMove(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"move up", 3, 1, []string{"A", "D", "B", "C"}},
		{"move down", 0, 2, []string{"B", "C", "A", "D"}},
		{"to end", 0, 3, []string{"B", "C", "D", "A"}},
		{"to start", 3, 0, []string{"D", "A", "B", "C"}},
		{"same index", 2, 2, []string{"A", "B", "C", "D"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := []string{"A", "B", "C", "D"}
			got, err := Move(list, tt.from, tt.to)
			if err != nil {
				t.Fatalf("Move: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Move(%d, %d) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
			if !slices.Equal(list, []string{"A", "B", "C", "D"}) {
				t.Errorf("input mutated: %v", list)
			}
		})
	}
}

func TestMoveOutOfRange(t *testing.T) {
	for _, c := range [][2]int{{-1, 0}, {0, 4}, {4, 0}} {
		if _, err := Move([]int{1, 2, 3, 4}, c[0], c[1]); !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Move(%d, %d) error = %v, want ErrIndexOutOfRange", c[0], c[1], err)
		}
	}
}

func TestReorder(t *testing.T) {
	list := items("A", "B", "C")

	got, err := Reorder(list, "C", "A")
	if err != nil {
		t.Fatalf("Reorder: %v", err)
	}
	if want := []string{"C", "A", "B"}; !slices.Equal(IDs(got), want) {
		t.Errorf("got %v, want %v", IDs(got), want)
	}

	same, err := Reorder(list, "B", "B")
	if err != nil {
		t.Fatalf("Reorder same id: %v", err)
	}
	if !slices.Equal(IDs(same), IDs(list)) {
		t.Errorf("same id reorder changed order: %v", IDs(same))
	}

	if _, err := Reorder(list, "X", "A"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("unknown source error = %v", err)
	}
	if _, err := Reorder(list, "A", "X"); !errors.Is(err, ErrUnknownItem) {
		t.Errorf("unknown target error = %v", err)
	}
}

// Rastgele reorder dizileri her zaman orijinalin bir permütasyonunu üretmeli.
func TestReorderKeepsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for n := 1; n <= 12; n++ {
		ids := make([]string, n)
		for i := range ids {
			ids[i] = string(rune('a' + i))
		}
		list := items(ids...)

		for step := 0; step < 50; step++ {
			src := list[rng.Intn(n)].id
			dst := list[rng.Intn(n)].id
			next, err := Reorder(list, src, dst)
			if err != nil {
				t.Fatalf("n=%d step=%d: %v", n, step, err)
			}
			list = next
		}

		if len(list) != n {
			t.Fatalf("n=%d: length changed to %d", n, len(list))
		}
		got := IDs(list)
		slices.Sort(got)
		if !slices.Equal(got, ids) {
			t.Errorf("n=%d: not a permutation: %v", n, got)
		}
	}
}

func TestSortNullPositionsLast(t *testing.T) {
	list := []item{
		{id: "old-null", createdAt: base},
		{id: "p1", position: pos(1), createdAt: base},
		{id: "new-null", createdAt: base.Add(time.Hour)},
		{id: "p0", position: pos(0), createdAt: base.Add(2 * time.Hour)},
		{id: "mid-null", createdAt: base.Add(30 * time.Minute)},
	}

	got := IDs(Sort(list))
	want := []string{"p0", "p1", "new-null", "mid-null", "old-null"}
	if !slices.Equal(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func TestSortTieBreak(t *testing.T) {
	list := []item{
		{id: "b", position: pos(0), createdAt: base},
		{id: "a", position: pos(0), createdAt: base},
		{id: "c", position: pos(0), createdAt: base.Add(time.Second)},
	}

	got := IDs(Sort(list))
	want := []string{"c", "a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("Sort = %v, want %v", got, want)
	}
}

func TestNextPosition(t *testing.T) {
	if got := NextPosition([]item{}); got != 0 {
		t.Errorf("empty: got %d, want 0", got)
	}
	list := []item{{id: "a", position: pos(4)}, {id: "b"}, {id: "c", position: pos(2)}}
	if got := NextPosition(list); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
}

func TestPlacements(t *testing.T) {
	got := Placements(items("x", "y", "z"))
	want := []Placement{{"x", 0}, {"y", 1}, {"z", 2}}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

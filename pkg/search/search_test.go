package search

import (
	"context"
	"testing"
)

func TestDecodeHit(t *testing.T) {
	hit := map[string]interface{}{
		"id":         "abc",
		"menu_id":    "m1",
		"menu_title": "Serpme",
		"name":       "Pişi",
		"category":   "Hamur işi",
		"featured":   true,
		"_formatted": map[string]interface{}{"name": "<em>Pişi</em>"},
	}

	doc, err := decodeHit(hit)
	if err != nil {
		t.Fatalf("decodeHit: %v", err)
	}
	want := Document{ID: "abc", MenuID: "m1", MenuTitle: "Serpme", Name: "Pişi", Category: "Hamur işi", Featured: true}
	if doc != want {
		t.Errorf("doc = %+v, want %+v", doc, want)
	}
}

func TestNopIndex(t *testing.T) {
	idx := NewNopIndex()
	if idx.Enabled() {
		t.Fatal("nop index enabled")
	}
	docs, err := idx.Search(context.Background(), "pişi", 10)
	if err != nil || docs != nil {
		t.Errorf("Search = %v, %v", docs, err)
	}
}

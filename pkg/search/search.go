// Package search, menü öğeleri için tam metin arama index'i sağlar.
//
// Meilisearch yapılandırılmışsa NewMeiliIndex, yapılandırılmamışsa NewNopIndex
// kullanılır. Nop index Enabled() == false döner ve çağıran taraf SQL
// aramasına düşer.
package search

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/meilisearch/meilisearch-go"
)

// Document, index'teki tek bir menü öğesi.
type Document struct {
	ID        string `json:"id"`
	MenuID    string `json:"menu_id"`
	MenuTitle string `json:"menu_title"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Featured  bool   `json:"featured"`
}

// MenuIndex, menü öğesi arama index'i.
type MenuIndex interface {
	Enabled() bool
	Init(ctx context.Context) error
	Upsert(ctx context.Context, docs []Document) error
	Remove(ctx context.Context, id string) error
	// Replace, index'i verilen dokümanlarla baştan kurar.
	Replace(ctx context.Context, docs []Document) error
	Search(ctx context.Context, query string, limit int) ([]Document, error)
}

type meiliIndex struct {
	client *meilisearch.Client
	uid    string
}

// NewMeiliIndex, Meilisearch üzerinde bir MenuIndex oluşturur.
func NewMeiliIndex(host, apiKey, uid string) MenuIndex {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	return &meiliIndex{client: client, uid: uid}
}

func (m *meiliIndex) Enabled() bool { return true }

// Init, index'i ve aranabilir/filtrelenebilir alanları hazırlar.
// Index zaten varsa oluşturma görevi sunucu tarafında başarısız olur, sorun değildir.
func (m *meiliIndex) Init(_ context.Context) error {
	if _, err := m.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        m.uid,
		PrimaryKey: "id",
	}); err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	idx := m.client.Index(m.uid)
	if _, err := idx.UpdateSearchableAttributes(&[]string{"name", "category", "menu_title"}); err != nil {
		return fmt.Errorf("failed to set searchable attributes: %w", err)
	}
	if _, err := idx.UpdateFilterableAttributes(&[]string{"menu_id", "category", "featured"}); err != nil {
		return fmt.Errorf("failed to set filterable attributes: %w", err)
	}
	return nil
}

func (m *meiliIndex) Upsert(_ context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	if _, err := m.client.Index(m.uid).AddDocuments(docs); err != nil {
		return fmt.Errorf("failed to index documents: %w", err)
	}
	return nil
}

func (m *meiliIndex) Remove(_ context.Context, id string) error {
	if _, err := m.client.Index(m.uid).DeleteDocument(id); err != nil {
		return fmt.Errorf("failed to remove document: %w", err)
	}
	return nil
}

func (m *meiliIndex) Replace(ctx context.Context, docs []Document) error {
	if _, err := m.client.Index(m.uid).DeleteAllDocuments(); err != nil {
		return fmt.Errorf("failed to clear search index: %w", err)
	}
	return m.Upsert(ctx, docs)
}

func (m *meiliIndex) Search(_ context.Context, query string, limit int) ([]Document, error) {
	res, err := m.client.Index(m.uid).Search(query, &meilisearch.SearchRequest{
		Limit: int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	docs := make([]Document, 0, len(res.Hits))
	for _, hit := range res.Hits {
		doc, err := decodeHit(hit)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func decodeHit(hit interface{}) (Document, error) {
	var doc Document
	raw, err := json.Marshal(hit)
	if err != nil {
		return doc, fmt.Errorf("failed to decode search hit: %w", err)
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("failed to decode search hit: %w", err)
	}
	return doc, nil
}

type nopIndex struct{}

// NewNopIndex, hiçbir şey yapmayan bir MenuIndex döner.
func NewNopIndex() MenuIndex { return nopIndex{} }

func (nopIndex) Enabled() bool                                           { return false }
func (nopIndex) Init(context.Context) error                              { return nil }
func (nopIndex) Upsert(context.Context, []Document) error                { return nil }
func (nopIndex) Remove(context.Context, string) error                    { return nil }
func (nopIndex) Replace(context.Context, []Document) error               { return nil }
func (nopIndex) Search(context.Context, string, int) ([]Document, error) { return nil, nil }

package service

import (
	"iter"
	"tabwiki/internal/data"
)

// DocumentStore is the in-memory collection of pages read by the view
// layer. Pages are only replaced through Editing Session commits and
// AddPage. It does no locking; App serializes access.
type DocumentStore struct {
	pages *data.Collection
}

// NewDocumentStore wraps a migrated collection.
func NewDocumentStore(pages *data.Collection) *DocumentStore {
	if pages == nil {
		pages = data.NewCollection()
	}
	return &DocumentStore{pages: pages}
}

// Get returns the stored page. Callers must not mutate it.
func (s *DocumentStore) Get(id string) (*data.Page, bool) {
	p, ok := s.pages.Get(id)
	return p, ok && p != nil
}

// Set inserts or replaces the page stored under id.
func (s *DocumentStore) Set(id string, p *data.Page) {
	s.pages.Set(id, p)
}

// All iterates over the pages in insertion order.
func (s *DocumentStore) All() iter.Seq2[string, *data.Page] {
	return s.pages.All()
}

// FirstPageID returns the first page id in insertion order, or "".
func (s *DocumentStore) FirstPageID() string {
	for id := range s.pages.All() {
		return id
	}
	return ""
}

// Collection exposes the backing collection for persistence.
func (s *DocumentStore) Collection() *data.Collection {
	return s.pages
}

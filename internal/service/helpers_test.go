//go:build unit

package service

import (
	"context"
	"fmt"
	"tabwiki/internal/data"
	"tabwiki/internal/logger"
	"testing"
)

// seqIDs returns an IDFunc yielding "t-1", "s-2", ... shared by the
// migrator and the sessions of one test.
func seqIDs() data.IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// mockPersister is a Persister that keeps everything in memory and records
// every write.
type mockPersister struct {
	raw      *data.RawCollection
	editMode bool

	saveErr     error
	saveCalls   int
	lastSaved   *data.Collection
	modeSaveErr error
}

var _ Persister = (*mockPersister)(nil)

func newMockPersister() *mockPersister {
	return &mockPersister{raw: data.DefaultPages()}
}

func (m *mockPersister) Load(ctx context.Context) *data.RawCollection { return m.raw }

func (m *mockPersister) Save(ctx context.Context, pages *data.Collection) error {
	m.saveCalls++
	m.lastSaved = pages.Clone()
	if m.saveErr != nil {
		return &data.WriteError{Key: "pages", Err: m.saveErr}
	}
	return nil
}

func (m *mockPersister) LoadEditMode(ctx context.Context) bool { return m.editMode }

func (m *mockPersister) SaveEditMode(ctx context.Context, on bool) error {
	if m.modeSaveErr != nil {
		return &data.WriteError{Key: "editmode", Err: m.modeSaveErr}
	}
	m.editMode = on
	return nil
}

// newTestStore returns a Document Store holding the migrated built-in pages.
func newTestStore(newID data.IDFunc) *DocumentStore {
	pages, _ := data.NewMigrator(newID).Migrate(data.DefaultPages())
	return NewDocumentStore(pages)
}

// newTestSession opens a session on a built-in page.
func newTestSession(t *testing.T, store *DocumentStore, newID data.IDFunc, pageID string) *EditSession {
	t.Helper()
	p, ok := store.Get(pageID)
	if !ok {
		t.Fatalf("page %q not found", pageID)
	}
	return newEditSession(pageID, p, "", "", data.NewMigrator(newID), newID, NewContentRenderer(true))
}

// newTestApp returns a started App with edit mode on.
func newTestApp(t *testing.T, p *mockPersister) *App {
	t.Helper()
	p.editMode = true
	app := NewApp(p, seqIDs(), NewContentRenderer(true), logger.Nop())
	if err := app.Startup(context.Background()); err != nil {
		t.Fatalf("unexpected startup error: %v", err)
	}
	return app
}

// sectionHeaders lists the headers of a tab in order.
func sectionHeaders(tab *data.Tab) []string {
	var out []string
	for _, s := range tab.Sections {
		out = append(out, s.Header)
	}
	return out
}

// countSection reports in how many tabs of p the section appears.
func countSection(p *data.Page, id string) int {
	n := 0
	for _, t := range p.Tabs {
		for _, s := range t.Sections {
			if s.ID == id {
				n++
			}
		}
	}
	return n
}

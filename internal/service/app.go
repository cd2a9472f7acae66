package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"tabwiki/internal/data"
	"tabwiki/internal/logger"
)

// Persister defines the storage operations the application needs.
type Persister interface {
	Load(ctx context.Context) *data.RawCollection
	Save(ctx context.Context, pages *data.Collection) error
	LoadEditMode(ctx context.Context) bool
	SaveEditMode(ctx context.Context, on bool) error
}

// App is the application context: the Document Store, the edit-mode flag
// and the single open Editing Session. Every method holds the App lock, so
// concurrent requests see operations run one at a time.
type App struct {
	mu       sync.Mutex
	store    *DocumentStore
	persist  Persister
	migrator *data.Migrator
	renderer *ContentRenderer
	newID    data.IDFunc
	log      logger.Logger

	editMode bool
	session  *EditSession
}

// NewApp creates an App. Call Startup before serving.
func NewApp(p Persister, newID data.IDFunc, renderer *ContentRenderer, log logger.Logger) *App {
	if newID == nil {
		newID = data.MakeID
	}
	return &App{
		store:    NewDocumentStore(nil),
		persist:  p,
		migrator: data.NewMigrator(newID),
		renderer: renderer,
		newID:    newID,
		log:      log,
	}
}

// Startup loads the stored pages, migrates them into the Document Store and
// writes them back when the migration changed anything. A failed write is
// returned but the App is usable either way.
func (a *App) Startup(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw := a.persist.Load(ctx)
	pages, changed := a.migrator.Migrate(raw)
	a.store = NewDocumentStore(pages)
	a.editMode = a.persist.LoadEditMode(ctx)
	a.session = nil
	a.log.Info(fmt.Sprintf("Loaded %d pages (edit mode %t)", pages.Len(), a.editMode))

	if changed {
		a.log.Info("Stored pages were migrated, writing them back")
		return a.persist.Save(ctx, pages)
	}
	return nil
}

// EditMode reports whether editing is enabled.
func (a *App) EditMode() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.editMode
}

// SetEditMode enables or disables editing and stores the flag. The flag
// takes effect even if the write fails.
func (a *App) SetEditMode(ctx context.Context, on bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editMode = on
	return a.persist.SaveEditMode(ctx, on)
}

// ToggleEditMode flips edit mode and returns the new value.
func (a *App) ToggleEditMode(ctx context.Context) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.editMode = !a.editMode
	return a.editMode, a.persist.SaveEditMode(ctx, a.editMode)
}

// Navigation returns the pages grouped by category.
func (a *App) Navigation() []NavCategory {
	a.mu.Lock()
	defer a.mu.Unlock()
	return BuildNavigation(a.store)
}

// PageIDs returns every page id in navigation order.
func (a *App) PageIDs() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Collection().IDs()
}

// FirstPageID returns the page shown on start, or "" for an empty wiki.
func (a *App) FirstPageID() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.FirstPageID()
}

// Page returns a copy of a stored page.
func (a *App) Page(id string) (*data.Page, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	p, ok := a.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("page %q: %w", id, data.ErrPageNotFound)
	}
	return p.Clone(), nil
}

// OpenSession starts editing a page, replacing any session already open.
// tabID and sectionID may be empty or stale; the first available tab and
// section are used instead.
func (a *App) OpenSession(pageID, tabID, sectionID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.editMode {
		return ErrEditModeDisabled
	}
	p, ok := a.store.Get(pageID)
	if !ok {
		return fmt.Errorf("page %q: %w", pageID, data.ErrPageNotFound)
	}
	if a.session != nil && a.session.IsOpen() {
		a.log.Warn(fmt.Sprintf("Replacing open editing session for %q", a.session.PageID()))
	}
	a.session = newEditSession(pageID, p, tabID, sectionID, a.migrator, a.newID, a.renderer)
	return nil
}

// WithSession runs fn against the open session for pageID.
func (a *App) WithSession(pageID string, fn func(s *EditSession) error) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.openSession(pageID)
	if err != nil {
		return err
	}
	return fn(s)
}

func (a *App) openSession(pageID string) (*EditSession, error) {
	if a.session == nil || !a.session.IsOpen() || a.session.PageID() != pageID {
		return nil, ErrSessionClosed
	}
	return a.session, nil
}

// Save commits the open session for pageID. apply, when not nil, runs
// against the session first under the same lock, so nothing can interleave
// between the last edits and the commit; if it fails nothing is saved and
// the session stays open. With keepOpen a new session is opened on the saved
// page with the same cursors, like the editor's Save button; otherwise
// editing ends. A *data.WriteError means the page was saved in memory only.
func (a *App) Save(ctx context.Context, pageID string, keepOpen bool, apply func(s *EditSession) error) (*data.Page, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.openSession(pageID)
	if err != nil {
		return nil, err
	}
	if apply != nil {
		if err := apply(s); err != nil {
			return nil, err
		}
	}
	page, err := s.Commit(ctx, a.store, a.persist)
	var werr *data.WriteError
	if err != nil && !errors.As(err, &werr) {
		return nil, err
	}
	a.session = nil
	if keepOpen {
		stored, _ := a.store.Get(pageID)
		a.session = newEditSession(pageID, stored, s.currentTabID, s.currentSectionID, a.migrator, a.newID, a.renderer)
	}
	return page, err
}

// Discard closes the open session for pageID without saving once confirmed.
func (a *App) Discard(pageID string, c Confirmer) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	s, err := a.openSession(pageID)
	if err != nil {
		return false, err
	}
	closed, err := s.Discard(c)
	if closed {
		a.session = nil
	}
	return closed, err
}

// Close drops the open session without asking, like closing the editor.
func (a *App) Close(pageID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session != nil && a.session.PageID() == pageID {
		a.session = nil
	}
}

// AddPage inserts or overwrites a page from its JSON form, in either the
// legacy or the tabs shape, re-normalizes the collection and persists it.
// A *data.WriteError means the page was added in memory only.
func (a *App) AddPage(ctx context.Context, pageID string, body []byte) (*data.Page, error) {
	if pageID == "" {
		return nil, errors.New("page id is required")
	}
	var raw data.RawPage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &data.DeserializationError{Key: pageID, Err: err}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	page, _ := a.migrator.MigratePage(&raw)
	for _, t := range page.Tabs {
		for _, sec := range t.Sections {
			sec.Content = a.renderer.Sanitize(sec.Content)
		}
	}
	a.store.Set(pageID, page)
	a.migrator.NormalizeCollection(a.store.Collection())
	a.log.Info(fmt.Sprintf("Added page %q", pageTitle(page, pageID)))
	return page.Clone(), a.persist.Save(ctx, a.store.Collection())
}

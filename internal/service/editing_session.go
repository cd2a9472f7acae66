package service

import (
	"context"
	"errors"
	"strings"
	"tabwiki/internal/data"
)

var (
	// ErrSessionClosed is returned by operations on a committed or discarded session,
	// or when no session is open for the requested page.
	ErrSessionClosed = errors.New("editing session is closed")
	// ErrEditModeDisabled is returned when editing is attempted with edit mode off.
	ErrEditModeDisabled = errors.New("enable editing first")
)

// Confirmation prompts shown before destructive session operations.
const (
	PromptRemoveTab     = "Remove this tab and all its sections?"
	PromptRemoveSection = "Remove this section?"
	PromptDiscard       = "Close without saving changes? All unsaved changes in the modal will be lost."
)

// Placeholders for new tabs and sections.
const (
	NewTabTitle       = "New Tab"
	NewSectionHeader  = "New Section"
	NewSectionContent = "<p>Edit this section</p>"
)

// Confirmer asks the user to confirm a destructive operation.
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to the Confirmer interface.
type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

// AlwaysConfirm accepts every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(string) bool { return true })

// PageSaver writes the whole collection through to storage.
type PageSaver interface {
	Save(ctx context.Context, pages *data.Collection) error
}

// EditSession is a copy-on-write transaction over one page. All edits go to
// a private deep copy; the Document Store only changes on Commit.
type EditSession struct {
	pageID string
	page   *data.Page

	currentTabID     string
	currentSectionID string

	buffer       EditorBuffer
	original     string
	haveOriginal bool

	open     bool
	newID    data.IDFunc
	renderer *ContentRenderer
}

// newEditSession deep-copies stored, normalizes the copy and points the
// cursors at the requested tab and section, or the first available ones.
func newEditSession(pageID string, stored *data.Page, tabID, sectionID string, m *data.Migrator, newID data.IDFunc, r *ContentRenderer) *EditSession {
	page := stored.Clone()
	m.NormalizePage(page)

	s := &EditSession{
		pageID:   pageID,
		page:     page,
		open:     true,
		newID:    newID,
		renderer: r,
	}

	switch {
	case page.Tab(tabID) != nil:
		s.currentTabID = tabID
	case page.Tab(page.ActiveTabID) != nil:
		s.currentTabID = page.ActiveTabID
	case len(page.Tabs) > 0:
		s.currentTabID = page.Tabs[0].ID
	}
	if sec, owner := page.FindSection(sectionID); sec != nil {
		s.currentSectionID = sec.ID
		s.currentTabID = owner.ID
	}
	s.loadSelected()
	return s
}

// PageID returns the id of the page being edited.
func (s *EditSession) PageID() string { return s.pageID }

// Page returns the session's private copy. Callers must treat it as read-only.
func (s *EditSession) Page() *data.Page { return s.page }

// IsOpen reports whether the session still accepts operations.
func (s *EditSession) IsOpen() bool { return s.open }

// Buffer returns the current content-editing surface state.
func (s *EditSession) Buffer() EditorBuffer { return s.buffer }

// OriginalContent returns the snapshot taken when the selected section was
// last loaded or flushed.
func (s *EditSession) OriginalContent() (string, bool) { return s.original, s.haveOriginal }

// CurrentTab returns the tab cursor, falling back to the first tab.
func (s *EditSession) CurrentTab() *data.Tab {
	if t := s.page.Tab(s.currentTabID); t != nil {
		return t
	}
	if len(s.page.Tabs) > 0 {
		return s.page.Tabs[0]
	}
	return nil
}

// CurrentSection returns the selected section, or nil.
func (s *EditSession) CurrentSection() *data.Section {
	sec, _ := s.page.FindSection(s.currentSectionID)
	return sec
}

// loadSelected loads the selected section, or the first section of the
// current tab, into the buffer and snapshots its content.
func (s *EditSession) loadSelected() {
	sec := s.CurrentSection()
	if sec == nil {
		if t := s.CurrentTab(); t != nil && len(t.Sections) > 0 {
			sec = t.Sections[0]
		}
	}
	if sec == nil {
		s.currentSectionID = ""
		s.buffer = EditorBuffer{Mode: ModeRich}
		s.original, s.haveOriginal = "", false
		return
	}
	s.currentSectionID = sec.ID
	s.original, s.haveOriginal = sec.Content, true
	s.buffer = EditorBuffer{Mode: ModeRich, Text: sec.Content}
}

func (s *EditSession) check() error {
	if !s.open {
		return ErrSessionClosed
	}
	return nil
}

// SetBuffer records what the content-editing surface holds. It does not
// touch the section until Flush.
func (s *EditSession) SetBuffer(mode BufferMode, text string) error {
	if err := s.check(); err != nil {
		return err
	}
	if mode == s.buffer.Mode && text == s.buffer.Text {
		return nil
	}
	s.buffer = EditorBuffer{Mode: mode, Text: text, Dirty: true}
	return nil
}

// SetMode switches the surface between rich, code and markdown presentation,
// carrying the text over.
func (s *EditSession) SetMode(mode BufferMode) error {
	if err := s.check(); err != nil {
		return err
	}
	s.buffer.Mode = mode
	return nil
}

// Flush writes the buffer into the selected section and refreshes the revert
// snapshot. Without a selected section it does nothing.
func (s *EditSession) Flush() error {
	if err := s.check(); err != nil {
		return err
	}
	return s.flush()
}

func (s *EditSession) flush() error {
	sec := s.CurrentSection()
	if sec == nil {
		return nil
	}
	html, err := s.renderer.Render(s.buffer)
	if err != nil {
		return err
	}
	sec.Content = html
	s.original, s.haveOriginal = html, true
	mode := s.buffer.Mode
	if mode == ModeMarkdown {
		mode = ModeRich
	}
	s.buffer = EditorBuffer{Mode: mode, Text: html}
	return nil
}

// flushPending applies unsaved buffer edits before a cursor moves, so
// switching sections never drops work.
func (s *EditSession) flushPending() error {
	if !s.buffer.Dirty {
		return nil
	}
	return s.flush()
}

// Revert restores the buffer to the content of the selected section as it
// was last loaded or flushed. It reports whether anything was restored.
func (s *EditSession) Revert() (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	if !s.haveOriginal || s.CurrentSection() == nil {
		return false, nil
	}
	s.buffer = EditorBuffer{Mode: ModeRich, Text: s.original}
	return true, nil
}

// SelectTab moves the tab cursor. The section cursor is left alone.
func (s *EditSession) SelectTab(tabID string) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.page.Tab(tabID) == nil {
		return &data.MissingReferenceError{Kind: "tab", ID: tabID}
	}
	s.currentTabID = tabID
	return nil
}

// SelectSection flushes pending edits, then loads the given section into
// the buffer. The tab cursor follows the section's owning tab.
func (s *EditSession) SelectSection(sectionID string) error {
	if err := s.check(); err != nil {
		return err
	}
	_, owner := s.page.FindSection(sectionID)
	if owner == nil {
		return &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	if err := s.flushPending(); err != nil {
		return err
	}
	s.currentTabID = owner.ID
	s.currentSectionID = sectionID
	s.loadSelected()
	return nil
}

// AddTab appends an empty tab. A blank title becomes "New Tab".
func (s *EditSession) AddTab(title string, open bool) (*data.Tab, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = NewTabTitle
	}
	tab := &data.Tab{ID: s.newID(data.TabPrefix), Title: title, Sections: []*data.Section{}}
	s.page.Tabs = append(s.page.Tabs, tab)
	if open {
		s.currentTabID = tab.ID
	}
	return tab, nil
}

// RenameTab changes a tab title. A blank title becomes "Untitled".
func (s *EditSession) RenameTab(tabID, title string) error {
	if err := s.check(); err != nil {
		return err
	}
	tab := s.page.Tab(tabID)
	if tab == nil {
		return &data.MissingReferenceError{Kind: "tab", ID: tabID}
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = data.UntitledTabTitle
	}
	tab.Title = title
	return nil
}

// RemoveTab deletes a tab and all of its sections once confirmed. It
// reports whether the tab was removed.
func (s *EditSession) RemoveTab(tabID string, c Confirmer) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	idx := -1
	for i, t := range s.page.Tabs {
		if t.ID == tabID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return false, &data.MissingReferenceError{Kind: "tab", ID: tabID}
	}
	if !c.Confirm(PromptRemoveTab) {
		return false, nil
	}
	_, selectedOwner := s.page.FindSection(s.currentSectionID)
	s.page.Tabs = append(s.page.Tabs[:idx:idx], s.page.Tabs[idx+1:]...)

	if s.currentTabID == tabID {
		s.currentTabID = ""
		if len(s.page.Tabs) > 0 {
			s.currentTabID = s.page.Tabs[0].ID
		}
	}
	if selectedOwner != nil && selectedOwner.ID == tabID {
		s.currentSectionID = ""
		s.loadSelected()
	}
	return true, nil
}

// AddSection appends a placeholder section to a tab and selects it.
func (s *EditSession) AddSection(tabID string) (*data.Section, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	tab := s.page.Tab(tabID)
	if tab == nil {
		return nil, &data.MissingReferenceError{Kind: "tab", ID: tabID}
	}
	if err := s.flushPending(); err != nil {
		return nil, err
	}
	sec := &data.Section{
		ID:      s.newID(data.SectionPrefix),
		Header:  NewSectionHeader,
		Content: NewSectionContent,
	}
	tab.Sections = append(tab.Sections, sec)
	s.currentTabID = tab.ID
	s.currentSectionID = sec.ID
	s.loadSelected()
	return sec, nil
}

// EditSectionHeader sets a section header as typed.
func (s *EditSession) EditSectionHeader(sectionID, text string) error {
	if err := s.check(); err != nil {
		return err
	}
	sec, _ := s.page.FindSection(sectionID)
	if sec == nil {
		return &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	sec.Header = text
	return nil
}

// SetCollapsed sets the display state of a section.
func (s *EditSession) SetCollapsed(sectionID string, collapsed bool) error {
	if err := s.check(); err != nil {
		return err
	}
	sec, _ := s.page.FindSection(sectionID)
	if sec == nil {
		return &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	sec.Collapsed = collapsed
	return nil
}

// ToggleCollapsed flips the display state of a section and returns it.
func (s *EditSession) ToggleCollapsed(sectionID string) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	sec, _ := s.page.FindSection(sectionID)
	if sec == nil {
		return false, &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	sec.Collapsed = !sec.Collapsed
	return sec.Collapsed, nil
}

// RemoveSection deletes a section once confirmed. Removing the selected
// section selects the first section of the current tab, if any.
func (s *EditSession) RemoveSection(sectionID string, c Confirmer) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	_, owner := s.page.FindSection(sectionID)
	if owner == nil {
		return false, &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	if !c.Confirm(PromptRemoveSection) {
		return false, nil
	}
	owner.RemoveSection(sectionID)
	if s.currentSectionID == sectionID {
		s.currentSectionID = ""
		s.loadSelected()
	}
	return true, nil
}

// MoveSection moves a section to the end of another tab and makes that tab
// current. Moving to the owning tab does nothing.
func (s *EditSession) MoveSection(sectionID, destTabID string) error {
	if err := s.check(); err != nil {
		return err
	}
	_, src := s.page.FindSection(sectionID)
	if src == nil {
		return &data.MissingReferenceError{Kind: "section", ID: sectionID}
	}
	dest := s.page.Tab(destTabID)
	if dest == nil {
		return &data.MissingReferenceError{Kind: "tab", ID: destTabID}
	}
	if src == dest {
		return nil
	}
	sec := src.RemoveSection(sectionID)
	dest.Sections = append(dest.Sections, sec)
	s.currentTabID = dest.ID
	return nil
}

// Commit flushes pending edits, makes the active tab valid and replaces the
// stored page with the session copy, then writes the collection through.
// The session is closed afterwards. A write failure is returned together
// with the committed page; the Document Store keeps the new page.
func (s *EditSession) Commit(ctx context.Context, store *DocumentStore, saver PageSaver) (*data.Page, error) {
	if err := s.check(); err != nil {
		return nil, err
	}
	if err := s.flushPending(); err != nil {
		return nil, err
	}
	s.page.EnsureActiveTab()
	store.Set(s.pageID, s.page.Clone())
	s.open = false
	return s.page, saver.Save(ctx, store.Collection())
}

// Discard closes the session without touching the Document Store once
// confirmed. It reports whether the session was closed.
func (s *EditSession) Discard(c Confirmer) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}
	if !c.Confirm(PromptDiscard) {
		return false, nil
	}
	s.open = false
	return true, nil
}

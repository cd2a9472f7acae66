package data

import "strings"

// Titles and placeholders assigned during normalization.
const (
	DefaultTabTitle     = "Main"
	UntitledTabTitle    = "Untitled"
	UntitledSectionName = "Untitled"
)

// Migrator converts stored page collections into the canonical
// pages -> tabs -> sections shape.
type Migrator struct {
	newID IDFunc
}

// NewMigrator creates a Migrator. A nil IDFunc falls back to MakeID.
func NewMigrator(newID IDFunc) *Migrator {
	if newID == nil {
		newID = MakeID
	}
	return &Migrator{newID: newID}
}

// Migrate converts every page of raw and reports whether any page needed
// conversion, in which case the caller should persist the result.
// Pages already in canonical shape come out unchanged, which makes it safe
// to run on every load.
func (m *Migrator) Migrate(raw *RawCollection) (*Collection, bool) {
	out := NewCollection()
	changed := false
	for id, rp := range raw.All() {
		p, c := m.MigratePage(rp)
		out.Set(id, p)
		changed = changed || c
	}
	return out, changed
}

// MigratePage converts a single stored page. Tabs are checked before the
// legacy sections field so converted pages are never converted twice.
func (m *Migrator) MigratePage(rp *RawPage) (*Page, bool) {
	if rp == nil {
		rp = &RawPage{}
	}
	page := &Page{Title: rp.Title, Category: rp.Category, ActiveTabID: rp.ActiveTabID}

	if rawTabs, ok := decodeArray[RawTab](rp.Tabs); ok {
		changed := len(rp.Sections) > 0 // the legacy field is dropped
		for _, rt := range rawTabs {
			tab := &Tab{ID: rt.ID, Title: rt.Title, Sections: []*Section{}}
			rawSections, ok := decodeArray[RawSection](rt.Sections)
			if !ok {
				changed = true
			}
			for _, rs := range rawSections {
				s, c := convertSection(rs)
				changed = changed || c
				tab.Sections = append(tab.Sections, s)
			}
			page.Tabs = append(page.Tabs, tab)
		}
		if m.NormalizePage(page) {
			changed = true
		}
		return page, changed
	}

	if rawSections, ok := decodeArray[RawSection](rp.Sections); ok {
		tab := &Tab{ID: m.newID(TabPrefix), Title: DefaultTabTitle, Sections: []*Section{}}
		for _, rs := range rawSections {
			s, _ := convertSection(rs)
			s.ID = m.newID(SectionPrefix)
			s.Collapsed = false
			tab.Sections = append(tab.Sections, s)
		}
		page.Tabs = []*Tab{tab}
		page.ActiveTabID = tab.ID
		m.NormalizePage(page)
		return page, true
	}

	tab := &Tab{ID: m.newID(TabPrefix), Title: DefaultTabTitle, Sections: []*Section{}}
	page.Tabs = []*Tab{tab}
	page.ActiveTabID = tab.ID
	return page, true
}

// convertSection resolves the legacy aliases of a stored section. It
// reports whether anything had to be filled in or renamed.
func convertSection(rs RawSection) (*Section, bool) {
	changed := rs.Title != "" || rs.HTML != "" || rs.Collapsed == nil
	s := &Section{ID: rs.ID, Header: rs.Header, Content: rs.Content}
	if s.Header == "" {
		s.Header = rs.Title
	}
	if s.Content == "" {
		s.Content = rs.HTML
	}
	if rs.Collapsed != nil {
		s.Collapsed = *rs.Collapsed
	}
	return s, changed
}

// NormalizePage fills in whatever a canonical page is missing: at least one
// tab, unique tab and section ids, titles and headers, and a resolvable
// active tab. It reports whether the page changed and is idempotent.
func (m *Migrator) NormalizePage(p *Page) bool {
	changed := false
	seen := make(map[string]bool)
	fresh := func(id, prefix string) (string, bool) {
		if id != "" && !seen[id] {
			seen[id] = true
			return id, false
		}
		id = m.newID(prefix)
		seen[id] = true
		return id, true
	}

	tabs := make([]*Tab, 0, len(p.Tabs))
	for _, t := range p.Tabs {
		if t == nil {
			changed = true
			continue
		}
		tabs = append(tabs, t)
	}
	p.Tabs = tabs
	if len(p.Tabs) == 0 {
		p.Tabs = []*Tab{{Title: DefaultTabTitle, Sections: []*Section{}}}
		changed = true
	}

	for _, t := range p.Tabs {
		var c bool
		if t.ID, c = fresh(t.ID, TabPrefix); c {
			changed = true
		}
		if strings.TrimSpace(t.Title) == "" {
			t.Title = UntitledTabTitle
			changed = true
		}
		sections := make([]*Section, 0, len(t.Sections))
		for _, s := range t.Sections {
			if s == nil {
				changed = true
				continue
			}
			if s.ID, c = fresh(s.ID, SectionPrefix); c {
				changed = true
			}
			if s.Header == "" {
				s.Header = UntitledSectionName
				changed = true
			}
			sections = append(sections, s)
		}
		t.Sections = sections
	}

	if p.EnsureActiveTab() {
		changed = true
	}
	return changed
}

// NormalizeCollection runs NormalizePage over every page, replacing nil
// entries with an empty page.
func (m *Migrator) NormalizeCollection(c *Collection) bool {
	changed := false
	for id, p := range c.All() {
		if p == nil {
			p = &Page{}
			c.Set(id, p)
		}
		if m.NormalizePage(p) {
			changed = true
		}
	}
	return changed
}

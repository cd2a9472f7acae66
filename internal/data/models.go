package data

// Section is a single collapsible content block.
type Section struct {
	ID        string `json:"id"`
	Header    string `json:"header"`
	Content   string `json:"content"`
	Collapsed bool   `json:"collapsed"`
}

// Tab is a named group of sections within a page.
type Tab struct {
	ID       string     `json:"id"`
	Title    string     `json:"title"`
	Sections []*Section `json:"sections"`
}

// Page is a named wiki topic. Tabs are kept in display order.
// An empty ActiveTabID means the page has no tabs.
type Page struct {
	Title       string `json:"title"`
	Category    string `json:"category"`
	Tabs        []*Tab `json:"tabs"`
	ActiveTabID string `json:"activeTabId"`
}

// Tab returns the tab with the given id, or nil.
func (p *Page) Tab(id string) *Tab {
	for _, t := range p.Tabs {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// ActiveTab returns the active tab, falling back to the first tab when the
// active id no longer resolves. It returns nil only for a page without tabs.
func (p *Page) ActiveTab() *Tab {
	if t := p.Tab(p.ActiveTabID); t != nil {
		return t
	}
	if len(p.Tabs) > 0 {
		return p.Tabs[0]
	}
	return nil
}

// FindSection returns the section with the given id and the tab owning it.
func (p *Page) FindSection(id string) (*Section, *Tab) {
	for _, t := range p.Tabs {
		for _, s := range t.Sections {
			if s.ID == id {
				return s, t
			}
		}
	}
	return nil, nil
}

// EnsureActiveTab points ActiveTabID at the first tab when it is unset or
// dangling. It reports whether the field changed.
func (p *Page) EnsureActiveTab() bool {
	if p.Tab(p.ActiveTabID) != nil {
		return false
	}
	next := ""
	if len(p.Tabs) > 0 {
		next = p.Tabs[0].ID
	}
	if next == p.ActiveTabID {
		return false
	}
	p.ActiveTabID = next
	return true
}

// Clone returns a deep copy of the page sharing no memory with p.
func (p *Page) Clone() *Page {
	if p == nil {
		return nil
	}
	c := &Page{
		Title:       p.Title,
		Category:    p.Category,
		ActiveTabID: p.ActiveTabID,
		Tabs:        make([]*Tab, 0, len(p.Tabs)),
	}
	for _, t := range p.Tabs {
		c.Tabs = append(c.Tabs, t.Clone())
	}
	return c
}

// Clone returns a deep copy of the tab.
func (t *Tab) Clone() *Tab {
	c := &Tab{ID: t.ID, Title: t.Title, Sections: make([]*Section, 0, len(t.Sections))}
	for _, s := range t.Sections {
		cp := *s
		c.Sections = append(c.Sections, &cp)
	}
	return c
}

// RemoveSection drops the section with the given id from the tab and
// returns it, or nil when the tab does not hold it.
func (t *Tab) RemoveSection(id string) *Section {
	for i, s := range t.Sections {
		if s.ID == id {
			t.Sections = append(t.Sections[:i:i], t.Sections[i+1:]...)
			return s
		}
	}
	return nil
}

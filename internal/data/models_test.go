//go:build unit

package data

import "testing"

func samplePage() *Page {
	return &Page{
		Title:    "Sample",
		Category: "Tests",
		Tabs: []*Tab{
			{ID: "t-1", Title: "One", Sections: []*Section{{ID: "s-1", Header: "A"}, {ID: "s-2", Header: "B"}}},
			{ID: "t-2", Title: "Two", Sections: []*Section{{ID: "s-3", Header: "C"}}},
		},
		ActiveTabID: "t-2",
	}
}

func TestPage_Lookups(t *testing.T) {
	p := samplePage()

	if p.Tab("t-2") == nil || p.Tab("nope") != nil {
		t.Error("unexpected Tab lookup result")
	}
	if p.ActiveTab().ID != "t-2" {
		t.Errorf("expected active tab t-2, got %s", p.ActiveTab().ID)
	}
	p.ActiveTabID = "gone"
	if p.ActiveTab().ID != "t-1" {
		t.Errorf("expected fallback to the first tab, got %s", p.ActiveTab().ID)
	}

	s, owner := p.FindSection("s-3")
	if s == nil || owner.ID != "t-2" {
		t.Errorf("expected s-3 in t-2, got %v in %v", s, owner)
	}
	if s, owner := p.FindSection("missing"); s != nil || owner != nil {
		t.Error("expected no result for a missing section")
	}
}

func TestPage_EnsureActiveTab(t *testing.T) {
	p := samplePage()
	if p.EnsureActiveTab() {
		t.Error("expected a valid active tab to be left alone")
	}

	p.ActiveTabID = ""
	if !p.EnsureActiveTab() || p.ActiveTabID != "t-1" {
		t.Errorf("expected the first tab, got %q", p.ActiveTabID)
	}

	p.Tabs = nil
	if !p.EnsureActiveTab() || p.ActiveTabID != "" {
		t.Errorf("expected no active tab for a page without tabs, got %q", p.ActiveTabID)
	}
	if p.EnsureActiveTab() {
		t.Error("expected no change on the second call")
	}
}

func TestTab_RemoveSectionDoesNotAlias(t *testing.T) {
	p := samplePage()
	cp := p.Clone()

	removed := cp.Tabs[0].RemoveSection("s-1")
	if removed == nil || removed.ID != "s-1" {
		t.Fatalf("expected s-1 to be removed, got %v", removed)
	}
	if len(cp.Tabs[0].Sections) != 1 || cp.Tabs[0].Sections[0].ID != "s-2" {
		t.Errorf("unexpected sections after removal: %+v", cp.Tabs[0].Sections)
	}
	if len(p.Tabs[0].Sections) != 2 || p.Tabs[0].Sections[0].ID != "s-1" {
		t.Errorf("expected the original to be untouched, got %+v", p.Tabs[0].Sections)
	}
	if cp.Tabs[0].RemoveSection("s-1") != nil {
		t.Error("expected nil when removing a section twice")
	}
}

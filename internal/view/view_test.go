//go:build unit

package view

import (
	"bytes"
	"strings"
	"tabwiki/internal/data"
	"tabwiki/web"
	"testing"
)

func TestRender(t *testing.T) {
	v, err := New(web.TemplateFS)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}

	page := &data.Page{
		Title:    "Bureau of Colonies",
		Category: "Expansion",
		Tabs: []*data.Tab{{ID: "t-1", Title: "Main", Sections: []*data.Section{
			{ID: "s-1", Header: "Colonial Oversight", Content: "<p>Management of <em>colonies</em>.</p>", Collapsed: true},
		}}},
		ActiveTabID: "t-1",
	}

	var buf bytes.Buffer
	err = v.Render(&buf, "view.html", map[string]interface{}{
		"PageID":   "Colonies",
		"Page":     page,
		"Tab":      page.Tabs[0],
		"EditMode": true,
		"Flash":    "Saved.",
	})
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<title>Bureau of Colonies</title>",
		"<p>Management of <em>colonies</em>.</p>",
		`href="/edit/Colonies?tab=t-1&amp;section=s-1"`,
		"Saved.",
		"Disable Editing",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q", want)
		}
	}
	if strings.Contains(out, "<details class=\"collapse-section\" open>") {
		t.Error("expected a collapsed section to render closed")
	}

	if err := v.Render(&buf, "missing.html", nil); err == nil {
		t.Error("expected an error for an unknown template")
	}
}

func TestRenderError(t *testing.T) {
	v, err := New(web.TemplateFS)
	if err != nil {
		t.Fatalf("failed to parse templates: %v", err)
	}
	var buf bytes.Buffer
	if err := v.Render(&buf, "error.html", map[string]interface{}{"StatusCode": 404, "StatusText": "Page not found"}); err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	if !strings.Contains(buf.String(), "Page not found") {
		t.Error("expected the status text")
	}
}

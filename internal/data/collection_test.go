//go:build unit

package data

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCollection_KeepsInsertionOrder(t *testing.T) {
	c := NewCollection()
	if err := json.Unmarshal([]byte(`{"zeta":{"title":"Z"},"alpha":{"title":"A"},"mid":{"title":"M"}}`), c); err != nil {
		t.Fatalf("failed to decode collection: %v", err)
	}

	ids := c.IDs()
	if strings.Join(ids, ",") != "zeta,alpha,mid" {
		t.Errorf("expected stored order, got %v", ids)
	}

	c.Set("alpha", &Page{Title: "A2"})
	c.Set("new", &Page{Title: "N"})
	if got := strings.Join(c.IDs(), ","); got != "zeta,alpha,mid,new" {
		t.Errorf("expected overwrite to keep position and insert to append, got %s", got)
	}

	b, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("failed to encode collection: %v", err)
	}
	if !strings.HasPrefix(string(b), `{"zeta":`) || strings.Index(string(b), `"new"`) < strings.Index(string(b), `"mid"`) {
		t.Errorf("expected encoded keys in insertion order, got %s", b)
	}
}

func TestCollection_Clone(t *testing.T) {
	c := NewCollection()
	c.Set("p", &Page{Title: "P", Tabs: []*Tab{{ID: "t-1", Title: "A", Sections: []*Section{{ID: "s-1", Header: "H"}}}}})

	cp := c.Clone()
	p, _ := cp.Get("p")
	p.Tabs[0].Sections[0].Header = "changed"
	p.Title = "changed"

	orig, _ := c.Get("p")
	if orig.Title != "P" || orig.Tabs[0].Sections[0].Header != "H" {
		t.Errorf("expected clone to share no memory, original is now %+v", orig)
	}
}

func TestDecodeRawCollection_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":      `{not json`,
		"array":         `[]`,
		"trailing data": `{} {}`,
		"bad page":      `{"p": 42}`,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeRawCollection([]byte(input)); err == nil {
				t.Errorf("expected an error for %q", input)
			}
		})
	}
}

func TestDefaultPages_FreshCopies(t *testing.T) {
	a := DefaultPages()
	p, _ := a.Get("Founding")
	p.Title = "mutated"

	b := DefaultPages()
	q, _ := b.Get("Founding")
	if q.Title != "Executive Branches" {
		t.Errorf("expected a fresh copy, got title %q", q.Title)
	}
	if b.Len() != 6 {
		t.Errorf("expected 6 built-in pages, got %d", b.Len())
	}
}

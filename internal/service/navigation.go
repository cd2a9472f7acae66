package service

import "tabwiki/internal/data"

// NavItem is a link to one page.
type NavItem struct {
	ID    string
	Title string
}

// NavCategory groups pages sharing a category.
type NavCategory struct {
	Name  string
	Pages []NavItem
}

// BuildNavigation groups pages by category. Categories appear in the order
// their first page was inserted, pages in insertion order.
func BuildNavigation(pages *DocumentStore) []NavCategory {
	var nav []NavCategory
	index := make(map[string]int)
	for id, p := range pages.All() {
		if p == nil {
			continue
		}
		i, ok := index[p.Category]
		if !ok {
			i = len(nav)
			index[p.Category] = i
			nav = append(nav, NavCategory{Name: p.Category})
		}
		nav[i].Pages = append(nav[i].Pages, NavItem{ID: id, Title: p.Title})
	}
	return nav
}

// pageTitle is the label used for a page in notices.
func pageTitle(p *data.Page, id string) string {
	if p != nil && p.Title != "" {
		return p.Title
	}
	return id
}

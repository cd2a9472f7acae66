package data

import (
	"bytes"
	"encoding/json"
)

// RawSection accepts both the current field names and the legacy aliases
// (title for header, html for content).
type RawSection struct {
	ID        string `json:"id,omitempty"`
	Header    string `json:"header,omitempty"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content,omitempty"`
	HTML      string `json:"html,omitempty"`
	Collapsed *bool  `json:"collapsed,omitempty"`
}

// RawTab is a tab whose sections may be missing or malformed.
type RawTab struct {
	ID       string          `json:"id,omitempty"`
	Title    string          `json:"title,omitempty"`
	Sections json.RawMessage `json:"sections,omitempty"`
}

// RawPage is a page in any stored shape: canonical (tabs), legacy (flat
// sections) or neither.
type RawPage struct {
	Title       string          `json:"title"`
	Category    string          `json:"category"`
	Tabs        json.RawMessage `json:"tabs,omitempty"`
	Sections    json.RawMessage `json:"sections,omitempty"`
	ActiveTabID string          `json:"activeTabId,omitempty"`
}

// decodeArray decodes raw as a JSON array of T. ok is false when raw is
// absent, null, not an array, or holds elements of the wrong shape.
func decodeArray[T any](raw json.RawMessage) (items []T, ok bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}
	return items, true
}

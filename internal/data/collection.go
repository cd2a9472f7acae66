package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
)

// orderedMap is a string-keyed map that remembers insertion order and keeps
// it through JSON encoding and decoding.
type orderedMap[V any] struct {
	keys   []string
	values map[string]V
}

func (m *orderedMap[V]) get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

// set inserts or overwrites. Overwriting keeps the original position.
func (m *orderedMap[V]) set(key string, v V) {
	if m.values == nil {
		m.values = make(map[string]V)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

func (m *orderedMap[V]) all() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

func (m *orderedMap[V]) marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (m *orderedMap[V]) unmarshal(b []byte) error {
	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected a JSON object, got %v", tok)
	}
	m.keys = nil
	m.values = make(map[string]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode page %q: %w", key, err)
		}
		m.set(key, v)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after the top-level object")
	}
	return nil
}

// Collection maps page ids to canonical pages in insertion order.
type Collection struct {
	pages orderedMap[*Page]
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{}
}

// Get returns the page stored under id.
func (c *Collection) Get(id string) (*Page, bool) {
	return c.pages.get(id)
}

// Set inserts or overwrites the page stored under id.
func (c *Collection) Set(id string, p *Page) {
	c.pages.set(id, p)
}

// Len returns the number of pages.
func (c *Collection) Len() int {
	return len(c.pages.keys)
}

// IDs returns the page ids in insertion order.
func (c *Collection) IDs() []string {
	return append([]string(nil), c.pages.keys...)
}

// All iterates over (id, page) pairs in insertion order.
func (c *Collection) All() iter.Seq2[string, *Page] {
	return c.pages.all()
}

// Clone returns a deep copy of the collection.
func (c *Collection) Clone() *Collection {
	out := NewCollection()
	for id, p := range c.All() {
		out.Set(id, p.Clone())
	}
	return out
}

func (c *Collection) MarshalJSON() ([]byte, error) {
	return c.pages.marshal()
}

func (c *Collection) UnmarshalJSON(b []byte) error {
	return c.pages.unmarshal(b)
}

// RawCollection is a page collection as found in storage, possibly in a
// legacy shape. It becomes a Collection through the Migrator.
type RawCollection struct {
	pages orderedMap[*RawPage]
}

// NewRawCollection returns an empty raw collection.
func NewRawCollection() *RawCollection {
	return &RawCollection{}
}

// DecodeRawCollection parses a stored blob.
func DecodeRawCollection(b []byte) (*RawCollection, error) {
	rc := NewRawCollection()
	if err := json.Unmarshal(b, rc); err != nil {
		return nil, err
	}
	return rc, nil
}

func (c *RawCollection) Get(id string) (*RawPage, bool) {
	return c.pages.get(id)
}

func (c *RawCollection) Set(id string, p *RawPage) {
	c.pages.set(id, p)
}

func (c *RawCollection) Len() int {
	return len(c.pages.keys)
}

func (c *RawCollection) All() iter.Seq2[string, *RawPage] {
	return c.pages.all()
}

func (c *RawCollection) MarshalJSON() ([]byte, error) {
	return c.pages.marshal()
}

func (c *RawCollection) UnmarshalJSON(b []byte) error {
	return c.pages.unmarshal(b)
}

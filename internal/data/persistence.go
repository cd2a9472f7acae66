package data

import (
	"context"
	"encoding/json"
	"strconv"
	"tabwiki/internal/logger"
)

// Persistence reads and writes the page collection and the edit-mode flag.
// Reads never fail: anything absent or unreadable falls back to defaults.
// Writes report a *WriteError but leave the in-memory state authoritative.
type Persistence struct {
	kv          KVStore
	log         logger.Logger
	pagesKey    string
	editModeKey string
}

// NewPersistence creates a Persistence over the given store and keys.
func NewPersistence(kv KVStore, log logger.Logger, pagesKey, editModeKey string) *Persistence {
	return &Persistence{
		kv:          kv,
		log:         log.With(map[string]interface{}{"component": "persistence"}),
		pagesKey:    pagesKey,
		editModeKey: editModeKey,
	}
}

// Load returns the stored collection, or a fresh copy of the built-in pages
// when nothing is stored or the stored blob cannot be read.
func (p *Persistence) Load(ctx context.Context) *RawCollection {
	raw, ok, err := p.kv.Get(ctx, p.pagesKey)
	if err != nil {
		p.log.Error(err, "Failed to read pages from storage, using built-in pages")
		return DefaultPages()
	}
	if !ok || raw == "" {
		p.log.Info("No stored pages found, using built-in pages")
		return DefaultPages()
	}
	pages, err := DecodeRawCollection([]byte(raw))
	if err != nil {
		derr := &DeserializationError{Key: p.pagesKey, Err: err}
		p.log.Warn(derr.Error() + "; using built-in pages")
		return DefaultPages()
	}
	return pages
}

// Save serializes the collection and writes it through.
func (p *Persistence) Save(ctx context.Context, pages *Collection) error {
	b, err := json.Marshal(pages)
	if err != nil {
		return p.writeFailed(p.pagesKey, err)
	}
	if err := p.kv.Set(ctx, p.pagesKey, string(b)); err != nil {
		return p.writeFailed(p.pagesKey, err)
	}
	return nil
}

// LoadEditMode returns the stored edit-mode flag. Anything but "true" is off.
func (p *Persistence) LoadEditMode(ctx context.Context) bool {
	raw, _, err := p.kv.Get(ctx, p.editModeKey)
	if err != nil {
		p.log.Error(err, "Failed to read edit mode from storage")
		return false
	}
	return raw == "true"
}

// SaveEditMode stores the edit-mode flag as "true" or "false".
func (p *Persistence) SaveEditMode(ctx context.Context, on bool) error {
	if err := p.kv.Set(ctx, p.editModeKey, strconv.FormatBool(on)); err != nil {
		return p.writeFailed(p.editModeKey, err)
	}
	return nil
}

func (p *Persistence) writeFailed(key string, err error) error {
	werr := &WriteError{Key: key, Err: err}
	p.log.Error(werr, "Changes are kept in memory only")
	return werr
}

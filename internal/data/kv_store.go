package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// KVStore is the string key-value substrate the wiki persists into.
type KVStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
}

// SQLKVStore is a KVStore backed by the kv_store table.
type SQLKVStore struct {
	db *sqlx.DB
}

// NewSQLKVStore creates a new SQLKVStore. The schema must already exist;
// see ApplyMigrations.
func NewSQLKVStore(db *sqlx.DB) *SQLKVStore {
	return &SQLKVStore{db: db}
}

// Get retrieves a value. A missing key is not an error.
func (s *SQLKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	query := `SELECT value FROM kv_store WHERE name = ?`
	if err := s.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get value from kv store: %w", err)
	}
	return value, true, nil
}

// Set inserts or replaces a value.
func (s *SQLKVStore) Set(ctx context.Context, key, value string) error {
	// REPLACE INTO is understood by both SQLite and MySQL.
	query := `REPLACE INTO kv_store (name, value) VALUES (?, ?)`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set value in kv store: %w", err)
	}
	return nil
}

// MemoryKVStore keeps values in process memory. It backs the "memory"
// store driver and tests.
type MemoryKVStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryKVStore creates an empty MemoryKVStore.
func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{values: make(map[string]string)}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

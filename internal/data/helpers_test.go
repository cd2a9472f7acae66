//go:build unit || integration

package data

import (
	"context"
	"errors"
	"fmt"
)

// seqIDs returns an IDFunc yielding "t-1", "s-2", ... so tests can assert
// exact identifiers.
func seqIDs() IDFunc {
	n := 0
	return func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// failingKVStore is a KVStore whose reads and writes can be made to fail.
type failingKVStore struct {
	*MemoryKVStore
	getErr error
	setErr error
}

var _ KVStore = (*failingKVStore)(nil)

func newFailingKVStore() *failingKVStore {
	return &failingKVStore{MemoryKVStore: NewMemoryKVStore()}
}

func (f *failingKVStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.MemoryKVStore.Get(ctx, key)
}

func (f *failingKVStore) Set(ctx context.Context, key, value string) error {
	if f.setErr != nil {
		return f.setErr
	}
	return f.MemoryKVStore.Set(ctx, key, value)
}

var errQuotaExceeded = errors.New("quota exceeded")

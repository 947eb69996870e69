package repository

import (
	"context"
)

// Error constants for repository layer
var (
	ErrWriteFailed = RepositoryError("write failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// SlotStore is the persistence medium: independent string-keyed slots holding
// UTF-8 JSON text. Every store keeps a whole collection under one key, so a Set
// always replaces the entire previous value (last write wins, no versioning).
type SlotStore interface {
	// Get returns the value under key. ok is false when nothing was ever written.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set replaces the value under key.
	Set(ctx context.Context, key, value string) error
}

// prefixed namespaces every key of an underlying store.
type prefixed struct {
	inner  SlotStore
	prefix string
}

// Prefixed returns a view of inner where every key is prefixed with prefix.
// Used to carve per-tab session slots out of one shared session store.
func Prefixed(inner SlotStore, prefix string) SlotStore {
	return &prefixed{inner: inner, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.inner.Set(ctx, p.prefix+key, value)
}

// Package kv defines the durable key-value medium records are stored in.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("key not found")

// Entry is a single key/value pair for PutMany
type Entry struct {
	Key   string
	Value []byte
}

// Store is a durable key-value medium. Writes overwrite unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	// PutMany writes entries in order. Backends that support it apply
	// all entries atomically.
	PutMany(ctx context.Context, entries ...Entry) error
	Close() error
}

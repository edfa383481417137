package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dori/weekly/internal/kv"
)

var _ kv.Store = (*DB)(nil)

const upsertRecord = `
	INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// Get returns the stored value for key, or kv.ErrNotFound
func (db *DB) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	err := db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, kv.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return []byte(value), nil
}

// Put overwrites the value for key
func (db *DB) Put(ctx context.Context, key string, value []byte) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := db.ExecContext(ctx, upsertRecord, key, string(value), now)
	return err
}

// PutMany writes all entries in a single transaction
func (db *DB) PutMany(ctx context.Context, entries ...kv.Entry) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return db.Transaction(func(tx *sql.Tx) error {
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, upsertRecord, e.Key, string(e.Value), now); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdatedAt returns when key was last written
func (db *DB) UpdatedAt(ctx context.Context, key string) (time.Time, error) {
	var updated string
	err := db.QueryRowContext(ctx, `SELECT updated_at FROM records WHERE key = ?`, key).Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, kv.ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return time.Parse(time.RFC3339Nano, updated)
}

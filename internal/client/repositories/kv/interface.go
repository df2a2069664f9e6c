// Package kv is the persistence layer of the small-blob tier: session
// record, credential table and per-user influencer lists. Values are JSON
// strings; each row carries the time it was last written so the storage
// guard can evict oldest first.
package kv

import (
	"context"
	"time"
)

// Entry describes one stored pair without its value.
type Entry struct {
	Key       string
	Size      int64
	UpdatedAt time.Time
}

// Repository is the raw key-value tier. Get reports (value, false, nil) for
// an absent key.
type Repository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) ([]Entry, error)
	Usage(ctx context.Context) (int64, error)
}

// EntrySize is the byte cost charged against the tier budget for a pair.
func EntrySize(key, value string) int64 {
	return int64(len(key) + len(value))
}

package documents

import "context"

// Repository stores opaque document payloads by key.
type Repository interface {
	// Get returns (nil, false, nil) for a missing document.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put inserts or replaces the document at key.
	Put(ctx context.Context, key string, value []byte) error

	// DeletePrefix removes every document whose key starts with prefix and
	// reports how many were removed.
	DeletePrefix(ctx context.Context, prefix string) (int64, error)

	// Keys lists the keys starting with prefix in lexical order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}

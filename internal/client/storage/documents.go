package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/dmitrijs2005/personadesk/internal/client/repositories/documents"
	"github.com/dmitrijs2005/personadesk/internal/logging"
)

// DocumentStore keeps JSON documents, one independent record per key.
type DocumentStore struct {
	repo documents.Repository
	log  logging.Logger
}

func NewDocumentStore(repo documents.Repository, log logging.Logger) *DocumentStore {
	return &DocumentStore{repo: repo, log: log.With("module", "storage.documents")}
}

// LoadInto decodes the document at key into dst. It reports found=false
// with a nil error for a missing document; an error means the document
// exists but could not be read or decoded, and dst is reset to its zero
// value so no partly decoded data survives.
func (s *DocumentStore) LoadInto(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.repo.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if v := reflect.ValueOf(dst); v.Kind() == reflect.Pointer && !v.IsNil() {
			v.Elem().SetZero()
		}
		return false, fmt.Errorf("failed to decode document[%s]: %w", key, err)
	}
	return true, nil
}

// Load returns the document at key, or the zero T when it is missing or
// unreadable.
func Load[T any](ctx context.Context, s *DocumentStore, key string) (T, bool) {
	var v T
	ok, err := s.LoadInto(ctx, key, &v)
	if err != nil {
		s.log.Warn(ctx, "load failed", "key", key, "error", err)
		var zero T
		return zero, false
	}
	return v, ok
}

func (s *DocumentStore) Save(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode document[%s]: %w", key, err)
	}
	if err := s.repo.Put(ctx, key, raw); err != nil {
		s.log.Error(ctx, "save failed", "key", key, "error", err)
		return err
	}
	return nil
}

// Delete removes every document under prefix.
func (s *DocumentStore) Delete(ctx context.Context, prefix string) error {
	n, err := s.repo.DeletePrefix(ctx, prefix)
	if err != nil {
		return err
	}
	s.log.Debug(ctx, "documents deleted", "prefix", prefix, "count", n)
	return nil
}

// Keys lists stored document keys under prefix.
func (s *DocumentStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return s.repo.Keys(ctx, prefix)
}

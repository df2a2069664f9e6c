package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/personadesk/internal/client/repositories/kv"
	"github.com/dmitrijs2005/personadesk/internal/common"
	"github.com/dmitrijs2005/personadesk/internal/dbx"
	"github.com/dmitrijs2005/personadesk/internal/logging"
)

// AlertFunc receives failed writes so the caller can warn the user.
type AlertFunc func(ctx context.Context, key string, err error)

// KVStore is the adapter over the key-value tier. None of its methods
// return storage faults: reads fall back to "absent" and writes report
// false, with the cause logged and handed to the alert hook.
type KVStore struct {
	db      *sql.DB
	newRepo func(dbx.DBTX) kv.Repository
	guard   *Guard
	alert   AlertFunc
	log     logging.Logger
}

func NewKVStore(db *sql.DB, guard *Guard, log logging.Logger) *KVStore {
	return &KVStore{
		db:      db,
		newRepo: func(d dbx.DBTX) kv.Repository { return kv.NewSQLiteRepository(d) },
		guard:   guard,
		log:     log.With("module", "storage.kv"),
	}
}

// WithRepository overrides how repositories are bound to a handle.
func (s *KVStore) WithRepository(newRepo func(dbx.DBTX) kv.Repository) *KVStore {
	s.newRepo = newRepo
	return s
}

// OnAlert registers the hook invoked when Set fails.
func (s *KVStore) OnAlert(fn AlertFunc) {
	s.alert = fn
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.newRepo(s.db).Get(ctx, key)
	if err != nil {
		s.log.Error(ctx, "read failed", "key", key, "error", err)
		return "", false
	}
	return v, ok
}

// Set writes key=value after the guard has made room. Eviction and the
// write commit together.
func (s *KVStore) Set(ctx context.Context, key, value string) bool {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.newRepo(tx)
		if err := s.guard.EnforceLimit(ctx, repo, key, value); err != nil {
			return err
		}
		return repo.Set(ctx, key, value)
	})
	if err != nil {
		if errors.Is(err, common.ErrStorageQuota) {
			s.log.Warn(ctx, "write rejected", "key", key, "error", err)
		} else {
			s.log.Error(ctx, "write failed", "key", key, "error", err)
		}
		if s.alert != nil {
			s.alert(ctx, key, err)
		}
		return false
	}
	return true
}

func (s *KVStore) Remove(ctx context.Context, key string) {
	if err := s.newRepo(s.db).Delete(ctx, key); err != nil {
		s.log.Error(ctx, "remove failed", "key", key, "error", err)
	}
}

// Cleanup runs the guard's startup sweep. Failures are logged.
func (s *KVStore) Cleanup(ctx context.Context) int {
	var removed int
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		removed, err = s.guard.Cleanup(ctx, s.newRepo(tx))
		return err
	})
	if err != nil {
		s.log.Error(ctx, "cleanup failed", "error", err)
		return 0
	}
	return removed
}

// GetJSON decodes the value at key into dst. A malformed value counts as
// absent.
func (s *KVStore) GetJSON(ctx context.Context, key string, dst any) bool {
	raw, ok := s.Get(ctx, key)
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		s.log.Warn(ctx, "malformed value", "key", key, "error", err)
		return false
	}
	return true
}

func (s *KVStore) SetJSON(ctx context.Context, key string, v any) bool {
	raw, err := json.Marshal(v)
	if err != nil {
		s.log.Error(ctx, "encode failed", "key", key, "error", err)
		return false
	}
	return s.Set(ctx, key, string(raw))
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/personadesk/internal/client/client"
	"github.com/dmitrijs2005/personadesk/internal/client/repositories/documents"
	"github.com/dmitrijs2005/personadesk/internal/client/storage"
	"github.com/dmitrijs2005/personadesk/internal/logging"
	"github.com/stretchr/testify/require"
)

type env struct {
	db      *sql.DB
	kv      *storage.KVStore
	docs    *storage.DocumentStore
	notices *Notices
	clock   *fakeClock
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newEnv(t *testing.T) *env {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	e := &env{
		db:      db,
		notices: NewNotices(),
		clock:   &fakeClock{t: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)},
	}
	e.kv = storage.NewKVStore(db, storage.NewGuard(storage.DefaultBudget, logging.Nop()), logging.Nop())
	e.kv.OnAlert(e.notices.StorageAlert)
	e.docs = storage.NewDocumentStore(documents.NewSQLiteRepository(db), logging.Nop())
	return e
}

func (e *env) sessions() *SessionManager {
	return NewSessionManager(e.kv, logging.Nop()).WithClock(e.clock.Now)
}

func (e *env) influencers() *Influencers {
	d := NewInfluencers(e.kv, e.docs, logging.Nop())
	d.now = e.clock.Now
	d.newID = sequentialIDs("inf")
	return d
}

func sequentialIDs(prefix string) func() string {
	var n atomic.Int64
	return func() string { return fmt.Sprintf("%s-%d", prefix, n.Add(1)) }
}
